package repository

import "context"

// TxManager runs fn inside one database transaction. Repositories called with
// the ctx passed to fn take part in it. Any error from fn rolls it back.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
