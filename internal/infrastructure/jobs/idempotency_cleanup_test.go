package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdempotencyRepo struct {
	deletedBefore time.Time
	removed       int64
	err           error
}

func (f *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	return nil, nil
}

func (f *fakeIdempotencyRepo) Save(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return nil
}

func (f *fakeIdempotencyRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.deletedBefore = now
	return f.removed, f.err
}

func TestIdempotencyCleanup_RunOnce(t *testing.T) {
	now := time.Date(2024, 5, 14, 10, 0, 0, 0, time.UTC)
	repo := &fakeIdempotencyRepo{removed: 3}
	job := NewIdempotencyCleanup(repo, "@hourly", nil)
	job.now = func() time.Time { return now }

	removed, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.Equal(t, now, repo.deletedBefore)
}

func TestIdempotencyCleanup_RunOnceError(t *testing.T) {
	repo := &fakeIdempotencyRepo{err: errors.New("db down")}
	job := NewIdempotencyCleanup(repo, "@hourly", nil)

	_, err := job.RunOnce(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestIdempotencyCleanup_Start(t *testing.T) {
	job := NewIdempotencyCleanup(&fakeIdempotencyRepo{}, "@every 1h", nil)
	require.NoError(t, job.Start())
	job.Stop()

	bad := NewIdempotencyCleanup(&fakeIdempotencyRepo{}, "not a schedule", nil)
	assert.Error(t, bad.Start())
	bad.Stop()
}
