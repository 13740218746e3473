package cli

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/invoice-ticket-api/internal/application/service"
	"github.com/sangkips/invoice-ticket-api/internal/config"
	"github.com/sangkips/invoice-ticket-api/internal/domain/entity"
	"github.com/sangkips/invoice-ticket-api/internal/infrastructure/repository"
	"github.com/sangkips/invoice-ticket-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOptions(t *testing.T) *RootOptions {
	v := viper.New()
	config.SetDefaults(v)
	return &RootOptions{Config: config.FromViper(v), DB: testutil.NewDB(t)}
}

func run(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestMigrateCommand(t *testing.T) {
	opts := newOptions(t)
	opts.Config.Admin = config.AdminConfig{Name: "Admin", Login: "admin", Password: "password123"}

	out, err := run(t, opts, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied")

	var count int64
	require.NoError(t, opts.DB.Model(&entity.User{}).Where("login = ?", "admin").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTicketCommand(t *testing.T) {
	opts := newOptions(t)
	owner := testutil.CreateUser(t, opts.DB, "Test User", "tester")

	invoices := service.NewInvoiceService(
		repository.NewInvoiceRepository(opts.DB),
		repository.NewProductRepository(opts.DB),
		repository.NewTxManager(opts.DB),
		time.UTC, nil,
	)
	qty := 10
	invoice, err := invoices.CreateInvoice(context.Background(), owner, &service.CreateInvoiceInput{
		Products: []service.InvoiceItemInput{{Name: "Water", Price: decimal.RequireFromString("12.3"), Quantity: &qty}},
		Payment:  &service.PaymentInput{Type: "cashless", Amount: decimal.RequireFromString("123")},
	})
	require.NoError(t, err)

	out, err := run(t, opts, "ticket", uintString(invoice.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Test user")
	assert.Contains(t, out, "Картка")
	assert.True(t, strings.HasSuffix(out, "Дякуємо за покупку!       \n"))

	_, err = run(t, opts, "ticket", "0")
	assert.ErrorContains(t, err, "invalid invoice id")

	_, err = run(t, opts, "ticket", "999")
	assert.ErrorContains(t, err, "Invoice with ID = 999 not found")
}

func TestPurgeIdempotencyCommand(t *testing.T) {
	opts := newOptions(t)
	owner := testutil.CreateUser(t, opts.DB, "Test User", "tester")
	require.NoError(t, opts.DB.Create(&entity.IdempotencyKey{
		Key: "old", UserID: owner.ID, Endpoint: "POST /invoice/create", ResponseCode: 201,
		ExpiresAt: time.Now().Add(-time.Hour),
	}).Error)

	out, err := run(t, opts, "purge-idempotency")
	require.NoError(t, err)
	assert.Contains(t, out, "removed 1 expired idempotency key(s)")
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
