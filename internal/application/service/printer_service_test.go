package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sangkips/invoice-ticket-api/pkg/apperror"
	"github.com/sangkips/invoice-ticket-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPrinter struct {
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *recordingPrinter) IsConnected() bool { return p.err == nil }

func (p *recordingPrinter) Type() string { return printer.TypeNetwork }

func TestPrinterService_PrintInvoice(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Test User", "tester")
	invoice, err := f.invoices.CreateInvoice(context.Background(), owner, cashInvoice("200"))
	require.NoError(t, err)

	device := &recordingPrinter{}
	svc := NewPrinterService(device, f.tickets, nil)

	text, err := svc.PrintInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "198.40")

	require.Len(t, device.jobs, 1)
	assert.True(t, bytes.HasPrefix(device.jobs[0], []byte{0x1b, 0x40}), "job starts with ESC @")

	status := svc.GetStatus()
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
	assert.Equal(t, printer.TypeNetwork, status.Type)
}

func TestPrinterService_DeviceFailureKeepsText(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "Test User", "tester")
	invoice, err := f.invoices.CreateInvoice(context.Background(), owner, cashInvoice("200"))
	require.NoError(t, err)

	svc := NewPrinterService(&recordingPrinter{err: errors.New("paper out")}, f.tickets, nil)

	text, err := svc.PrintInvoice(context.Background(), invoice.ID)
	require.Error(t, err)
	assert.False(t, apperror.IsAppError(err))
	assert.NotEmpty(t, text)
}

func TestPrinterService_MissingInvoice(t *testing.T) {
	f := newFixture(t)
	svc := NewPrinterService(printer.NewNullPrinter(), f.tickets, nil)

	_, err := svc.PrintInvoice(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, apperror.IsAppError(err))
	assert.False(t, svc.GetStatus().Configured)
}
