package printer

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTicket(t *testing.T) {
	data, err := EncodeTicket("СУМА   1.00\nРешта", 32)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte{ESC, '@', ESC, 't', CodePageWPC1251, ESC, 'a', AlignLeft}))
	assert.True(t, bytes.HasSuffix(data, []byte{LF, LF, LF, GS, 'V', 0x01}))
	// "СУМА" in Windows-1251
	assert.True(t, bytes.Contains(data, []byte{0xD1, 0xD3, 0xCC, 0xC0}))
	assert.Equal(t, 2+3, bytes.Count(data, []byte{LF}))
}

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("none", "", "")
	require.NoError(t, err)
	assert.Equal(t, TypeNone, p.Type())
	assert.False(t, p.IsConnected())
	assert.NoError(t, p.Print([]byte("x")))

	_, err = NewPrinterFromConfig("usb", "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("network", "", "")
	assert.Error(t, err)

	p, err = New(Options{Type: TypeNetwork, Address: "127.0.0.1:9100"})
	require.NoError(t, err)
	assert.Equal(t, TypeNetwork, p.Type())

	_, err = NewPrinterFromConfig("serial", "", "")
	assert.Error(t, err)
}

func TestUSBPrinter_WritesToDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	p := NewUSBPrinter(path)
	assert.True(t, p.IsConnected())
	require.NoError(t, p.Print([]byte("ticket")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ticket", string(got))
}

func TestNetworkPrinter_SendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(conn)
		received <- buf.Bytes()
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	require.NoError(t, p.Print([]byte("ticket")))
	assert.Equal(t, "ticket", string(<-received))
}
