package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// Printer types accepted by New
const (
	TypeUSB     = "usb"
	TypeNetwork = "network"
	TypeNone    = "none"
)

// Printer sends raw ESC/POS data to a thermal printer.
type Printer interface {
	// Print sends raw ESC/POS bytes to the printer.
	Print(data []byte) error
	// IsConnected returns true if the printer can currently be reached.
	IsConnected() bool
	// Type is one of TypeUSB, TypeNetwork or TypeNone.
	Type() string
}

// Options selects and configures a printer.
type Options struct {
	Type        string
	USBPath     string        // device file, e.g. /dev/usb/lp0
	Address     string        // host:port, e.g. 192.168.1.100:9100
	DialTimeout time.Duration // network printers only, default 5s
}

// New creates the Printer described by opts.
func New(opts Options) (Printer, error) {
	switch opts.Type {
	case TypeUSB:
		if opts.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(opts.USBPath), nil
	case TypeNetwork:
		if opts.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		p := &networkPrinter{address: opts.Address, timeout: opts.DialTimeout}
		if p.timeout <= 0 {
			p.timeout = 5 * time.Second
		}
		return p, nil
	case TypeNone, "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", opts.Type)
	}
}

// NewPrinterFromConfig creates a printer from its type, USB path and TCP address.
func NewPrinterFromConfig(printerType, usbPath, address string) (Printer, error) {
	return New(Options{Type: printerType, USBPath: usbPath, Address: address})
}

// usbPrinter writes each job to a device file, opening it per job.
type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *usbPrinter) Type() string { return TypeUSB }

// networkPrinter dials a raw TCP port (usually 9100) per job.
type networkPrinter struct {
	address string
	timeout time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP.
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{address: address, timeout: 5 * time.Second}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(2 * p.timeout))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *networkPrinter) Type() string { return TypeNetwork }

// nullPrinter drops every job. Used when no printer is configured.
type nullPrinter struct{}

// NewNullPrinter creates a no-op printer for environments without hardware.
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print(data []byte) error { return nil }

func (nullPrinter) IsConnected() bool { return false }

func (nullPrinter) Type() string { return TypeNone }
