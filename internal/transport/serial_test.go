package transport

import (
	"testing"

	"go.bug.st/serial"
)

func TestPortOptionsDefaults(t *testing.T) {
	opts, err := PortOptions{}.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if opts.BaudRate != DefaultBaudRate || opts.DataBits != 8 || opts.StopBits != 1 || opts.Parity != "N" {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}

func TestPortOptionsRejects(t *testing.T) {
	cases := []PortOptions{
		{BaudRate: -1},
		{DataBits: 9},
		{StopBits: 3},
		{Parity: "mark"},
	}
	for _, opts := range cases {
		if _, err := opts.Normalize(); err == nil {
			t.Fatalf("expected %+v rejected", opts)
		}
	}
}

func TestSerialMode(t *testing.T) {
	mode, err := PortOptions{BaudRate: 115200, StopBits: 2, Parity: "even"}.SerialMode()
	if err != nil {
		t.Fatalf("serial mode: %v", err)
	}
	if mode.BaudRate != 115200 || mode.DataBits != 8 {
		t.Fatalf("unexpected mode: %+v", mode)
	}
	if mode.StopBits != serial.TwoStopBits {
		t.Fatalf("expected two stop bits, got %v", mode.StopBits)
	}
	if mode.Parity != serial.EvenParity {
		t.Fatalf("expected even parity, got %v", mode.Parity)
	}

	mode, err = PortOptions{Parity: "o"}.SerialMode()
	if err != nil {
		t.Fatalf("serial mode: %v", err)
	}
	if mode.StopBits != serial.OneStopBit || mode.Parity != serial.OddParity {
		t.Fatalf("unexpected mode: %+v", mode)
	}
}
