package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", TransportSerial:
		return serialTemplate, nil
	case TransportMemory:
		return memoryTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const serialTemplate = `host = "node1"
transport = "serial"
sequence = "counter"
# metrics_addr = "127.0.0.1:9464"

[serial]
port = "/dev/ttyUSB0"
baud_rate = 9600
data_bits = 8
stop_bits = 1
parity = "N"
`

const memoryTemplate = `host = "node1"
transport = "memory"
sequence = "xid"
`
