package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/lorawords/internal/packet"
	"github.com/danmuck/lorawords/internal/transport"
)

const (
	TransportSerial = "serial"
	TransportMemory = "memory"

	SequenceCounter = "counter"
	SequenceXID     = "xid"
)

// Config is one node's runtime configuration.
type Config struct {
	Host        string
	Transport   string
	Sequence    string
	Promiscuous bool
	MetricsAddr string
	Serial      SerialConfig
}

type SerialConfig struct {
	Port    string
	Options transport.PortOptions
}

type fileConfig struct {
	Host        string       `toml:"host"`
	Transport   string       `toml:"transport"`
	Sequence    string       `toml:"sequence"`
	Promiscuous bool         `toml:"promiscuous"`
	MetricsAddr string       `toml:"metrics_addr"`
	Serial      serialConfig `toml:"serial"`
}

type serialConfig struct {
	Port string `toml:"port"`
	transport.PortOptions
}

func DefaultConfig() Config {
	return Config{
		Host:      "node1",
		Transport: TransportSerial,
		Sequence:  SequenceCounter,
		Serial: SerialConfig{
			Port:    "/dev/ttyUSB0",
			Options: transport.PortOptions{BaudRate: transport.DefaultBaudRate},
		},
	}
}

// Load reads path over DefaultConfig; keys absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("host") {
		cfg.Host = strings.TrimSpace(raw.Host)
	}
	if meta.IsDefined("transport") {
		cfg.Transport = strings.ToLower(strings.TrimSpace(raw.Transport))
	}
	if meta.IsDefined("sequence") {
		cfg.Sequence = strings.ToLower(strings.TrimSpace(raw.Sequence))
	}
	if meta.IsDefined("promiscuous") {
		cfg.Promiscuous = raw.Promiscuous
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	if meta.IsDefined("serial", "port") {
		cfg.Serial.Port = strings.TrimSpace(raw.Serial.Port)
	}
	if meta.IsDefined("serial", "baud_rate") {
		cfg.Serial.Options.BaudRate = raw.Serial.BaudRate
	}
	if meta.IsDefined("serial", "data_bits") {
		cfg.Serial.Options.DataBits = raw.Serial.DataBits
	}
	if meta.IsDefined("serial", "stop_bits") {
		cfg.Serial.Options.StopBits = raw.Serial.StopBits
	}
	if meta.IsDefined("serial", "parity") {
		cfg.Serial.Options.Parity = raw.Serial.Parity
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if err := packet.ValidateHost(cfg.Host); err != nil {
		return fmt.Errorf("host: %w", err)
	}
	if cfg.Host == packet.Broadcast {
		return fmt.Errorf("host %q is reserved for broadcast", packet.Broadcast)
	}
	switch cfg.Sequence {
	case SequenceCounter, SequenceXID:
	default:
		return fmt.Errorf("unknown sequence kind %q", cfg.Sequence)
	}
	switch cfg.Transport {
	case TransportMemory:
	case TransportSerial:
		if cfg.Serial.Port == "" {
			return fmt.Errorf("serial transport requires serial.port")
		}
		if _, err := cfg.Serial.Options.Normalize(); err != nil {
			return fmt.Errorf("serial: %w", err)
		}
	default:
		return fmt.Errorf("unknown transport %q", cfg.Transport)
	}
	return nil
}
