package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	ross "github.com/linasdev/ross-protocol"
	"github.com/linasdev/ross-protocol/transports/can"
	"github.com/linasdev/ross-protocol/transports/serial"
)

// TransportConfig describes one named transport a config file can
// define, selected at the CLI with -transport.
type TransportConfig struct {
	Type      string `yaml:"type"` // "can" or "serial"
	Interface string `yaml:"interface,omitempty"`
	Device    string `yaml:"device,omitempty"`
	Baud      int    `yaml:"baud,omitempty"`
}

// Config is busctl's optional YAML config file: named transports plus a
// default local address, both of which CLI flags override.
type Config struct {
	LocalAddress uint16                     `yaml:"local_address"`
	Transports   map[string]TransportConfig `yaml:"transports"`
}

// LoadConfig reads and parses a YAML config file. A missing path is not
// an error — busctl runs fine from flags alone.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "busctl: read config %q", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, eris.Wrapf(err, "busctl: parse config %q", path)
	}
	return &cfg, nil
}

// openTransport resolves name against cfg's named transports (or, for
// serial, accepts a bare device path directly) and opens it.
func openTransport(cfg *Config, name string, baud int) (ross.Transport, error) {
	if tc, ok := cfg.Transports[name]; ok {
		return openNamed(tc, baud)
	}

	switch {
	case name == "":
		return nil, eris.New("busctl: no transport specified (-transport or config default)")
	case name[0] == '/':
		return serial.Open(name, baud)
	default:
		return can.Open(name)
	}
}

func openNamed(tc TransportConfig, defaultBaud int) (ross.Transport, error) {
	switch tc.Type {
	case "can":
		return can.Open(tc.Interface)
	case "serial":
		baud := tc.Baud
		if baud == 0 {
			baud = defaultBaud
		}
		return serial.Open(tc.Device, baud)
	default:
		return nil, fmt.Errorf("busctl: unknown transport type %q", tc.Type)
	}
}
