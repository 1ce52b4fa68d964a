package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alpaca-client/alpaca-go/pkg/identity"
	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

// randomClientID selects a random client id at startup.
const randomClientID = -1

// Config holds the client configuration. The YAML file uses the flag names
// as keys; flags given on the command line win over the file.
type Config struct {
	Host               string        `yaml:"host"`
	Scheme             string        `yaml:"scheme"`
	DeviceType         string        `yaml:"device-type"`
	DeviceNumber       uint          `yaml:"device-number"`
	ClientID           int           `yaml:"client-id"`
	Timeout            time.Duration `yaml:"timeout"`
	LogLevel           string        `yaml:"log-level"`
	ProtocolLog        string        `yaml:"protocol-log"`
	Interactive        bool          `yaml:"interactive"`
	InsecureSkipVerify bool          `yaml:"insecure-skip-verify"`
}

// DefaultConfig returns the configuration used when nothing is given.
func DefaultConfig() Config {
	return Config{
		Host:       "localhost:11111",
		Scheme:     "http",
		DeviceType: "telescope",
		ClientID:   randomClientID,
		Timeout:    30 * time.Second,
		LogLevel:   "info",
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("host is required"))
	}
	if c.DeviceType == "" {
		errs = append(errs, errors.New("device-type is required"))
	}
	switch strings.ToLower(c.Scheme) {
	case "http", "https":
	default:
		errs = append(errs, fmt.Errorf("scheme must be http or https, got %q", c.Scheme))
	}
	if c.DeviceNumber > math.MaxUint32 {
		errs = append(errs, fmt.Errorf("device-number must be 0..%d, got %d", uint32(math.MaxUint32), c.DeviceNumber))
	}
	if c.ClientID < randomClientID || c.ClientID > identity.MaxClientID {
		errs = append(errs, fmt.Errorf("client-id must be -1 (random) or 0..%d, got %d", identity.MaxClientID, c.ClientID))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Endpoint returns the device endpoint described by the configuration.
func (c *Config) Endpoint() (wire.Endpoint, error) {
	return wire.NewEndpoint(c.Scheme, c.Host, c.DeviceType, uint32(c.DeviceNumber))
}

// Identity creates the process identity.
func (c *Config) Identity() *identity.Identity {
	if c.ClientID == randomClientID {
		return identity.New()
	}
	return identity.NewWithClientID(uint32(c.ClientID))
}

// loadFile merges a YAML file into the configuration. Keys missing from the
// file keep their current value.
func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// parseConfig builds the configuration from defaults, the optional config
// file and the command line, in that order.
func parseConfig(args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet("alpaca-client", flag.ContinueOnError)
	fs.SetOutput(output)

	flags := DefaultConfig()
	var configFile string

	fs.StringVar(&configFile, "config", "", "Configuration file path (YAML)")
	fs.StringVar(&flags.Host, "host", flags.Host, "Alpaca server address (host:port)")
	fs.StringVar(&flags.Scheme, "scheme", flags.Scheme, "URL scheme: http or https")
	fs.StringVar(&flags.DeviceType, "device-type", flags.DeviceType, "Device type (telescope, camera, focuser, ...)")
	fs.UintVar(&flags.DeviceNumber, "device-number", flags.DeviceNumber, "Device number")
	fs.IntVar(&flags.ClientID, "client-id", flags.ClientID, "Client id (-1 picks a random one)")
	fs.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Per request timeout (0 disables)")
	fs.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&flags.ProtocolLog, "protocol-log", flags.ProtocolLog, "Write a protocol capture to this file (.alog)")
	fs.BoolVar(&flags.Interactive, "interactive", flags.Interactive, "Enable interactive command mode")
	fs.BoolVar(&flags.InsecureSkipVerify, "insecure-skip-verify", flags.InsecureSkipVerify, "Skip TLS certificate verification")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if configFile != "" {
		if err := cfg.loadFile(configFile); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host = flags.Host
		case "scheme":
			cfg.Scheme = flags.Scheme
		case "device-type":
			cfg.DeviceType = flags.DeviceType
		case "device-number":
			cfg.DeviceNumber = flags.DeviceNumber
		case "client-id":
			cfg.ClientID = flags.ClientID
		case "timeout":
			cfg.Timeout = flags.Timeout
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "protocol-log":
			cfg.ProtocolLog = flags.ProtocolLog
		case "interactive":
			cfg.Interactive = flags.Interactive
		case "insecure-skip-verify":
			cfg.InsecureSkipVerify = flags.InsecureSkipVerify
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
