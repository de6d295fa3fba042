// Package config resolves service settings. Defaults come from the
// environment; command-line flags bound in cmd override them.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tinoosan/volley/internal/bank"
	"github.com/tinoosan/volley/internal/errs"
)

type Config struct {
	Addr        string
	LogLevel    string
	LogFormat   string
	DatabaseURL string
	SeedFile    string
	// DevSeed loads seed records on start. Nil means the backend default:
	// on for memory, off for postgres.
	DevSeed *bool
}

// FromEnv builds a Config from ADDR, LOG_LEVEL, LOG_FORMAT, DATABASE_URL,
// SEED_FILE and DEV_SEED.
func FromEnv() Config {
	c := Config{
		Addr:        envOr("ADDR", ":8080"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		LogFormat:   envOr("LOG_FORMAT", "json"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SeedFile:    strings.TrimSpace(os.Getenv("SEED_FILE")),
	}
	if raw := strings.TrimSpace(os.Getenv("DEV_SEED")); raw != "" {
		v := parseBool(raw)
		c.DevSeed = &v
	}
	return c
}

// SeedEnabled applies the backend default when DevSeed is unset.
func (c Config) SeedEnabled() bool {
	if c.DevSeed != nil {
		return *c.DevSeed
	}
	return c.DatabaseURL == ""
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}

// seedFile is the YAML layout of a seed file:
//
//	banks:
//	  - accountNumber: SW1234
//	    trust: 2.0
//	    transactionFee: 1
type seedFile struct {
	Banks []struct {
		AccountNumber  string  `yaml:"accountNumber"`
		Trust          float64 `yaml:"trust"`
		TransactionFee int     `yaml:"transactionFee"`
	} `yaml:"banks"`
}

// Seed returns the records to preload: the contents of SeedFile when set,
// otherwise bank.DefaultSeed.
func (c Config) Seed() ([]bank.Bank, error) {
	if c.SeedFile == "" {
		return bank.DefaultSeed(), nil
	}
	b, err := os.ReadFile(c.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(b)
}

// ParseSeed decodes a YAML seed document. Account numbers must be present and unique.
func ParseSeed(data []byte) ([]bank.Bank, error) {
	var sf seedFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	out := make([]bank.Bank, 0, len(sf.Banks))
	seen := make(map[string]struct{}, len(sf.Banks))
	for i, e := range sf.Banks {
		if e.AccountNumber == "" {
			return nil, errs.Invalidf("seed bank[%d]: accountNumber is required", i)
		}
		if _, dup := seen[e.AccountNumber]; dup {
			return nil, bank.Duplicate(e.AccountNumber)
		}
		seen[e.AccountNumber] = struct{}{}
		out = append(out, bank.Bank{AccountNumber: e.AccountNumber, Trust: e.Trust, TransactionFee: e.TransactionFee})
	}
	return out, nil
}
