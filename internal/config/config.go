package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/gstcopilot/gstcopilot/internal/amount"
	"github.com/gstcopilot/gstcopilot/internal/reconcile"
)

// FileName is the project configuration file looked up in the working directory.
const FileName = "gstcopilot.yaml"

// Config represents the top-level gstcopilot.yaml configuration.
type Config struct {
	Firm      FirmConfig     `yaml:"firm"`
	Columns   ColumnsConfig  `yaml:"columns"`
	Currency  CurrencyConfig `yaml:"currency"`
	Threshold float64        `yaml:"threshold"`
}

// FirmConfig identifies the practice sending client drafts.
type FirmConfig struct {
	Name string `yaml:"name"`
}

// ColumnsConfig names the header columns of the 2B and 3B exports.
type ColumnsConfig struct {
	InvoiceID string `yaml:"invoice_id"`
	GSTIN     string `yaml:"gstin"`
	Amount2B  string `yaml:"amount_2b"`
	Amount3B  string `yaml:"amount_3b"`
}

// CurrencyConfig controls amount parsing and the Diff column format.
type CurrencyConfig struct {
	Symbol     string `yaml:"symbol"`
	Separators string `yaml:"separators"` // characters stripped before parsing
	Grouping   string `yaml:"grouping"`   // "indian" or "western"
}

// Load reads a gstcopilot.yaml file from disk. Keys absent from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads path when set, else FileName if it exists, else Default.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(FileName); err == nil {
		return Load(FileName)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", FileName, err)
	}
	return Default(""), nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config matching GSTR-2B/3B export conventions.
func Default(firmName string) *Config {
	opts := reconcile.DefaultOptions()
	return &Config{
		Firm: FirmConfig{
			Name: firmName,
		},
		Columns: ColumnsConfig{
			InvoiceID: opts.KeyField,
			GSTIN:     opts.GSTINField,
			Amount2B:  opts.AmountFieldA,
			Amount3B:  opts.AmountFieldB,
		},
		Currency: CurrencyConfig{
			Symbol:     amount.Rupee.Symbol,
			Separators: amount.Rupee.Separators,
			Grouping:   string(amount.Rupee.Grouping),
		},
		Threshold: opts.Threshold.InexactFloat64(),
	}
}

// Validate reports the first problem found in cfg.
func (c *Config) Validate() error {
	cols := map[string]string{
		"columns.invoice_id": c.Columns.InvoiceID,
		"columns.gstin":      c.Columns.GSTIN,
		"columns.amount_2b":  c.Columns.Amount2B,
		"columns.amount_3b":  c.Columns.Amount3B,
	}
	for _, key := range []string{"columns.invoice_id", "columns.gstin", "columns.amount_2b", "columns.amount_3b"} {
		if cols[key] == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) {
		return fmt.Errorf("threshold must be a finite number, got %v", c.Threshold)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %v", c.Threshold)
	}
	if !amount.Grouping(c.Currency.Grouping).Valid() {
		return fmt.Errorf("currency.grouping must be %q or %q, got %q", amount.GroupingIndian, amount.GroupingWestern, c.Currency.Grouping)
	}
	return nil
}

// CurrencyFormat returns the amount conventions described by cfg.
func (c *Config) CurrencyFormat() amount.Currency {
	return amount.Currency{
		Symbol:     c.Currency.Symbol,
		Separators: c.Currency.Separators,
		Grouping:   amount.Grouping(c.Currency.Grouping),
	}
}

// Options returns reconciliation options for cfg.
func (c *Config) Options() reconcile.Options {
	return reconcile.Options{
		KeyField:     c.Columns.InvoiceID,
		AmountFieldA: c.Columns.Amount2B,
		AmountFieldB: c.Columns.Amount3B,
		GSTINField:   c.Columns.GSTIN,
		Threshold:    decimal.NewFromFloat(c.Threshold),
		Currency:     c.CurrencyFormat(),
	}
}
