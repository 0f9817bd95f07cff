package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the user-settable subset of Config with pointer fields,
// so only keys present in the YAML document override the current values.
type fileConfig struct {
	Database      *string  `yaml:"db"`
	Task          *string  `yaml:"task"`
	Filter        *string  `yaml:"filter"`
	FilterName    *string  `yaml:"filter_name"`
	MaxTargetSeqs *int     `yaml:"max_targets"`
	Include       []string `yaml:"include"`
	LineWidth     *int     `yaml:"line_width"`
	SleepMin      *int     `yaml:"sleep_min"`
	SleepMax      *int     `yaml:"sleep_max"`
	KeepTSV       *bool    `yaml:"keep_tsv"`
	LogFile       *string  `yaml:"log"`
}

// LoadFile reads a YAML config file and applies its values onto cfg.
// Call before flag parsing so CLI flags override file values.
func LoadFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := fc.apply(cfg); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// apply copies set fields into cfg, validating enum values as it goes.
func (fc *fileConfig) apply(cfg *Config) error {
	if fc.Database != nil {
		db, err := parseDatabase(*fc.Database)
		if err != nil {
			return err
		}
		cfg.Database = db
	}
	if fc.Task != nil {
		task, err := parseTask(*fc.Task)
		if err != nil {
			return err
		}
		cfg.Task = task
	}
	if fc.Filter != nil {
		cfg.Filter = *fc.Filter
	}
	if fc.FilterName != nil {
		cfg.FilterName = *fc.FilterName
	}
	if fc.MaxTargetSeqs != nil {
		cfg.MaxTargetSeqs = *fc.MaxTargetSeqs
	}
	if len(fc.Include) > 0 {
		cfg.Include = append([]string(nil), fc.Include...)
	}
	if fc.LineWidth != nil {
		cfg.LineWidth = *fc.LineWidth
	}
	if fc.SleepMin != nil {
		cfg.SleepMin = *fc.SleepMin
	}
	if fc.SleepMax != nil {
		cfg.SleepMax = *fc.SleepMax
	}
	if fc.KeepTSV != nil {
		cfg.KeepTSV = *fc.KeepTSV
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	return nil
}
