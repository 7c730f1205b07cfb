package fbcanal

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	perrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/huangjunwen/fbcanal/filter"
)

// Config is the configuration of Plugin.
type Config struct {
	// OutputDir is where segment documents are written. Required, must exist.
	OutputDir string `json:"outputDir" toml:"outputDir"`

	// DumpBlobs enables STORE BLOB events.
	DumpBlobs bool `json:"dumpBlobs" toml:"dumpBlobs"`

	// RegisterDDLEvents enables EXECUTE SQL events.
	RegisterDDLEvents bool `json:"register_ddl_events" toml:"register_ddl_events"`

	// RegisterSequenceEvents enables SET SEQUENCE events.
	RegisterSequenceEvents bool `json:"register_sequence_events" toml:"register_sequence_events"`

	// IncludeTables is a regular expression, only tables whose whole name matches are replicated.
	IncludeTables string `json:"include_tables" toml:"include_tables"`

	// ExcludeTables is a regular expression, tables whose whole name matches are not replicated.
	ExcludeTables string `json:"exclude_tables" toml:"exclude_tables"`

	// LogLevel of the default logger.
	LogLevel string `json:"log_level" toml:"log_level"`
}

// DefaultConfig returns a Config with defaults, OutputDir still needs to be set.
func DefaultConfig() *Config {
	return &Config{
		RegisterDDLEvents:      true,
		RegisterSequenceEvents: true,
		LogLevel:               "info",
	}
}

// LoadConfig reads a toml file on top of DefaultConfig and validates it.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, perrors.Wrapf(ErrConfiguration, "decode %q: %s", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := []string{}
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, perrors.Wrapf(ErrConfiguration, "unknown keys in %q: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and compiles the table filter patterns.
func (cfg *Config) Validate() error {
	if cfg.OutputDir == "" {
		return perrors.Wrap(ErrConfiguration, "outputDir is required")
	}
	info, err := os.Stat(cfg.OutputDir)
	if err != nil {
		return perrors.Wrapf(ErrConfiguration, "outputDir: %s", err)
	}
	if !info.IsDir() {
		return perrors.Wrapf(ErrConfiguration, "outputDir %q is not a directory", cfg.OutputDir)
	}
	if _, err := cfg.tableFilter(); err != nil {
		return err
	}
	if cfg.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
			return perrors.Wrapf(ErrConfiguration, "log_level: %s", err)
		}
	}
	return nil
}

// SegmentPath returns the document path of a segment.
func (cfg *Config) SegmentPath(name string) string {
	return filepath.Join(cfg.OutputDir, name+".json")
}

func (cfg *Config) tableFilter() (*filter.TableFilter, error) {
	f, err := filter.New(cfg.IncludeTables, cfg.ExcludeTables)
	if err != nil {
		return nil, perrors.Wrapf(ErrConfiguration, "%s", err)
	}
	return f, nil
}
