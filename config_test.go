package fbcanal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	{
		path := writeFile(t, dir, "full.toml", `
outputDir = "`+filepath.ToSlash(dir)+`"
dumpBlobs = true
register_ddl_events = false
include_tables = "^CUSTOMER.*"
exclude_tables = ".*_LOG$"
log_level = "debug"
`)
		cfg, err := LoadConfig(path)
		assert.NoError(err)
		assert.Equal(&Config{
			OutputDir:              filepath.ToSlash(dir),
			DumpBlobs:              true,
			RegisterDDLEvents:      false,
			RegisterSequenceEvents: true,
			IncludeTables:          "^CUSTOMER.*",
			ExcludeTables:          ".*_LOG$",
			LogLevel:               "debug",
		}, cfg)
	}

	{
		path := writeFile(t, dir, "min.toml", `outputDir = "`+filepath.ToSlash(dir)+`"`)
		cfg, err := LoadConfig(path)
		assert.NoError(err)
		assert.False(cfg.DumpBlobs)
		assert.True(cfg.RegisterDDLEvents)
		assert.True(cfg.RegisterSequenceEvents)
		assert.Equal("info", cfg.LogLevel)
		assert.Equal(filepath.Join(filepath.ToSlash(dir), "seg.json"), cfg.SegmentPath("seg"))
	}

	for _, content := range []string{
		// Missing outputDir.
		`dumpBlobs = true`,
		// Not a directory.
		`outputDir = "` + filepath.ToSlash(filepath.Join(dir, "min.toml")) + `"`,
		// Not exists.
		`outputDir = "` + filepath.ToSlash(filepath.Join(dir, "nope")) + `"`,
		// Malformed pattern.
		`outputDir = "` + filepath.ToSlash(dir) + `"` + "\ninclude_tables = \"(\"",
		// Unknown key.
		`outputDir = "` + filepath.ToSlash(dir) + `"` + "\noutput_dir = \"x\"",
		// Bad level.
		`outputDir = "` + filepath.ToSlash(dir) + `"` + "\nlog_level = \"loud\"",
		// Not toml.
		`outputDir = `,
	} {
		path := writeFile(t, dir, "bad.toml", content)
		_, err := LoadConfig(path)
		assert.True(errors.Is(err, ErrConfiguration), "%q: %v", content, err)
	}

	_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.True(errors.Is(err, ErrConfiguration))
}
