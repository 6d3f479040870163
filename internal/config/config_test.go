package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/smashtvedit/internal/options"
)

func TestLoad(t *testing.T) {
	file, err := Load([]byte("dir = out\ncenter_names = false\nstrict_addresses = true\n"))
	assert.NoError(t, err)
	assert.Equal(t, "out", file.Dir)
	assert.False(t, file.CenterNames)
	assert.True(t, file.StrictAddresses)
	assert.False(t, file.Debug)

	file, err = Load([]byte("; empty config\n"))
	assert.NoError(t, err)
	assert.Equal(t, Default(), file)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edit.ini")
	assert.NoError(t, os.WriteFile(path, []byte("debug = true\n"), 0600))

	file, err := LoadFile(path)
	assert.NoError(t, err)
	assert.True(t, file.Debug)
	assert.True(t, file.CenterNames)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.ini"))
	assert.ErrorContains(t, err, "loading config file")
}

func TestApply(t *testing.T) {
	opts := options.Program{}
	Apply(&opts, File{Dir: "out", CenterNames: false, StrictAddresses: true})
	assert.Equal(t, "out", opts.Dir)
	assert.True(t, opts.NoCenter)
	assert.True(t, opts.Strict)

	opts = options.Program{}
	opts.Dir = "flag"
	Apply(&opts, Default())
	assert.Equal(t, "flag", opts.Dir)
	assert.False(t, opts.NoCenter)
	assert.False(t, opts.Strict)
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
