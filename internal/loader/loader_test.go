package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/smashtvedit/internal/fixture"
	"github.com/retroenv/smashtvedit/internal/rom"
)

func TestLoad(t *testing.T) {
	t.Run("load cartridge", func(t *testing.T) {
		tmpFile := createTempFile(t, fixture.New().Build())

		img, err := newLoader(t).Load(tmpFile)
		assert.NoError(t, err)
		assert.NotNil(t, img)
		assert.Equal(t, fixture.Size, img.Len())
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := newLoader(t).Load("/nonexistent/file.sfc")
		assert.Error(t, err)
	})

	t.Run("error on small file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x78, 0x9C, 0x00, 0x01})

		_, err := newLoader(t).Load(tmpFile)
		var sizeErr *rom.SizeError
		assert.True(t, errors.As(err, &sizeErr))
		assert.ErrorContains(t, err, "too small")
	})

	t.Run("error on copier header", func(t *testing.T) {
		data := append(make([]byte, 0x200), fixture.New().Build()...)
		tmpFile := createTempFile(t, data)

		_, err := newLoader(t).Load(tmpFile)
		assert.True(t, errors.Is(err, ErrCopierHeader))
	})

	t.Run("error on wrong signature", func(t *testing.T) {
		data := fixture.New().Build()
		data[0] = 'N'
		tmpFile := createTempFile(t, data)

		_, err := newLoader(t).Load(tmpFile)
		assert.True(t, errors.Is(err, rom.ErrInvalidSignature))
	})
}

func newLoader(t *testing.T) *Loader {
	t.Helper()
	return New(log.NewTestLogger(t))
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.sfc")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
