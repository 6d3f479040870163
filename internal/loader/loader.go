// Package loader handles cartridge file loading operations.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/smashtvedit/internal/detector"
	"github.com/retroenv/smashtvedit/internal/rom"
)

// ErrCopierHeader is returned for images with a prepended copier header.
var ErrCopierHeader = errors.New("file has a 512 byte copier header, remove it before editing")

// Loader handles loading cartridge files from disk.
type Loader struct {
	detector *detector.Detector
}

// New creates a new cartridge loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		detector: detector.New(logger),
	}
}

// Load loads a cartridge image file. The file size is checked before the
// content is read.
func (l *Loader) Load(path string) (*rom.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading file info %s: %w", path, err)
	}
	if err := rom.CheckSize(info.Size()); err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	if l.detector.Detect(path, data) == detector.CopierHeader {
		return nil, ErrCopierHeader
	}

	img, err := rom.Load(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}
	return img, nil
}
