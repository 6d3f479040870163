// Package detector handles cartridge file format detection.
package detector

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/smashtvedit/internal/rom"
)

// copierHeaderSize is the size of the header that backup units prepend.
const copierHeaderSize = 0x200

// Format is a cartridge file format.
type Format int

const (
	// Plain is a headerless cartridge image starting with the ROM signature.
	Plain Format = iota
	// CopierHeader is an image with a prepended backup unit header.
	CopierHeader
	// Unknown is a file without a recognized ROM signature.
	Unknown
)

var formatNames = [...]string{"plain", "copier header", "unknown"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "invalid"
	}
	return formatNames[f]
}

// Detector handles cartridge format detection from file names and content.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the cartridge format from the file content, the file
// extension is only used for diagnostics.
func (d *Detector) Detect(filename string, data []byte) Format {
	format := detectFromContent(data)
	d.logger.Debug("Detected cartridge format",
		log.Stringer("format", format),
		log.String("file", filename))

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".sfc", ".smc", ".bin":
	default:
		d.logger.Warn("Unexpected file extension for a SNES ROM",
			log.String("extension", ext))
	}
	return format
}

// detectFromContent checks for the ROM signature at the start of the file
// or after a copier header.
func detectFromContent(data []byte) Format {
	signature := rom.Signature[:]
	switch {
	case bytes.HasPrefix(data, signature):
		return Plain
	case len(data)%0x8000 == copierHeaderSize && bytes.HasPrefix(data[copierHeaderSize:], signature):
		return CopierHeader
	default:
		return Unknown
	}
}
