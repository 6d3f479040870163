// Package pipeline orchestrates the load, edit and save workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/smashtvedit/internal/address"
	"github.com/retroenv/smashtvedit/internal/level"
	"github.com/retroenv/smashtvedit/internal/loader"
	"github.com/retroenv/smashtvedit/internal/options"
	"github.com/retroenv/smashtvedit/internal/rom"
	"github.com/retroenv/smashtvedit/internal/verification"
)

// OutputName is the file name of the edited ROM.
const OutputName = "Smash TV edit.sfc"

// ErrOverwriteInput is returned if the output file would replace the input.
var ErrOverwriteInput = errors.New("output file would overwrite the input file")

// Session holds a loaded ROM image and its decoded arenas.
type Session struct {
	File   string
	Image  *rom.Image
	Arenas []level.Arena
}

// Pipeline orchestrates the complete edit workflow.
type Pipeline struct {
	logger *log.Logger
	opts   options.Program
	loader *loader.Loader
	reader *level.Reader
	writer *level.Writer
}

// New creates a new edit pipeline.
func New(logger *log.Logger, opts options.Program) *Pipeline {
	translator := address.NewTranslator(logger, opts.Strict)
	return &Pipeline{
		logger: logger,
		opts:   opts,
		loader: loader.New(logger),
		reader: level.NewReader(logger, translator),
		writer: level.NewWriter(logger, translator),
	}
}

// Load loads the input file and decodes all arenas.
func (p *Pipeline) Load(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := p.loader.Load(p.opts.Input)
	if err != nil {
		return nil, err
	}
	return p.LoadImage(ctx, p.opts.Input, img)
}

// LoadImage decodes all arenas of an already loaded image.
func (p *Pipeline) LoadImage(ctx context.Context, file string, img *rom.Image) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.printInfo(file, img)

	arenas, err := p.reader.Read(img)
	if err != nil {
		return nil, fmt.Errorf("reading arenas: %w", err)
	}
	return &Session{
		File:   file,
		Image:  img,
		Arenas: arenas,
	}, nil
}

// Relocated returns whether the session image was saved by this editor before.
func (p *Pipeline) Relocated(s *Session) (bool, error) {
	return p.reader.Relocated(s.Image)
}

// Save writes the session arenas into the image and stores the image as
// OutputName in the configured output directory. The written file is read
// back and compared before the path is returned.
func (p *Pipeline) Save(ctx context.Context, s *Session) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(p.opts.Dir, OutputName)
	if err := checkOverwrite(s.File, path); err != nil {
		return "", err
	}

	if err := p.writer.Write(s.Image, s.Arenas); err != nil {
		return "", fmt.Errorf("writing arenas: %w", err)
	}

	if err := writeFile(path, s.Image); err != nil {
		return "", err
	}

	if err := verification.VerifyFile(ctx, p.logger, p.reader, path, s.Image, s.Arenas); err != nil {
		return "", fmt.Errorf("verification failed: %w", err)
	}
	p.logger.Debug("Verification successful", log.String("file", path))
	return path, nil
}

// printInfo prints information about the ROM being processed.
func (p *Pipeline) printInfo(file string, img *rom.Image) {
	header, err := img.Header()
	if err != nil {
		p.logger.Warn("Reading cartridge header failed", log.Err(err))
		return
	}

	p.logger.Debug("Processing SNES ROM",
		log.String("file", file),
		log.String("title", header.Title),
		log.Int("size", img.Len()),
	)
	if !header.LoROM {
		p.logger.Warn("Cartridge header does not declare LoROM mapping",
			log.Hex("map_mode", header.MapMode))
	}
}

func checkOverwrite(input, output string) error {
	if input == "" {
		return nil
	}
	in, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("resolving input path: %w", err)
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolving output path: %w", err)
	}
	if in == out {
		return ErrOverwriteInput
	}
	return nil
}

func writeFile(path string, img *rom.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", path, err)
	}
	if _, err := img.WriteTo(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing output file %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing output file %s: %w", path, err)
	}
	return nil
}
