// Package verification verifies that a written ROM file reads back to the
// arenas it was written from.
package verification

import (
	"context"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/smashtvedit/internal/level"
	"github.com/retroenv/smashtvedit/internal/rom"
)

// maxLoggedMismatches limits the mismatches that are logged individually.
const maxLoggedMismatches = 10

// VerifyFile verifies that the file at path contains the exact image bytes
// and that the arenas read from it match the expected arenas.
func VerifyFile(ctx context.Context, logger *log.Logger, reader *level.Reader,
	path string, img *rom.Image, expected []level.Arena) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	written, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading written file for comparison: %w", err)
	}
	if err := checkBufferEqual(logger, img.Bytes(), written); err != nil {
		return fmt.Errorf("comparing file content: %w", err)
	}

	return VerifyImage(logger, reader, rom.New(written), expected)
}

// VerifyImage reads the arenas of the image and compares them to the
// expected arenas.
func VerifyImage(logger *log.Logger, reader *level.Reader, img *rom.Image, expected []level.Arena) error {
	arenas, err := reader.Read(img)
	if err != nil {
		return fmt.Errorf("reading back arenas: %w", err)
	}
	if len(arenas) != len(expected) {
		return fmt.Errorf("mismatched arena count, %d != %d", len(expected), len(arenas))
	}

	var diffs int
	for i := range expected {
		if expected[i].Equal(arenas[i]) {
			continue
		}

		diffs++
		if diffs <= maxLoggedMismatches {
			logger.Error("Arena mismatch",
				log.String("arena", expected[i].String()),
				log.Int("expected_waves", len(expected[i].Waves)),
				log.Int("got_waves", len(arenas[i].Waves)))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d arena mismatches", diffs)
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs <= maxLoggedMismatches {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
