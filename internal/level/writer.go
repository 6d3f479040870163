package level

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/smashtvedit/internal/address"
	"github.com/retroenv/smashtvedit/internal/enemy"
	"github.com/retroenv/smashtvedit/internal/rom"
)

const romSizeCode1MiB = 0x0A

// headerPatches switch the cartridge to the 1 MiB layout and point the game
// code at the relocated arena tables.
var headerPatches = []struct {
	address uint32
	value   byte
}{
	{0x00FFD7, romSizeCode1MiB},
	{regionFlagAddress, address.Bank(relocatedRegion)},
	{0x00C1D8, 0x00},
	{0x00C1D9, 0x80},
	{0x00C1DD, 0x01},
	{0x00C1DE, 0x80},
}

// Writer serializes arenas into an image.
type Writer struct {
	logger *log.Logger
	tables tables
}

// NewWriter returns a new arena writer.
func NewWriter(logger *log.Logger, translator *address.Translator) *Writer {
	return &Writer{
		logger: logger,
		tables: tables{translator: translator},
	}
}

// Write relocates the arena tables into bank 0x10 and writes the names and
// connections back in place. The image is expanded to 1 MiB. All data is
// serialized before the image is modified, on error the image is unchanged.
func (w *Writer) Write(img *rom.Image, arenas []Arena) error {
	if err := checkOrder(arenas); err != nil {
		return err
	}
	if img.Len() > rom.ExpandedSize {
		return &rom.SizeError{Size: int64(img.Len())}
	}

	block, err := buildBlock(arenas)
	if err != nil {
		return err
	}
	if len(block) > relocatedSize {
		return &BlobOverflowError{Size: len(block), Available: relocatedSize}
	}

	names := make([][]byte, len(arenas))
	for i, a := range arenas {
		if names[i], err = encodeName(a); err != nil {
			return err
		}
	}

	work := img.Clone()
	if err := patchHeader(w.tables.translator, work); err != nil {
		return fmt.Errorf("patching header: %w", err)
	}
	work.Resize(rom.ExpandedSize)

	target, err := w.tables.translator.Offset(relocatedRegion)
	if err != nil {
		return err
	}
	if err := work.Copy(target, block); err != nil {
		return fmt.Errorf("writing arena tables: %w", err)
	}

	for i, a := range arenas {
		if err := w.writeInPlace(work, a, names[i]); err != nil {
			return fmt.Errorf("arena %s: %w", a, err)
		}
	}

	w.logger.Debug("Arena data relocated",
		log.Hex("offset", target),
		log.Int("size", len(block)))

	img.Assign(work)
	return nil
}

// writeInPlace writes the connections and the name of an arena back to
// their original tables, they are not relocated.
func (w *Writer) writeInPlace(img *rom.Image, a Arena, name []byte) error {
	offset, err := w.tables.connections(img, a.Circuit, a.Arena)
	if err != nil {
		return err
	}
	conns := make([]byte, len(a.Connections))
	for i, c := range a.Connections {
		conns[i] = byte(c)
	}
	if err := img.Copy(offset, conns); err != nil {
		return fmt.Errorf("writing connections: %w", err)
	}

	offset, err = w.tables.name(img, a.Circuit, a.Arena)
	if err != nil {
		return err
	}
	if err := img.Copy(offset, name); err != nil {
		return fmt.Errorf("writing name: %w", err)
	}
	return nil
}

func patchHeader(translator *address.Translator, img *rom.Image) error {
	for _, patch := range headerPatches {
		offset, err := translator.Offset(patch.address)
		if err != nil {
			return err
		}
		if err := img.SetByte(offset, patch.value); err != nil {
			return err
		}
	}
	return nil
}

// checkOrder verifies that all arenas are present in canonical order.
func checkOrder(arenas []Arena) error {
	if len(arenas) != ArenaCount {
		return &WrongArenaCountError{Got: len(arenas)}
	}

	i := 0
	for circuit := range CircuitCount {
		for arena := 1; arena <= circuitArenas[circuit]; arena++ {
			a := arenas[i]
			if a.Circuit != circuit || a.Arena != arena {
				return &OrderError{Index: i, Circuit: a.Circuit, Arena: a.Arena}
			}
			i++
		}
	}
	return nil
}

// buildBlock returns the circuit table, the arena table and the arena data.
// Each circuit starts with a zero placeholder entry in the arena table.
func buildBlock(arenas []Arena) ([]byte, error) {
	base := uint16(relocatedRegion & 0xFFFF)
	tableSize := (CircuitCount + CircuitCount + len(arenas)) * 2

	circuitTable := make([]uint16, 0, CircuitCount)
	arenaTable := make([]uint16, 0, CircuitCount+len(arenas))
	var data []byte

	current := -1
	for _, a := range arenas {
		if a.Circuit != current {
			circuitTable = append(circuitTable, base+uint16((CircuitCount+len(arenaTable))*2))
			arenaTable = append(arenaTable, 0)
			current = a.Circuit
		}

		arenaTable = append(arenaTable, base+uint16(tableSize+len(data)))
		record, err := encodeArena(a)
		if err != nil {
			return nil, err
		}
		data = append(data, record...)
	}

	block := make([]byte, 0, tableSize+len(data))
	for _, entry := range circuitTable {
		block = binary.LittleEndian.AppendUint16(block, entry)
	}
	for _, entry := range arenaTable {
		block = binary.LittleEndian.AppendUint16(block, entry)
	}
	return append(block, data...), nil
}

// encodeArena returns the wave record of an arena: count-1, the waves and
// the completion threshold.
func encodeArena(a Arena) ([]byte, error) {
	if len(a.Waves) < 1 || len(a.Waves) > MaxWaves {
		return nil, &WaveCountError{Circuit: a.Circuit, Arena: a.Arena, Count: len(a.Waves)}
	}

	b := make([]byte, 0, 2+len(a.Waves)*waveSize)
	b = append(b, byte(len(a.Waves)-1))
	for i, wave := range a.Waves {
		code, err := enemy.Encode(wave.Enemy)
		if err != nil {
			return nil, fmt.Errorf("arena %s wave %d: %w", a, i, err)
		}
		b = append(b, code)
		b = binary.LittleEndian.AppendUint16(b, wave.Count)
		b = append(b, wave.SpawnLimit, wave.Modifier)
		b = binary.LittleEndian.AppendUint16(b, wave.CooldownTimer)
		b = append(b, wave.PreSpawned)
		b = binary.LittleEndian.AppendUint16(b, wave.SpawnTimer)
	}
	return append(b, a.CompletionThreshold), nil
}

// encodeName returns the name padded with spaces to the fixed record size.
func encodeName(a Arena) ([]byte, error) {
	if len(a.Name) > NameLength {
		return nil, &NameLengthError{Circuit: a.Circuit, Arena: a.Arena, Length: len(a.Name)}
	}
	if !utf8.ValidString(a.Name) {
		return nil, fmt.Errorf("name of arena %s is not valid text", a)
	}
	if strings.IndexFunc(a.Name, isUnprintable) >= 0 {
		return nil, fmt.Errorf("name of arena %s contains unprintable characters", a)
	}
	return []byte(a.Name + strings.Repeat(" ", NameLength-len(a.Name))), nil
}

func isUnprintable(r rune) bool {
	return !unicode.IsPrint(r)
}
