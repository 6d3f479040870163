package level

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/smashtvedit/internal/address"
	"github.com/retroenv/smashtvedit/internal/enemy"
	"github.com/retroenv/smashtvedit/internal/rom"
)

// Reader decodes the arena records of an image.
type Reader struct {
	logger *log.Logger
	tables tables
}

// NewReader returns a new arena reader.
func NewReader(logger *log.Logger, translator *address.Translator) *Reader {
	return &Reader{
		logger: logger,
		tables: tables{translator: translator},
	}
}

// Read decodes all arenas in canonical order. Arenas that fail to decode are
// collected and returned as a ReadError, no partial result is returned.
func (r *Reader) Read(img *rom.Image) ([]Arena, error) {
	region, err := r.tables.region(img)
	if err != nil {
		return nil, fmt.Errorf("reading region flag: %w", err)
	}
	r.logger.Debug("Arena table region", log.Hex("address", region))

	arenas := make([]Arena, 0, ArenaCount)
	var failed []*ArenaError

	for circuit := range CircuitCount {
		for arena := 1; arena <= circuitArenas[circuit]; arena++ {
			a, offset, err := r.readArena(img, region, circuit, arena)
			if err != nil {
				failed = append(failed, &ArenaError{
					Circuit: circuit,
					Arena:   arena,
					Offset:  offset,
					Err:     err,
				})
				continue
			}
			arenas = append(arenas, a)
		}
	}

	if len(failed) > 0 {
		return nil, &ReadError{Arenas: failed}
	}
	return arenas, nil
}

func (r *Reader) readArena(img *rom.Image, region uint32, circuit, arena int) (Arena, int, error) {
	a := Arena{
		Circuit: circuit,
		Arena:   arena,
	}

	offset, err := r.tables.arenaRecord(img, region, circuit, arena)
	if err != nil {
		return a, -1, err
	}

	a.Waves, a.CompletionThreshold, err = readWaves(img, offset)
	if err != nil {
		return a, offset, err
	}

	connOffset, err := r.tables.connections(img, circuit, arena)
	if err != nil {
		return a, offset, err
	}
	conns, err := img.Slice(connOffset, connectionSize)
	if err != nil {
		return a, offset, fmt.Errorf("reading connections: %w", err)
	}
	for i, c := range conns {
		a.Connections[i] = Connection(c)
	}

	a.Name, err = r.readName(img, circuit, arena)
	if err != nil {
		return a, offset, err
	}
	return a, offset, nil
}

// readWaves decodes the wave list and the completion threshold that follows it.
func readWaves(img *rom.Image, offset int) ([]Wave, uint8, error) {
	length, err := img.Byte(offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reading wave count: %w", err)
	}
	count := int(length) + 1

	data, err := img.Slice(offset+1, count*waveSize+1)
	if err != nil {
		return nil, 0, fmt.Errorf("reading waves: %w", err)
	}

	waves := make([]Wave, count)
	for i := range waves {
		record := data[i*waveSize : (i+1)*waveSize]
		waves[i], err = decodeWave(record)
		if err != nil {
			return nil, 0, fmt.Errorf("wave %d at offset 0x%X: %w", i, offset+1+i*waveSize, err)
		}
	}
	return waves, data[count*waveSize], nil
}

func decodeWave(b []byte) (Wave, error) {
	typ, err := enemy.Decode(b[0])
	if err != nil {
		return Wave{}, err
	}
	return Wave{
		Enemy:         typ,
		Count:         binary.LittleEndian.Uint16(b[1:]),
		SpawnLimit:    b[3],
		Modifier:      b[4],
		CooldownTimer: binary.LittleEndian.Uint16(b[5:]),
		PreSpawned:    b[7],
		SpawnTimer:    binary.LittleEndian.Uint16(b[8:]),
	}, nil
}

func (r *Reader) readName(img *rom.Image, circuit, arena int) (string, error) {
	offset, err := r.tables.name(img, circuit, arena)
	if err != nil {
		return "", err
	}
	data, err := img.Slice(offset, NameLength)
	if err != nil {
		return "", fmt.Errorf("reading name: %w", err)
	}
	if !utf8.Valid(data) {
		return "", &InvalidTextError{Offset: offset}
	}
	return string(data), nil
}

// Relocated returns whether the arena tables of the image were already
// relocated by a previous save.
func (r *Reader) Relocated(img *rom.Image) (bool, error) {
	region, err := r.tables.region(img)
	if err != nil {
		return false, fmt.Errorf("reading region flag: %w", err)
	}
	return region == relocatedRegion, nil
}
