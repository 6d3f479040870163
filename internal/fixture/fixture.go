// Package fixture builds synthetic cartridge images with the arena table
// layout of an unmodified cartridge for use in tests.
package fixture

import (
	"encoding/binary"
	"fmt"
)

// Linear file offsets of the tables in the synthetic image.
const (
	Size = 0x80000

	RegionFlagOffset     = 0x41CF
	ConnectionLowOffset  = 0x2A66
	ConnectionHighOffset = ConnectionLowOffset + 3
	ConnectionListOffset = 0x5000
	NamePointerOffset    = 0x6977
	NameListOffset       = 0x6000
	CircuitTableOffset   = 0x135F0
	ArenaTableOffset     = 0x13600
	RecordOffset         = 0x13700

	headerOffset   = 0x7FC0
	bank2End       = 3 * 0x8000
	nameLength     = 26
	canonicalFlag  = 0x02
	arenaTableSize = 0x40
	connListSize   = 0x100
)

var circuitArenas = [3]int{11, 18, 23}

// DefaultWave is the raw wave record used for all arenas of a new fixture:
// grunts, count 5, spawn limit 2, modifier 0, cooldown 60, no pre spawned
// enemies and spawn timer 0.
var DefaultWave = []byte{1, 5, 0, 2, 0, 60, 0, 0, 0, 0}

// Arena contains the raw data of an arena.
type Arena struct {
	Name        string
	Waves       [][]byte // raw 10 byte wave records
	Threshold   byte
	Connections [3]byte
}

// ROM describes a synthetic image.
type ROM struct {
	Arenas [52]Arena
	size   int
}

// New returns a fixture where every arena has a single default wave.
func New() *ROM {
	r := &ROM{size: Size}
	i := 0
	for circuit, count := range circuitArenas {
		for arena := 1; arena <= count; arena++ {
			next := byte(arena + 1)
			if arena == count {
				next = 0xFF
			}
			r.Arenas[i] = Arena{
				Name:        fmt.Sprintf("%-26s", fmt.Sprintf("ARENA %d-%d", circuit, arena)),
				Waves:       [][]byte{append([]byte(nil), DefaultWave...)},
				Connections: [3]byte{0, next, 0},
			}
			i++
		}
	}
	return r
}

// Arena returns the arena of the circuit with the 1 based index.
func (r *ROM) Arena(circuit, arena int) *Arena {
	base := 0
	for i := range circuit {
		base += circuitArenas[i]
	}
	return &r.Arenas[base+arena-1]
}

// SetSize sets the size of the image to build.
func (r *ROM) SetSize(size int) {
	r.size = size
}

// Record returns the serialized wave record of an arena.
func (a *Arena) Record() []byte {
	b := []byte{byte(len(a.Waves) - 1)}
	for _, wave := range a.Waves {
		b = append(b, wave...)
	}
	return append(b, a.Threshold)
}

// Build returns the image.
func (r *ROM) Build() []byte {
	data := make([]byte, r.size)
	copy(data, []byte{0x78, 0x9C, 0x00})
	writeHeader(data)

	data[RegionFlagOffset] = canonicalFlag
	binary.LittleEndian.PutUint16(data[0x41D8:], 0xB5F0)
	binary.LittleEndian.PutUint16(data[0x41DD:], 0xB5F1)

	record := RecordOffset
	i := 0
	for circuit, count := range circuitArenas {
		arenaTable := ArenaTableOffset + circuit*arenaTableSize
		binary.LittleEndian.PutUint16(data[CircuitTableOffset+circuit*2:], toLocal(arenaTable))

		connList := ConnectionListOffset + circuit*connListSize
		data[ConnectionLowOffset+circuit] = byte(toLocal(connList))
		data[ConnectionHighOffset+circuit] = byte(toLocal(connList) >> 8)

		nameList := NameListOffset + i*nameLength
		binary.LittleEndian.PutUint16(data[NamePointerOffset+circuit*2:], toLocal(nameList))

		for arena := 1; arena <= count; arena++ {
			a := &r.Arenas[i]

			rec := a.Record()
			if record+len(rec) > bank2End {
				panic("fixture arena data exceeds bank 2")
			}
			binary.LittleEndian.PutUint16(data[arenaTable+arena*2:], toLocal(record))
			copy(data[record:], rec)
			record += len(rec)

			copy(data[connList+arena*3:], a.Connections[:])
			copy(data[nameList+(arena-1)*nameLength:nameList+arena*nameLength], a.Name)
			i++
		}
	}
	return data
}

func writeHeader(data []byte) {
	copy(data[headerOffset:], "SUPER SMASH T.V.     ")
	data[0x7FD5] = 0x20 // LoROM
	data[0x7FD7] = 0x09 // 512 KiB
	data[0x7FD9] = 0x01 // North America
}

// toLocal returns the bank local ROM address of a linear offset.
func toLocal(offset int) uint16 {
	return uint16(offset%0x8000) | 0x8000
}
