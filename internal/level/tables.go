package level

import (
	"fmt"

	"github.com/retroenv/smashtvedit/internal/address"
	"github.com/retroenv/smashtvedit/internal/rom"
)

// Console addresses of the data tables.
const (
	// regionFlagAddress is the bank byte of the arena table pointer in the
	// game code, it selects which arena table region is active.
	regionFlagAddress   = 0x00C1CF
	canonicalRegionFlag = 0x02
	canonicalRegion     = 0x02B5F0
	relocatedRegion     = 0x108000
	// relocatedSize is the space reserved for the relocated tables, the
	// 16 bit pointers can not leave the bank.
	relocatedSize = 0x8000

	// connectionTableAddress holds the low bytes of the connection list
	// pointers of all circuits, followed by the high bytes.
	connectionTableAddress = 0x00AA66
	nameTableAddress       = 0x00E977

	connectionSize = 3
)

// tables resolves the three independent pointer tables of the arena data.
// Every resolver only shares the address translation with the others.
type tables struct {
	translator *address.Translator
}

// region returns the console address of the active circuit table.
func (t tables) region(img *rom.Image) (uint32, error) {
	offset, err := t.translator.Offset(regionFlagAddress)
	if err != nil {
		return 0, err
	}
	flag, err := img.Byte(offset)
	if err != nil {
		return 0, err
	}
	if flag == canonicalRegionFlag {
		return canonicalRegion, nil
	}
	return relocatedRegion, nil
}

// arenaRecord returns the file offset of the wave record of an arena. The
// circuit table points into the arena table which has a placeholder entry
// at index 0 for the pseudo arena of each circuit.
func (t tables) arenaRecord(img *rom.Image, region uint32, circuit, arena int) (int, error) {
	bank := address.Bank(region)

	circuitEntry, err := t.translator.Offset(region + uint32(circuit*2))
	if err != nil {
		return 0, fmt.Errorf("resolving circuit table: %w", err)
	}
	pointer, err := img.Uint16(circuitEntry)
	if err != nil {
		return 0, fmt.Errorf("reading circuit table: %w", err)
	}

	arenaTable, err := t.translator.Offset(address.Join(bank, pointer))
	if err != nil {
		return 0, fmt.Errorf("resolving arena table: %w", err)
	}
	pointer, err = img.Uint16(arenaTable + arena*2)
	if err != nil {
		return 0, fmt.Errorf("reading arena table: %w", err)
	}

	record, err := t.translator.Offset(address.Join(bank, pointer))
	if err != nil {
		return 0, fmt.Errorf("resolving arena record: %w", err)
	}
	return record, nil
}

// connections returns the file offset of the connection triple of an arena.
// The lists are indexed by arena number, slot 0 belongs to the pseudo arena.
func (t tables) connections(img *rom.Image, circuit, arena int) (int, error) {
	entry, err := t.translator.Offset(connectionTableAddress + uint32(circuit))
	if err != nil {
		return 0, fmt.Errorf("resolving connection table: %w", err)
	}
	low, err := img.Byte(entry)
	if err != nil {
		return 0, fmt.Errorf("reading connection table: %w", err)
	}
	high, err := img.Byte(entry + CircuitCount)
	if err != nil {
		return 0, fmt.Errorf("reading connection table: %w", err)
	}

	list, err := t.translator.Offset(address.Join(0, uint16(high)<<8|uint16(low)))
	if err != nil {
		return 0, fmt.Errorf("resolving connection list: %w", err)
	}
	return list + arena*connectionSize, nil
}

// name returns the file offset of the name record of an arena.
func (t tables) name(img *rom.Image, circuit, arena int) (int, error) {
	entry, err := t.translator.Offset(nameTableAddress + uint32(circuit*2))
	if err != nil {
		return 0, fmt.Errorf("resolving name table: %w", err)
	}
	pointer, err := img.Uint16(entry)
	if err != nil {
		return 0, fmt.Errorf("reading name table: %w", err)
	}

	list, err := t.translator.Offset(address.Join(0, pointer))
	if err != nil {
		return 0, fmt.Errorf("resolving name list: %w", err)
	}
	return list + (arena-1)*NameLength, nil
}
