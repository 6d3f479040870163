// Package address translates LoROM console bus addresses to linear file offsets.
package address

import (
	"fmt"

	"github.com/alttpo/snes/mapping/lorom"
	"github.com/retroenv/retrogolib/log"
)

const (
	bankSize = 0x8000
	romFlag  = 0x8000 // set in the bank local word for ROM mapped addresses
)

// InvalidAddressError is returned in strict mode for addresses that do not
// point into the ROM mapped half of a bank.
type InvalidAddressError struct {
	Address uint32
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("malformed address 0x%06X", e.Address)
}

// ToOffset returns the linear file offset of a 24 bit console address
// without using the bus mapping. The offset is always computed, ok is false
// if the address is not ROM mapped.
func ToOffset(address uint32) (offset int, ok bool) {
	bank := (address >> 16) * bankSize
	local := (address - romFlag) & 0xFFFF
	return int(bank + local), address&romFlag != 0
}

// Join combines a bank number and a bank local address.
func Join(bank uint8, local uint16) uint32 {
	return uint32(bank)<<16 | uint32(local)
}

// Bank returns the bank number of a console address.
func Bank(address uint32) uint8 {
	return uint8(address >> 16)
}

// Translator resolves console addresses and reports malformed ones.
type Translator struct {
	logger *log.Logger
	strict bool
}

// NewTranslator returns a new translator. In strict mode malformed addresses
// fail with an InvalidAddressError, otherwise they are logged as a warning
// and the computed offset is used.
func NewTranslator(logger *log.Logger, strict bool) *Translator {
	return &Translator{
		logger: logger,
		strict: strict,
	}
}

// Offset returns the linear file offset of the given console address.
// ROM mapped addresses are resolved by the LoROM bus mapping, all others
// are malformed and fall back to the plain bank arithmetic.
func (t *Translator) Offset(address uint32) (int, error) {
	if address&romFlag != 0 {
		if pak, err := lorom.BusAddressToPak(address); err == nil {
			return int(pak), nil
		}
	}

	offset, _ := ToOffset(address)
	if t.strict {
		return 0, &InvalidAddressError{Address: address}
	}

	t.logger.Warn("Malformed address",
		log.Hex("address", address),
		log.Hex("offset", offset))
	return offset, nil
}
