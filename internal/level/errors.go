package level

import (
	"fmt"
	"strings"
)

// InvalidTextError is returned for arena names that are not valid text.
type InvalidTextError struct {
	Offset int
}

func (e *InvalidTextError) Error() string {
	return fmt.Sprintf("invalid text at offset 0x%X", e.Offset)
}

// WrongArenaCountError is returned when saving an arena list of the wrong size.
type WrongArenaCountError struct {
	Got int
}

func (e *WrongArenaCountError) Error() string {
	return fmt.Sprintf("expected %d arenas but got %d", ArenaCount, e.Got)
}

// OrderError is returned when the arena list is not in canonical order.
type OrderError struct {
	Index   int
	Circuit int
	Arena   int
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("arena %d:%d at index %d is out of order", e.Circuit, e.Arena, e.Index)
}

// WaveCountError is returned for arenas with an unsupported number of waves.
type WaveCountError struct {
	Circuit int
	Arena   int
	Count   int
}

func (e *WaveCountError) Error() string {
	return fmt.Sprintf("arena %d:%d has %d waves, supported are 1 to %d",
		e.Circuit, e.Arena, e.Count, MaxWaves)
}

// NameLengthError is returned for arena names that do not fit the name record.
type NameLengthError struct {
	Circuit int
	Arena   int
	Length  int
}

func (e *NameLengthError) Error() string {
	return fmt.Sprintf("name of arena %d:%d is %d bytes long, maximum is %d",
		e.Circuit, e.Arena, e.Length, NameLength)
}

// BlobOverflowError is returned when the serialized arena data does not fit
// the relocation target.
type BlobOverflowError struct {
	Size      int
	Available int
}

func (e *BlobOverflowError) Error() string {
	return fmt.Sprintf("arena data of %d bytes exceeds the available %d bytes", e.Size, e.Available)
}

// ArenaError wraps an error that occurred while reading a specific arena.
type ArenaError struct {
	Circuit int
	Arena   int
	Offset  int // file offset of the arena record, -1 if unknown
	Err     error
}

func (e *ArenaError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("arena %d:%d: %s", e.Circuit, e.Arena, e.Err)
	}
	return fmt.Sprintf("arena %d:%d at offset 0x%X: %s", e.Circuit, e.Arena, e.Offset, e.Err)
}

func (e *ArenaError) Unwrap() error {
	return e.Err
}

// ReadError collects the errors of all arenas that could not be read.
type ReadError struct {
	Arenas []*ArenaError
}

func (e *ReadError) Error() string {
	msgs := make([]string, len(e.Arenas))
	for i, err := range e.Arenas {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("reading %d arenas failed: %s", len(e.Arenas), strings.Join(msgs, "; "))
}

// Unwrap returns the errors of the failed arenas.
func (e *ReadError) Unwrap() []error {
	errs := make([]error, len(e.Arenas))
	for i, err := range e.Arenas {
		errs[i] = err
	}
	return errs
}
