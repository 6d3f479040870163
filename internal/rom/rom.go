// Package rom contains the cartridge image buffer with bounds checked accessors.
package rom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Accepted input sizes and the size of images written by the editor.
const (
	MinSize      = 0x80000
	MaxSize      = MinSize * 4 // exclusive, allows images that were expanded already
	ExpandedSize = 0x100000
)

// Signature identifies the supported cartridge dump.
var Signature = [3]byte{0x78, 0x9C, 0x00}

// ErrInvalidSignature is returned for files that do not start with the cartridge signature.
var ErrInvalidSignature = errors.New("invalid cartridge signature")

// SizeError is returned for images outside of the accepted size range.
type SizeError struct {
	Size int64
}

func (e *SizeError) Error() string {
	if e.Size < MinSize {
		return fmt.Sprintf("file too small: %d bytes", e.Size)
	}
	return fmt.Sprintf("file too big: %d bytes", e.Size)
}

// RangeError is returned for accesses outside of the image.
type RangeError struct {
	Offset int
	Length int
	Size   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("access of %d bytes at offset 0x%X is outside of image of size 0x%X",
		e.Length, e.Offset, e.Size)
}

// Image is a cartridge image. It is owned by a single user at a time.
type Image struct {
	data []byte
}

// New returns an image that takes ownership of the given buffer.
func New(data []byte) *Image {
	return &Image{data: data}
}

// Load reads an image of the given size from the reader. The size and the
// signature are checked before any further data is processed.
func Load(reader io.Reader, size int64) (*Image, error) {
	if err := CheckSize(size); err != nil {
		return nil, err
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(reader, data); err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if data[0] != Signature[0] || data[1] != Signature[1] || data[2] != Signature[2] {
		return nil, ErrInvalidSignature
	}

	return New(data), nil
}

// CheckSize returns an error if the size is not in the accepted range.
func CheckSize(size int64) error {
	if size < MinSize || size >= MaxSize {
		return &SizeError{Size: size}
	}
	return nil
}

// Len returns the size of the image.
func (img *Image) Len() int {
	return len(img.data)
}

func (img *Image) check(offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(img.data) {
		return &RangeError{Offset: offset, Length: length, Size: len(img.data)}
	}
	return nil
}

// Byte returns the byte at the given offset.
func (img *Image) Byte(offset int) (byte, error) {
	if err := img.check(offset, 1); err != nil {
		return 0, err
	}
	return img.data[offset], nil
}

// Uint16 returns the little endian word at the given offset.
func (img *Image) Uint16(offset int) (uint16, error) {
	if err := img.check(offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(img.data[offset:]), nil
}

// Slice returns a copy of length bytes at the given offset.
func (img *Image) Slice(offset, length int) ([]byte, error) {
	if err := img.check(offset, length); err != nil {
		return nil, err
	}
	b := make([]byte, length)
	copy(b, img.data[offset:])
	return b, nil
}

// SetByte sets the byte at the given offset.
func (img *Image) SetByte(offset int, value byte) error {
	if err := img.check(offset, 1); err != nil {
		return err
	}
	img.data[offset] = value
	return nil
}

// Copy copies the data into the image at the given offset.
func (img *Image) Copy(offset int, data []byte) error {
	if err := img.check(offset, len(data)); err != nil {
		return err
	}
	copy(img.data[offset:], data)
	return nil
}

// Resize grows or shrinks the image, new space is zero filled.
func (img *Image) Resize(size int) {
	if size <= len(img.data) {
		img.data = img.data[:size]
		return
	}
	data := make([]byte, size)
	copy(data, img.data)
	img.data = data
}

// Clone returns a deep copy of the image.
func (img *Image) Clone() *Image {
	data := make([]byte, len(img.data))
	copy(data, img.data)
	return New(data)
}

// Assign replaces the content of the image with the content of other.
// The other image must not be used afterwards.
func (img *Image) Assign(other *Image) {
	img.data = other.data
	other.data = nil
}

// Bytes returns a copy of the image content.
func (img *Image) Bytes() []byte {
	return img.Clone().data
}

// WriteTo writes the image content to the writer.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(img.data)
	return int64(n), err
}
