package rom

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func newSignedBuffer(size int) []byte {
	data := make([]byte, size)
	copy(data, Signature[:])
	return data
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		errContains string
	}{
		{
			name: "minimum size",
			data: newSignedBuffer(MinSize),
		},
		{
			name: "expanded image",
			data: newSignedBuffer(ExpandedSize),
		},
		{
			name:        "too small",
			data:        newSignedBuffer(MinSize - 1),
			errContains: "too small",
		},
		{
			name:        "too big",
			data:        newSignedBuffer(MaxSize),
			errContains: "too big",
		},
		{
			name:        "wrong signature",
			data:        make([]byte, MinSize),
			errContains: "signature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Load(bytes.NewReader(tt.data), int64(len(tt.data)))
			if tt.errContains != "" {
				assert.ErrorContains(t, err, tt.errContains)
				assert.Nil(t, img)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, len(tt.data), img.Len())
		})
	}
}

func TestLoadErrorTypes(t *testing.T) {
	_, err := Load(bytes.NewReader(nil), 16)
	var sizeErr *SizeError
	assert.True(t, errors.As(err, &sizeErr))
	assert.Equal(t, int64(16), sizeErr.Size)

	_, err = Load(bytes.NewReader(make([]byte, MinSize)), MinSize)
	assert.True(t, errors.Is(err, ErrInvalidSignature))

	_, err = Load(bytes.NewReader(newSignedBuffer(16)), MinSize)
	assert.ErrorContains(t, err, "reading image")
}

func TestAccessors(t *testing.T) {
	img := New(make([]byte, 16))

	assert.NoError(t, img.SetByte(0, 0xAB))
	assert.NoError(t, img.Copy(2, []byte{0x34, 0x80}))
	assert.NoError(t, img.Copy(8, []byte{1, 2, 3}))

	b, err := img.Byte(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	lo, err := img.Byte(2)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x34), lo)

	word, err := img.Uint16(2)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x8034), word)

	slice, err := img.Slice(8, 3)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal([]byte{1, 2, 3}, slice))

	slice[0] = 0xFF
	b, err = img.Byte(8)
	assert.NoError(t, err)
	assert.Equal(t, byte(1), b, "slice must be a copy")
}

func TestAccessorsOutOfRange(t *testing.T) {
	img := New(make([]byte, 16))

	_, err := img.Byte(16)
	var rangeErr *RangeError
	assert.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 16, rangeErr.Offset)
	assert.Equal(t, 16, rangeErr.Size)

	_, err = img.Uint16(15)
	assert.Error(t, err)
	_, err = img.Slice(10, 7)
	assert.Error(t, err)
	_, err = img.Byte(-1)
	assert.Error(t, err)
	assert.Error(t, img.SetByte(16, 0))
	assert.Error(t, img.Copy(14, []byte{1, 2, 3}))
}

func TestResizeAndClone(t *testing.T) {
	img := New([]byte{1, 2, 3})
	clone := img.Clone()

	img.Resize(6)
	assert.Equal(t, 6, img.Len())
	assert.True(t, bytes.Equal([]byte{1, 2, 3, 0, 0, 0}, img.Bytes()))
	assert.Equal(t, 3, clone.Len())

	assert.NoError(t, clone.SetByte(0, 9))
	b, err := img.Byte(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(1), b)

	var buf bytes.Buffer
	n, err := img.WriteTo(&buf)
	assert.NoError(t, err)
	assert.Equal(t, int64(6), n)
}

func TestHeader(t *testing.T) {
	data := newSignedBuffer(MinSize)
	copy(data[titleOffset:], "SUPER SMASH TV       ")
	data[0x7FD5] = 0x20
	data[romSizeOffset] = 0x09
	img := New(data)

	h, err := img.Header()
	assert.NoError(t, err)
	assert.Equal(t, "SUPER SMASH TV", h.Title)
	assert.Equal(t, uint8(0x20), h.MapMode)
	assert.True(t, h.LoROM)
	assert.False(t, h.FastROM)
	assert.Equal(t, uint8(0x09), h.ROMSizeCode)
	assert.Equal(t, MinSize, h.ROMSize())

	_, err = New(make([]byte, 0x100)).Header()
	assert.Error(t, err)
}
