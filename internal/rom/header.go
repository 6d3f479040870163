package rom

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alttpo/snes"
)

const (
	headerOffset   = 0x7FB0
	headerEnd      = 0x8000
	titleOffset    = 0x7FC0
	titleLength    = 21
	romSizeOffset  = 0x7FD7
	mapModeLoROM   = 0x20
	mapModeFastROM = 0x10
)

// Header contains the decoded internal cartridge header.
type Header struct {
	Title       string
	MapMode     uint8
	LoROM       bool
	FastROM     bool
	ROMSizeCode uint8 // size is 1 KiB << code
	Region      string
}

// ROMSize returns the ROM size declared by the header.
func (h Header) ROMSize() int {
	if h.ROMSizeCode > 16 {
		return 0
	}
	return 1024 << h.ROMSizeCode
}

// Header decodes the internal cartridge header of the first bank.
func (img *Image) Header() (Header, error) {
	raw, err := img.Slice(headerOffset, headerEnd-headerOffset)
	if err != nil {
		return Header{}, fmt.Errorf("reading header: %w", err)
	}

	var h snes.Header
	if err := h.ReadHeader(bytes.NewReader(raw)); err != nil {
		return Header{}, fmt.Errorf("decoding header: %w", err)
	}

	title := raw[titleOffset-headerOffset : titleOffset-headerOffset+titleLength]
	header := Header{
		Title:       strings.TrimSpace(string(bytes.TrimRight(title, "\x00"))),
		MapMode:     h.MapMode,
		LoROM:       h.MapMode&^mapModeFastROM == mapModeLoROM,
		FastROM:     h.MapMode&mapModeFastROM != 0,
		ROMSizeCode: raw[romSizeOffset-headerOffset],
		Region:      "other",
	}

	switch h.DestinationCode {
	case snes.RegionJapan:
		header.Region = "Japan"
	case snes.RegionNorthAmerica:
		header.Region = "North America"
	}
	return header, nil
}
