// Package report renders the arenas and the cartridge header as text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/smashtvedit/internal/level"
	"github.com/retroenv/smashtvedit/internal/names"
	"github.com/retroenv/smashtvedit/internal/rom"
)

// framesPerSecond converts the frame based timers to seconds.
const framesPerSecond = 60

// Info contains the cartridge details printed by the info command.
type Info struct {
	File      string
	Size      int
	Header    rom.Header
	Relocated bool
}

// WriteInfo writes the cartridge details.
func WriteInfo(w io.Writer, info Info) error {
	mapping := "HiROM"
	if info.Header.LoROM {
		mapping = "LoROM"
	}
	speed := "SlowROM"
	if info.Header.FastROM {
		speed = "FastROM"
	}
	tables := "original"
	if info.Relocated {
		tables = "relocated"
	}
	saving := "supported, saved as a 1 MiB image"
	if info.Size > rom.ExpandedSize {
		saving = "not supported, only images up to 1 MiB can be saved"
	}

	_, err := fmt.Fprintf(w,
		"File:         %s\n"+
			"Size:         %d bytes\n"+
			"Title:        %s\n"+
			"Mapping:      %s %s (0x%02X)\n"+
			"ROM size:     %d bytes\n"+
			"Region:       %s\n"+
			"Arena tables: %s\n"+
			"Saving:       %s\n",
		info.File, info.Size, info.Header.Title, mapping, speed, info.Header.MapMode,
		info.Header.ROMSize(), info.Header.Region, tables, saving)
	return err
}

// WriteArenas writes all arenas.
func WriteArenas(w io.Writer, arenas []level.Arena) error {
	for i, a := range arenas {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := WriteArena(w, a); err != nil {
			return err
		}
	}
	return nil
}

// WriteArena writes the details and the wave table of one arena.
func WriteArena(w io.Writer, a level.Arena) error {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s\n", a, names.Arena(a.Circuit, a.Arena))
	fmt.Fprintf(&b, "  Name:      %q\n", strings.TrimSpace(a.Name))
	fmt.Fprintf(&b, "  Threshold: %d\n", a.CompletionThreshold)
	for dir, conn := range a.Connections {
		fmt.Fprintf(&b, "  %-10s %s\n", level.Direction(dir).String()+":", names.Connection(a.Circuit, conn))
	}

	fmt.Fprintf(&b, "  %4s  %-18s  %5s  %5s  %3s  %-16s  %3s  %-16s\n",
		"Wave", "Enemy", "Count", "Limit", "Mod", "Cooldown", "Pre", "Timer")
	for i, wave := range a.Waves {
		fmt.Fprintf(&b, "  %4d  %-18s  %5d  %5d  %3d  %s  %3d  %s\n",
			i+1, wave.Enemy, wave.Count, wave.SpawnLimit, wave.Modifier,
			formatTimer(wave.CooldownTimer), wave.PreSpawned, formatTimer(wave.SpawnTimer))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// formatTimer renders a frame count together with its duration in seconds.
func formatTimer(frames uint16) string {
	return fmt.Sprintf("%5d (%7.2fs)", frames, float64(frames)/framesPerSecond)
}
