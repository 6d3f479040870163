// Package editor implements the editing rules that are applied to arenas
// before they are handed back to the level writer.
package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/retroenv/smashtvedit/internal/enemy"
	"github.com/retroenv/smashtvedit/internal/level"
)

// centerWidth is one column wider than a name, the extra column is dropped
// after centering so that the uneven space ends up on the left side like
// most of the original names.
const centerWidth = level.NameLength + 1

var (
	errTooManyWaves = fmt.Errorf("arena already has the maximum of %d waves", level.MaxWaves)
	errLastWave     = errors.New("arena needs at least 1 wave")
)

// Editor applies edits to arenas.
type Editor struct {
	centerNames bool
}

// New returns a new editor. If centerNames is set, names are centered,
// otherwise they are truncated.
func New(centerNames bool) *Editor {
	return &Editor{
		centerNames: centerNames,
	}
}

// DefaultWave returns the wave that is added to an arena by AddWave.
func DefaultWave() level.Wave {
	return level.Wave{
		Enemy:         enemy.Grunt,
		Count:         1,
		SpawnLimit:    1,
		CooldownTimer: 1,
	}
}

// AddWave appends the default wave to the arena.
func AddWave(a *level.Arena) error {
	if len(a.Waves) >= level.MaxWaves {
		return errTooManyWaves
	}
	a.Waves = append(a.Waves, DefaultWave())
	return nil
}

// RemoveWave removes the last wave of the arena.
func RemoveWave(a *level.Arena) error {
	if len(a.Waves) <= 1 {
		return errLastWave
	}
	a.Waves = a.Waves[:len(a.Waves)-1]
	return nil
}

// CenterName centers the trimmed name in the name record.
func CenterName(name string) string {
	trimmed := strings.TrimSpace(name)
	if n := utf8.RuneCountInString(trimmed); n < centerWidth {
		pad := centerWidth - n
		left := pad / 2
		trimmed = strings.Repeat(" ", left) + trimmed + strings.Repeat(" ", pad-left)
	}

	runes := []rune(trimmed)
	return TruncateName(string(runes[:len(runes)-1]))
}

// TruncateName cuts the name to the size of the name record.
func TruncateName(name string) string {
	if len(name) <= level.NameLength {
		return name
	}
	end := level.NameLength
	for end > 0 && !utf8.RuneStart(name[end]) {
		end--
	}
	return name[:end]
}

// SetName sets the name of the arena.
func (e *Editor) SetName(a *level.Arena, name string) {
	if e.centerNames {
		a.Name = CenterName(name)
		return
	}
	a.Name = TruncateName(name)
}

// Set sets a field of the arena: name, threshold, up, right or down.
func (e *Editor) Set(a *level.Arena, field, value string) error {
	switch strings.ToLower(field) {
	case "name":
		e.SetName(a, value)

	case "threshold":
		v, err := parseUint(value, 8)
		if err != nil {
			return err
		}
		a.CompletionThreshold = uint8(v)

	case "up", "right", "down":
		conn, err := ParseConnection(a.Circuit, value)
		if err != nil {
			return err
		}
		a.Connections[directionIndex(field)] = conn

	default:
		return fmt.Errorf("unsupported arena field '%s'", field)
	}
	return nil
}

// SetWave sets a field of the wave with the 1 based index: enemy, count,
// limit, modifier, cooldown, prespawned or spawntimer.
func (e *Editor) SetWave(a *level.Arena, wave int, field, value string) error {
	if wave < 1 || wave > len(a.Waves) {
		return fmt.Errorf("arena %s has no wave %d", a, wave)
	}
	w := &a.Waves[wave-1]

	field = strings.ToLower(field)
	if field == "enemy" {
		typ, err := enemy.Parse(value)
		if err != nil {
			return err
		}
		w.Enemy = typ
		return nil
	}

	bits := 8
	if field == "count" || field == "cooldown" || field == "spawntimer" {
		bits = 16
	}
	v, err := parseUint(value, bits)
	if err != nil {
		return err
	}

	switch field {
	case "count":
		w.Count = uint16(v)
	case "limit":
		w.SpawnLimit = uint8(v)
	case "modifier":
		w.Modifier = uint8(v)
	case "cooldown":
		w.CooldownTimer = uint16(v)
	case "prespawned":
		w.PreSpawned = uint8(v)
	case "spawntimer":
		w.SpawnTimer = uint16(v)
	default:
		return fmt.Errorf("unsupported wave field '%s'", field)
	}
	return nil
}

// ParseConnection parses a connection value for an arena of the circuit:
// "-" for no connection, "goal" or the 1 based arena number in the circuit.
func ParseConnection(circuit int, value string) (level.Connection, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "-", "none":
		return level.NoConnection, nil
	case "goal":
		return level.Goal, nil
	}

	arena, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid connection '%s'", value)
	}
	if arena < 1 || arena > level.CircuitArenas(circuit) {
		return 0, fmt.Errorf("circuit %d has no arena %d", circuit, arena)
	}
	return level.Connection(arena), nil
}

// ParseArenaRef parses an arena reference in the format circuit:arena.
func ParseArenaRef(ref string) (int, int, error) {
	circuitPart, arenaPart, ok := strings.Cut(ref, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid arena reference '%s', expected circuit:arena", ref)
	}
	circuit, err := strconv.Atoi(circuitPart)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid circuit '%s'", circuitPart)
	}
	arena, err := strconv.Atoi(arenaPart)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid arena '%s'", arenaPart)
	}
	if _, err := level.FlatIndex(circuit, arena); err != nil {
		return 0, 0, err
	}
	return circuit, arena, nil
}

func parseUint(value string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(value), 0, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid %d bit value '%s'", bits, value)
	}
	return v, nil
}

func directionIndex(field string) level.Direction {
	switch strings.ToLower(field) {
	case "up":
		return level.Up
	case "right":
		return level.Right
	default:
		return level.Down
	}
}
