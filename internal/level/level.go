// Package level reads and writes the arena records of the cartridge image.
package level

import (
	"fmt"

	"github.com/retroenv/smashtvedit/internal/enemy"
)

const (
	// CircuitCount is the number of circuits of the game.
	CircuitCount = 3
	// ArenaCount is the number of editable arenas over all circuits.
	ArenaCount = 52
	// NameLength is the fixed size of an arena name in bytes.
	NameLength = 26
	// MaxWaves is the maximum number of waves of an arena, the count is
	// stored as count-1 in a single byte.
	MaxWaves = 256

	waveSize = 10
)

// circuitArenas is the number of arenas per circuit, everything indexing
// the flat arena list derives from it.
var circuitArenas = [CircuitCount]int{11, 18, 23}

// CircuitArenas returns the number of arenas of the circuit.
func CircuitArenas(circuit int) int {
	if circuit < 0 || circuit >= CircuitCount {
		return 0
	}
	return circuitArenas[circuit]
}

// CircuitBase returns the index of the first arena of the circuit in the
// flat list of all arenas.
func CircuitBase(circuit int) int {
	base := 0
	for i := 0; i < circuit && i < CircuitCount; i++ {
		base += circuitArenas[i]
	}
	return base
}

// FlatIndex returns the 0 based index in the flat arena list.
func FlatIndex(circuit, arena int) (int, error) {
	if arena < 1 || arena > CircuitArenas(circuit) {
		return 0, fmt.Errorf("arena %d:%d does not exist", circuit, arena)
	}
	return CircuitBase(circuit) + arena - 1, nil
}

// Direction is the index of a connection slot.
type Direction int

// Connection slots of an arena.
const (
	Up Direction = iota
	Right
	Down
)

var directionNames = [...]string{"Up", "Right", "Down"}

func (d Direction) String() string {
	if d < Up || d > Down {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Connection is the value of a connection slot.
type Connection uint8

// Special connection values, all other values are 1 based arena indexes
// within the circuit of the arena.
const (
	NoConnection Connection = 0
	Goal         Connection = 0xFF
)

// IsNone returns whether the slot has no connection.
func (c Connection) IsNone() bool {
	return c == NoConnection
}

// IsGoal returns whether the slot leads to the circuit goal.
func (c Connection) IsGoal() bool {
	return c == Goal
}

// Target returns the flat 0 based arena index that the connection of an
// arena of the given circuit leads to.
func (c Connection) Target(circuit int) (int, bool) {
	if c.IsNone() || c.IsGoal() || int(c) > CircuitArenas(circuit) {
		return 0, false
	}
	return CircuitBase(circuit) + int(c) - 1, true
}

// Wave is a scripted burst of enemies spawned in an arena.
type Wave struct {
	Enemy         enemy.Type
	Count         uint16
	SpawnLimit    uint8
	Modifier      uint8 // variant/palette selector, not fully understood
	CooldownTimer uint16
	PreSpawned    uint8
	SpawnTimer    uint16
}

// Arena is the editable data of one arena.
type Arena struct {
	Circuit             int
	Arena               int // 1 based index within the circuit
	Name                string
	Waves               []Wave
	CompletionThreshold uint8 // waves that may remain when the arena counts as cleared
	Connections         [3]Connection
}

// Equal returns whether both arenas contain the same data.
func (a Arena) Equal(other Arena) bool {
	if a.Circuit != other.Circuit || a.Arena != other.Arena || a.Name != other.Name ||
		a.CompletionThreshold != other.CompletionThreshold || a.Connections != other.Connections ||
		len(a.Waves) != len(other.Waves) {
		return false
	}
	for i := range a.Waves {
		if a.Waves[i] != other.Waves[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the arena.
func (a Arena) Clone() Arena {
	c := a
	c.Waves = make([]Wave, len(a.Waves))
	copy(c.Waves, a.Waves)
	return c
}

func (a Arena) String() string {
	return fmt.Sprintf("%d:%d", a.Circuit, a.Arena)
}
