package level

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/smashtvedit/internal/enemy"
)

func TestCircuitLayout(t *testing.T) {
	total := 0
	for circuit := range CircuitCount {
		assert.Equal(t, total, CircuitBase(circuit))
		total += CircuitArenas(circuit)
	}
	assert.Equal(t, ArenaCount, total)

	assert.Equal(t, 0, CircuitBase(0))
	assert.Equal(t, 11, CircuitBase(1))
	assert.Equal(t, 29, CircuitBase(2))
	assert.Equal(t, 0, CircuitArenas(3))
}

func TestFlatIndex(t *testing.T) {
	index, err := FlatIndex(1, 18)
	assert.NoError(t, err)
	assert.Equal(t, 28, index)

	_, err = FlatIndex(0, 12)
	assert.Error(t, err)
	_, err = FlatIndex(2, 0)
	assert.Error(t, err)
}

func TestConnectionTarget(t *testing.T) {
	tests := []struct {
		name       string
		circuit    int
		connection Connection
		flat       int
		ok         bool
	}{
		{name: "no connection", circuit: 0, connection: NoConnection},
		{name: "goal", circuit: 1, connection: Goal},
		{name: "circuit 0 first", circuit: 0, connection: 1, flat: 0, ok: true},
		{name: "circuit 0 last", circuit: 0, connection: 11, flat: 10, ok: true},
		{name: "circuit 0 out of range", circuit: 0, connection: 12},
		{name: "circuit 1 first", circuit: 1, connection: 1, flat: 11, ok: true},
		{name: "circuit 1 last", circuit: 1, connection: 18, flat: 28, ok: true},
		{name: "circuit 2 first", circuit: 2, connection: 1, flat: 29, ok: true},
		{name: "circuit 2 last", circuit: 2, connection: 23, flat: 51, ok: true},
		{name: "circuit 2 out of range", circuit: 2, connection: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flat, ok := tt.connection.Target(tt.circuit)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.flat, flat)
		})
	}

	assert.True(t, NoConnection.IsNone())
	assert.True(t, Goal.IsGoal())
	assert.False(t, Connection(5).IsGoal())
}

func TestArenaEqualAndClone(t *testing.T) {
	a := Arena{
		Circuit: 1,
		Arena:   2,
		Name:    "Orbs!",
		Waves: []Wave{
			{Enemy: enemy.LaserOrb, Count: 3},
		},
		Connections: [3]Connection{0, 3, Goal},
	}
	clone := a.Clone()
	assert.True(t, a.Equal(clone))

	clone.Waves[0].Count = 4
	assert.False(t, a.Equal(clone))
	assert.Equal(t, uint16(3), a.Waves[0].Count)

	clone = a.Clone()
	clone.Connections[Right] = 4
	assert.False(t, a.Equal(clone))

	assert.Equal(t, "1:2", a.String())
	assert.Equal(t, "Right", Right.String())
}
