package editor

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/smashtvedit/internal/enemy"
	"github.com/retroenv/smashtvedit/internal/level"
)

func newArena() *level.Arena {
	return &level.Arena{
		Circuit: 1,
		Arena:   4,
		Waves:   []level.Wave{DefaultWave()},
	}
}

func TestCenterName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "Orbs!", expected: strings.Repeat(" ", 11) + "Orbs!" + strings.Repeat(" ", 10)},
		{input: "  Film at 11  ", expected: strings.Repeat(" ", 8) + "Film at 11" + strings.Repeat(" ", 8)},
		{input: "", expected: strings.Repeat(" ", 26)},
		{input: strings.Repeat("a", 30), expected: strings.Repeat("a", 26)},
	}

	for _, tt := range tests {
		result := CenterName(tt.input)
		assert.Equal(t, tt.expected, result)
		assert.Equal(t, level.NameLength, len(result))
	}
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", TruncateName("short"))
	assert.Equal(t, strings.Repeat("b", 26), TruncateName(strings.Repeat("b", 30)))

	// multi byte runes are not split
	name := strings.Repeat("c", 25) + "é"
	assert.Equal(t, strings.Repeat("c", 25), TruncateName(name))
}

func TestSetName(t *testing.T) {
	a := newArena()

	New(false).SetName(a, strings.Repeat("x", 30))
	assert.Equal(t, 26, len(a.Name))

	New(true).SetName(a, "Meet my twin")
	assert.Equal(t, "Meet my twin", strings.TrimSpace(a.Name))
	assert.Equal(t, 26, len(a.Name))
}

func TestWaveLimits(t *testing.T) {
	a := newArena()
	assert.Error(t, RemoveWave(a))

	for len(a.Waves) < level.MaxWaves {
		assert.NoError(t, AddWave(a))
	}
	assert.Error(t, AddWave(a))
	assert.Len(t, a.Waves, level.MaxWaves)

	assert.NoError(t, RemoveWave(a))
	assert.Len(t, a.Waves, level.MaxWaves-1)
	assert.Equal(t, DefaultWave(), a.Waves[1])
}

func TestSet(t *testing.T) {
	e := New(false)

	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
		check   func(t *testing.T, a *level.Arena)
	}{
		{
			name: "threshold", field: "threshold", value: "3",
			check: func(t *testing.T, a *level.Arena) {
				t.Helper()
				assert.Equal(t, uint8(3), a.CompletionThreshold)
			},
		},
		{name: "threshold overflow", field: "threshold", value: "256", wantErr: true},
		{
			name: "goal connection", field: "Up", value: "goal",
			check: func(t *testing.T, a *level.Arena) {
				t.Helper()
				assert.Equal(t, level.Goal, a.Connections[level.Up])
			},
		},
		{
			name: "arena connection", field: "right", value: "18",
			check: func(t *testing.T, a *level.Arena) {
				t.Helper()
				assert.Equal(t, level.Connection(18), a.Connections[level.Right])
			},
		},
		{name: "connection outside of circuit", field: "down", value: "19", wantErr: true},
		{name: "unknown field", field: "color", value: "red", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena()
			err := e.Set(a, tt.field, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			tt.check(t, a)
		})
	}
}

func TestSetWave(t *testing.T) {
	e := New(true)
	a := newArena()

	assert.NoError(t, e.SetWave(a, 1, "enemy", "tank"))
	assert.NoError(t, e.SetWave(a, 1, "count", "0x1234"))
	assert.NoError(t, e.SetWave(a, 1, "limit", "9"))
	assert.NoError(t, e.SetWave(a, 1, "modifier", "2"))
	assert.NoError(t, e.SetWave(a, 1, "cooldown", "600"))
	assert.NoError(t, e.SetWave(a, 1, "prespawned", "3"))
	assert.NoError(t, e.SetWave(a, 1, "spawntimer", "65535"))

	assert.Equal(t, level.Wave{
		Enemy:         enemy.Tank,
		Count:         0x1234,
		SpawnLimit:    9,
		Modifier:      2,
		CooldownTimer: 600,
		PreSpawned:    3,
		SpawnTimer:    65535,
	}, a.Waves[0])

	assert.Error(t, e.SetWave(a, 2, "count", "1"))
	assert.Error(t, e.SetWave(a, 1, "limit", "300"))
	assert.Error(t, e.SetWave(a, 1, "count", "65536"))
	assert.Error(t, e.SetWave(a, 1, "enemy", "dragon"))
	assert.Error(t, e.SetWave(a, 1, "speed", "1"))
}

func TestParseArenaRef(t *testing.T) {
	circuit, arena, err := ParseArenaRef("2:23")
	assert.NoError(t, err)
	assert.Equal(t, 2, circuit)
	assert.Equal(t, 23, arena)

	for _, ref := range []string{"2", "a:1", "1:b", "0:12", "3:1"} {
		_, _, err = ParseArenaRef(ref)
		assert.Error(t, err)
	}
}

func TestParseConnection(t *testing.T) {
	conn, err := ParseConnection(0, "-")
	assert.NoError(t, err)
	assert.Equal(t, level.NoConnection, conn)

	conn, err = ParseConnection(2, "23")
	assert.NoError(t, err)
	assert.Equal(t, level.Connection(23), conn)

	_, err = ParseConnection(0, "0")
	assert.Error(t, err)
}
