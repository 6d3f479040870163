// Package names contains the display names of the arenas. They are display
// metadata only and independent of the names stored in the cartridge.
package names

import (
	"github.com/retroenv/smashtvedit/internal/level"
)

var arenaNames = [level.ArenaCount]string{
	"Arena 1",
	"Collect 10 keys!",
	"Collect powerups!",
	"Meet Mr. Shrapnel",
	"Bonus prizes!",
	"Eat my shrapnel",
	"Total carnage",
	"Crowd control",
	"Tank trouble",
	"Mutoid Man!",
	"Secret room #1!",

	"Orbs!",
	"Meet my twin",
	"Smash 'em",
	"Fire power is needed!",
	"Slaughter 'em",
	"Lazer death zone",
	"Meet Scarface!",
	"Rowdy droids",
	"Vacuum clean",
	"Secret room #2!",
	"Metal death",
	"Watch your step",
	"Film at 11",
	"Defend me",
	"Turtles nearby",
	"Chunks galore!",
	"These are fast!",
	"Buffalo herd nearby!",

	"No dice",
	"Temple alert",
	"Scorpion fever",
	"Cobra just ahead!",
	"Walls of pain",
	"Last arena?",
	"Cobra death!",
	"Turtles beware!",
	"Extra sauce action!",
	"Secret room #3!",
	"Secret rooms nearby!",
	"Enjoy my wealth",
	"No turtles allowed!",
	"Turtle chunks needed",
	"Dynamite cobra boss",
	"Use the buffalo gun",
	"Witness total carnage",
	"Secret rooms nearby!",
	"Almost enough keys",
	"You have enough keys!",
	"Eat my eyeballs!",
	"Pleasure dome!",
	"Not enough keys!",
}

// Labels for the special connection values.
const (
	NoConnectionLabel = "-"
	GoalLabel         = "Goal"
)

// Flat returns the display name of the arena with the 0 based flat index.
func Flat(index int) string {
	if index < 0 || index >= len(arenaNames) {
		return ""
	}
	return arenaNames[index]
}

// Arena returns the display name of an arena of a circuit.
func Arena(circuit, arena int) string {
	index, err := level.FlatIndex(circuit, arena)
	if err != nil {
		return ""
	}
	return Flat(index)
}

// Connection returns the label of a connection of an arena of the circuit.
func Connection(circuit int, conn level.Connection) string {
	switch {
	case conn.IsNone():
		return NoConnectionLabel
	case conn.IsGoal():
		return GoalLabel
	}
	index, ok := conn.Target(circuit)
	if !ok {
		return "?"
	}
	return Flat(index)
}
