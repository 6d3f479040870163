// Package enemy maps the one byte enemy codes of the wave records to enemy types.
package enemy

import (
	"fmt"
	"strings"
)

// Type is an enemy type that can be spawned by a wave.
type Type uint8

// Enemy types in table order.
const (
	Grunt Type = iota
	WallGunner
	Worm
	RedDroid
	Snakes
	CobraGrunt
	LaserOrb
	Tank
	RedCluster
	MrShrapnel
	WormSegment
	PurpleRedDroid
	Droid
	PurpleWorm
	Mine
	CobraDeath
	MutoidMan
	Scarface
	Presents
	QuestionMark
	Babe

	typeCount
)

// ReservedCode is skipped by the game and is never a valid enemy code.
const ReservedCode = 19

type typeInfo struct {
	code byte
	name string
}

// code 19 is not used, the table can not be replaced by arithmetic.
var types = [typeCount]typeInfo{
	Grunt:          {1, "Grunt"},
	WallGunner:     {2, "Wall gunner"},
	Worm:           {3, "Worm"},
	RedDroid:       {4, "Red droid"},
	Snakes:         {5, "Snakes"},
	CobraGrunt:     {6, "Cobra grunt"},
	LaserOrb:       {7, "Laser orb"},
	Tank:           {8, "Tank"},
	RedCluster:     {9, "Red cluster"},
	MrShrapnel:     {10, "Mr Shrapnel"},
	WormSegment:    {11, "Worm segment"},
	PurpleRedDroid: {12, "Purple / red droid"},
	Droid:          {13, "Droid"},
	PurpleWorm:     {14, "Purple worm"},
	Mine:           {15, "Mine"},
	CobraDeath:     {16, "Cobra Death"},
	MutoidMan:      {17, "Mutoid Man"},
	Scarface:       {18, "Scarface"},
	Presents:       {20, "Presents"},
	QuestionMark:   {21, "Question mark"},
	Babe:           {22, "Babe"},
}

var codeToType = func() map[byte]Type {
	m := make(map[byte]Type, len(types))
	for typ, info := range types {
		m[info.code] = Type(typ)
	}
	return m
}()

// UnknownCodeError is returned when decoding a byte that does not map to an enemy type.
type UnknownCodeError struct {
	Value byte
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown enemy code 0x%02X", e.Value)
}

// Decode returns the enemy type of the given code.
func Decode(code byte) (Type, error) {
	typ, ok := codeToType[code]
	if !ok {
		return 0, &UnknownCodeError{Value: code}
	}
	return typ, nil
}

// Encode returns the code of the given enemy type.
func Encode(typ Type) (byte, error) {
	if !typ.Valid() {
		return 0, fmt.Errorf("invalid enemy type %d", typ)
	}
	return types[typ].code, nil
}

// All returns all enemy types in table order.
func All() []Type {
	all := make([]Type, typeCount)
	for i := range all {
		all[i] = Type(i)
	}
	return all
}

// Names returns the display names of all enemy types in table order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, typ := range all {
		names[i] = typ.String()
	}
	return names
}

// Parse returns the enemy type matching the given display name, ignoring case.
func Parse(name string) (Type, error) {
	name = strings.TrimSpace(name)
	for typ, info := range types {
		if strings.EqualFold(info.name, name) {
			return Type(typ), nil
		}
	}
	return 0, fmt.Errorf("unknown enemy name '%s', valid names: %s", name, strings.Join(Names(), ", "))
}

// Valid returns whether the type is one of the known enemy types.
func (t Type) Valid() bool {
	return t < typeCount
}

// String returns the display name of the enemy type.
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return types[t].name
}
