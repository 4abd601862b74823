package gen

import (
	"fmt"
	"math/rand"
)

// EventType identifies a discrete file lifecycle transition.
type EventType int

const (
	Find EventType = iota
	Create
	Modify
	Delete
	Move
	Restore
)

// Code returns the stable code stored in the event_types table.
func (t EventType) Code() string {
	switch t {
	case Find:
		return "find"
	case Create:
		return "create"
	case Modify:
		return "modify"
	case Delete:
		return "delete"
	case Move:
		return "move"
	case Restore:
		return "restore"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

func (t EventType) String() string { return t.Code() }

// ParseEventType maps a code back to its EventType.
func ParseEventType(code string) (EventType, error) {
	for _, t := range []EventType{Find, Create, Modify, Delete, Move, Restore} {
		if t.Code() == code {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown event type code: %q", code)
}

// EventTypeSeed is one static row of the event_types table.
type EventTypeSeed struct {
	Code        string
	Name        string
	Description string
}

// EventTypeSeeds returns the fixed set of event-type rows. The set is
// immutable once seeded.
func EventTypeSeeds() []EventTypeSeed {
	return []EventTypeSeed{
		{"find", "Find", "Initial file discovery"},
		{"create", "Create", "File creation"},
		{"modify", "Modify", "File modification"},
		{"delete", "Delete", "File deletion"},
		{"move", "Move", "File move/rename"},
		{"restore", "Restore", "File restoration after deletion"},
	}
}

type weightedType struct {
	t EventType
	w float64
}

// Weight tables keyed by activity intensity. Indexed by enum rather than
// string codes so a missing entry is a compile error, not a runtime lookup
// failure.
var (
	highActivityTypes = []weightedType{
		{Modify, 0.7}, {Create, 0.1}, {Move, 0.1}, {Delete, 0.1},
	}
	mediumActivityTypes = []weightedType{
		{Modify, 0.5}, {Create, 0.2}, {Move, 0.2}, {Delete, 0.1},
	}
	lowActivityTypes = []weightedType{
		{Modify, 0.4}, {Find, 0.4}, {Create, 0.2},
	}
)

// typeTableFor selects the weight table matching the given intensity.
func typeTableFor(intensity float64) []weightedType {
	switch {
	case intensity > 0.6:
		return highActivityTypes
	case intensity > 0.3:
		return mediumActivityTypes
	default:
		return lowActivityTypes
	}
}

// pickEventType draws one event type from the table, weighted.
func pickEventType(rng *rand.Rand, table []weightedType) EventType {
	var total float64
	for _, wt := range table {
		total += wt.w
	}
	r := rng.Float64() * total
	for _, wt := range table {
		r -= wt.w
		if r < 0 {
			return wt.t
		}
	}
	return table[len(table)-1].t
}
