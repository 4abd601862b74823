package gen

import (
	"math/rand"
	"testing"
)

func TestEventType_CodeRoundTrip(t *testing.T) {
	for _, et := range []EventType{Find, Create, Modify, Delete, Move, Restore} {
		got, err := ParseEventType(et.Code())
		if err != nil {
			t.Fatalf("ParseEventType(%q) error = %v", et.Code(), err)
		}
		if got != et {
			t.Errorf("ParseEventType(%q) = %v, want %v", et.Code(), got, et)
		}
	}
}

func TestParseEventType_Unknown(t *testing.T) {
	if _, err := ParseEventType("truncate"); err == nil {
		t.Error("ParseEventType(\"truncate\") error = nil, want error")
	}
}

func TestEventTypeSeeds(t *testing.T) {
	seeds := EventTypeSeeds()
	if len(seeds) != 6 {
		t.Fatalf("len(seeds) = %d, want 6", len(seeds))
	}

	wantCodes := []string{"find", "create", "modify", "delete", "move", "restore"}
	for i, want := range wantCodes {
		if seeds[i].Code != want {
			t.Errorf("seeds[%d].Code = %q, want %q", i, seeds[i].Code, want)
		}
		if seeds[i].Name == "" || seeds[i].Description == "" {
			t.Errorf("seeds[%d] has empty name or description", i)
		}
	}
}

func TestTypeTableFor(t *testing.T) {
	tests := []struct {
		intensity float64
		wantLen   int
		wantFirst weightedType
	}{
		{0.8, 4, weightedType{Modify, 0.7}},
		{0.61, 4, weightedType{Modify, 0.7}},
		{0.6, 4, weightedType{Modify, 0.5}},
		{0.4, 4, weightedType{Modify, 0.5}},
		{0.3, 3, weightedType{Modify, 0.4}},
		{0.1, 3, weightedType{Modify, 0.4}},
	}

	for _, tt := range tests {
		table := typeTableFor(tt.intensity)
		if len(table) != tt.wantLen {
			t.Errorf("typeTableFor(%v) len = %d, want %d", tt.intensity, len(table), tt.wantLen)
		}
		if table[0] != tt.wantFirst {
			t.Errorf("typeTableFor(%v)[0] = %+v, want %+v", tt.intensity, table[0], tt.wantFirst)
		}
	}
}

func TestPickEventType_RespectsTable(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	counts := make(map[EventType]int)
	for i := 0; i < 2000; i++ {
		counts[pickEventType(rng, lowActivityTypes)]++
	}

	// Low activity draws only from modify/find/create.
	for _, et := range []EventType{Delete, Move, Restore} {
		if counts[et] != 0 {
			t.Errorf("low-activity table produced %v %d times", et, counts[et])
		}
	}
	for _, et := range []EventType{Modify, Find, Create} {
		if counts[et] == 0 {
			t.Errorf("low-activity table never produced %v", et)
		}
	}

	// Weighted draw: modify (0.4) should beat create (0.2) over 2000 samples.
	if counts[Modify] <= counts[Create] {
		t.Errorf("modify count %d not greater than create count %d", counts[Modify], counts[Create])
	}
}
