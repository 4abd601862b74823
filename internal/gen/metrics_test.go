package gen

import (
	"math/rand"
	"testing"
)

func newTestSynthesizer(seed int64) *Synthesizer {
	return NewSynthesizer(rand.New(rand.NewSource(seed)))
}

func TestSynthesizeMetrics_Ranges(t *testing.T) {
	s := newTestSynthesizer(42)

	// Source code: base in [500, 5000], jitter in [0.8, 1.2].
	for i := 0; i < 500; i++ {
		m := s.SynthesizeMetrics("src/main.py")
		if m.Size < 400 || m.Size > 6000 {
			t.Fatalf("Size = %d, want within [400, 6000]", m.Size)
		}
		if m.Lines < 1 {
			t.Fatalf("Lines = %d, want >= 1", m.Lines)
		}
		if want := (m.Size + 511) / 512; m.Blocks != want {
			t.Fatalf("Blocks = %d, want %d for size %d", m.Blocks, want, m.Size)
		}
	}
}

func TestSynthesizeMetrics_UnknownExtension(t *testing.T) {
	s := newTestSynthesizer(7)

	// Fallback class: base in [100, 1500].
	for i := 0; i < 500; i++ {
		m := s.SynthesizeMetrics("data/report.xml")
		if m.Size < 80 || m.Size > 1800 {
			t.Fatalf("Size = %d, want within [80, 1800]", m.Size)
		}
	}
}

func TestMetricsForSize_ExactSize(t *testing.T) {
	s := newTestSynthesizer(1)

	m := s.MetricsForSize("src/app.js", 900)
	if m.Size != 900 {
		t.Errorf("Size = %d, want 900", m.Size)
	}
	// Divisor for code files is in [30, 50].
	if m.Lines < 900/50 || m.Lines > 900/30 {
		t.Errorf("Lines = %d, want within [%d, %d]", m.Lines, 900/50, 900/30)
	}
	if m.Blocks != 2 {
		t.Errorf("Blocks = %d, want 2", m.Blocks)
	}
}

func TestMetricsForSize_FloorsAtOne(t *testing.T) {
	s := newTestSynthesizer(1)

	for _, size := range []int64{0, -50, 1} {
		m := s.MetricsForSize("notes.md", size)
		if m.Size < 1 || m.Lines < 1 || m.Blocks < 1 {
			t.Errorf("MetricsForSize(%d) = %+v, want all fields >= 1", size, m)
		}
	}
}

func TestNextMetrics_Transitions(t *testing.T) {
	s := newTestSynthesizer(3)
	rng := rand.New(rand.NewSource(3))

	t.Run("create synthesizes fresh", func(t *testing.T) {
		if m := nextMetrics(s, rng, Create, "src/main.go", nil); m == nil {
			t.Error("got nil, want fresh metrics")
		}
	})

	t.Run("modify applies exact delta", func(t *testing.T) {
		cur := &Metrics{Size: 1000, Lines: 25, Blocks: 2}
		for i := 0; i < 200; i++ {
			m := nextMetrics(s, rng, Modify, "src/main.go", cur)
			if m.Size < 900 || m.Size > 1500 {
				t.Fatalf("Size = %d, want within [900, 1500]", m.Size)
			}
			if want := (m.Size + 511) / 512; m.Blocks != want {
				t.Fatalf("Blocks = %d, want %d", m.Blocks, want)
			}
		}
	})

	t.Run("modify without prior metrics synthesizes", func(t *testing.T) {
		if m := nextMetrics(s, rng, Modify, "src/main.go", nil); m == nil {
			t.Error("got nil, want fresh metrics")
		}
	})

	t.Run("delete and move carry forward", func(t *testing.T) {
		cur := &Metrics{Size: 777, Lines: 20, Blocks: 2}
		for _, et := range []EventType{Delete, Move} {
			if m := nextMetrics(s, rng, et, "src/main.go", cur); m != cur {
				t.Errorf("%v: metrics changed, want carried forward", et)
			}
		}
	})

	t.Run("restore keeps prior metrics", func(t *testing.T) {
		cur := &Metrics{Size: 777, Lines: 20, Blocks: 2}
		if m := nextMetrics(s, rng, Restore, "src/main.go", cur); m != cur {
			t.Error("restore with prior metrics changed them")
		}
		if m := nextMetrics(s, rng, Restore, "src/main.go", nil); m == nil {
			t.Error("restore without prior metrics returned nil")
		}
	})
}
