package gen

import (
	"path/filepath"
	"strings"
)

// Extension classes drive both the base size range and the bytes-per-line
// divisor range.
type sizeClass struct {
	exts       []string
	minSize    int64
	maxSize    int64
	minDivisor int64
	maxDivisor int64
}

var sizeClasses = []sizeClass{
	{[]string{".js", ".ts", ".py", ".java", ".cpp", ".c", ".h"}, 500, 5000, 30, 50},
	{[]string{".md", ".txt"}, 100, 2000, 40, 60},
	{[]string{".json", ".yaml"}, 50, 1000, 25, 35},
	{[]string{".css", ".scss"}, 200, 3000, 35, 45},
}

// Base range and divisor for any extension not in a known class.
var otherClass = sizeClass{nil, 100, 1500, 20, 80}

func classFor(path string) *sizeClass {
	ext := strings.ToLower(filepath.Ext(path))
	for i := range sizeClasses {
		for _, e := range sizeClasses[i].exts {
			if e == ext {
				return &sizeClasses[i]
			}
		}
	}
	return &otherClass
}

// SynthesizeMetrics produces fresh metrics for a file: a base size drawn
// from the extension's range, a +/-20% multiplicative jitter, then derived
// line and block counts. All outputs are floored at 1.
func (s *Synthesizer) SynthesizeMetrics(path string) Metrics {
	c := classFor(path)
	base := s.randInRange(c.minSize, c.maxSize)
	size := int64(float64(base) * (0.8 + s.rng.Float64()*0.4))
	if size < 1 {
		size = 1
	}
	return s.MetricsForSize(path, size)
}

// MetricsForSize derives line and block counts for an exact, already-known
// size. Used by modify events, where the new size is prior size plus delta
// and must not be jittered again.
func (s *Synthesizer) MetricsForSize(path string, size int64) Metrics {
	if size < 1 {
		size = 1
	}
	c := classFor(path)

	lines := size / s.randInRange(c.minDivisor, c.maxDivisor)
	if lines < 1 {
		lines = 1
	}

	blocks := (size + 511) / 512
	if blocks < 1 {
		blocks = 1
	}

	return Metrics{Size: size, Lines: lines, Blocks: blocks}
}

// randInRange returns a uniform value in [lo, hi] inclusive.
func (s *Synthesizer) randInRange(lo, hi int64) int64 {
	return lo + int64(s.rng.Intn(int(hi-lo+1)))
}
