package gen

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/brianvoe/gofakeit/v6"
)

// FilePattern describes one file-type category: where such files live, what
// extensions they use, and how likely the category is to be picked.
type FilePattern struct {
	Name       string
	Extensions []string
	Dirs       []string
	Weight     float64
}

var filePatterns = []FilePattern{
	{
		Name:       "source_code",
		Extensions: []string{".js", ".ts", ".py", ".java", ".cpp", ".c", ".h"},
		Dirs:       []string{"src", "lib", "utils", "components", "models", "controllers"},
		Weight:     0.4,
	},
	{
		Name:       "documentation",
		Extensions: []string{".md", ".txt", ".rst", ".adoc"},
		Dirs:       []string{"docs", "README", "notes", "wiki"},
		Weight:     0.2,
	},
	{
		Name:       "config",
		Extensions: []string{".json", ".yaml", ".yml", ".toml", ".ini", ".cfg"},
		Dirs:       []string{"config", "settings", ".vscode", ".github"},
		Weight:     0.15,
	},
	{
		Name:       "web_assets",
		Extensions: []string{".html", ".css", ".scss", ".less"},
		Dirs:       []string{"public", "static", "assets", "styles"},
		Weight:     0.15,
	},
	{
		Name:       "data",
		Extensions: []string{".csv", ".json", ".xml", ".log"},
		Dirs:       []string{"data", "logs", "temp", "cache"},
		Weight:     0.1,
	},
}

var baseNames = []string{
	"index", "main", "app", "config", "utils", "helper", "component",
	"service", "model", "controller", "router", "middleware", "auth",
	"database", "schema", "migration", "test", "spec", "fixture",
	"readme", "changelog", "license", "gitignore", "package",
}

var nameSuffixes = []string{"_test", "_spec", "_utils", "_helper", "_backup"}

// Synthesizer produces plausible file paths and metrics from a single
// injected random source, so a fixed seed yields a fixed sequence.
type Synthesizer struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
}

// NewSynthesizer creates a Synthesizer driven by rng. The embedded faker is
// seeded from the same source to keep the whole output deterministic.
func NewSynthesizer(rng *rand.Rand) *Synthesizer {
	return &Synthesizer{
		rng:   rng,
		faker: gofakeit.New(rng.Int63()),
	}
}

// PickPattern selects a file category by its configured weight.
func (s *Synthesizer) PickPattern() *FilePattern {
	var total float64
	for i := range filePatterns {
		total += filePatterns[i].Weight
	}
	r := s.rng.Float64() * total
	for i := range filePatterns {
		r -= filePatterns[i].Weight
		if r < 0 {
			return &filePatterns[i]
		}
	}
	return &filePatterns[len(filePatterns)-1]
}

// RandomPattern selects a file category uniformly, ignoring weights.
// Live mode uses this when it fabricates a brand-new file.
func (s *Synthesizer) RandomPattern() *FilePattern {
	return &filePatterns[s.rng.Intn(len(filePatterns))]
}

// GeneratePath returns a plausible (path, name, directory) triple for the
// given category. The base name may be decorated with a suffix (p=0.3)
// and/or a numeric disambiguator (p=0.2); the directory is nested under 1-3
// synthetic subdirectories with p=0.4.
func (s *Synthesizer) GeneratePath(p *FilePattern) (path, name, dir string) {
	dir = p.Dirs[s.rng.Intn(len(p.Dirs))]
	ext := p.Extensions[s.rng.Intn(len(p.Extensions))]
	base := baseNames[s.rng.Intn(len(baseNames))]

	if s.rng.Float64() < 0.3 {
		base += nameSuffixes[s.rng.Intn(len(nameSuffixes))]
	}
	if s.rng.Float64() < 0.2 {
		base = fmt.Sprintf("%s_%d", base, 1+s.rng.Intn(99))
	}

	name = base + ext

	if s.rng.Float64() < 0.4 {
		depth := 1 + s.rng.Intn(3)
		for i := 0; i < depth; i++ {
			dir = filepath.Join(dir, s.faker.Word())
		}
	}

	return filepath.Join(dir, name), name, dir
}

// Inode returns a simulated inode number in [100000, 999999].
func (s *Synthesizer) Inode() int64 {
	return 100000 + int64(s.rng.Intn(900000))
}
