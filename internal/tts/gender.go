package tts

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nikhilbhutani/screenplaybackend/internal/models"
)

// Common French and English first names.
var (
	defaultFemaleNames = []string{
		"MARIE", "SOPHIE", "JULIE", "EMMA", "LÉA", "CHLOÉ", "CAMILLE", "SARAH",
		"LAURA", "CLARA", "ALICE", "ANNA", "EVA", "LISA", "MARY", "JANE",
		"OLIVIA", "AVA", "MIA", "EMILY", "ELLA", "LUCY", "GRACE",
	}
	defaultMaleNames = []string{
		"JEAN", "PIERRE", "PAUL", "JACQUES", "MICHEL", "MARC", "LUC", "THOMAS",
		"NICOLAS", "ANTOINE", "LOUIS", "HUGO", "LUCAS", "JOHN", "JAMES", "DAVID",
		"MICHAEL", "WILLIAM", "RICHARD", "ROBERT", "CHARLES", "JOSEPH",
	}
)

// NameSets is the on-disk form of a gender heuristic.
type NameSets struct {
	Female []string `yaml:"female"`
	Male   []string `yaml:"male"`
}

// GenderGuesser guesses a character's gender from the first token of its
// name. It is a heuristic: names outside both sets are neutral.
type GenderGuesser struct {
	female map[string]struct{}
	male   map[string]struct{}
}

// NewGenderGuesser builds a guesser from explicit name sets. Names are
// matched case-insensitively.
func NewGenderGuesser(sets NameSets) *GenderGuesser {
	return &GenderGuesser{
		female: toSet(sets.Female),
		male:   toSet(sets.Male),
	}
}

// DefaultGenderGuesser uses the built-in French and English name lists.
func DefaultGenderGuesser() *GenderGuesser {
	return NewGenderGuesser(NameSets{Female: defaultFemaleNames, Male: defaultMaleNames})
}

// LoadNameSets reads a YAML file with "female" and "male" lists.
func LoadNameSets(path string) (*GenderGuesser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read name sets: %w", err)
	}

	var sets NameSets
	if err := yaml.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("parse name sets %s: %w", path, err)
	}
	if len(sets.Female) == 0 && len(sets.Male) == 0 {
		return nil, fmt.Errorf("name sets %s: no names defined", path)
	}

	return NewGenderGuesser(sets), nil
}

// Guess returns female, male or neutral. It never fails; an empty name is
// neutral.
func (g *GenderGuesser) Guess(name string) string {
	fields := strings.Fields(strings.ToUpper(name))
	if len(fields) == 0 {
		return models.GenderNeutral
	}

	first := fields[0]
	if _, ok := g.female[first]; ok {
		return models.GenderFemale
	}
	if _, ok := g.male[first]; ok {
		return models.GenderMale
	}
	return models.GenderNeutral
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.ToUpper(strings.TrimSpace(n))
		if n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
