package team

import (
	"errors"
	"fmt"

	"github.com/notjagan/teamdex/pkg/typechart"
)

const Size = 6

// Roster is a fixed sequence of slots. A nil slot is empty.
type Roster [Size]*Creature

var ErrSlotOutOfRange = errors.New("roster slot out of range")

func checkSlot(index int) error {
	if index < 0 || index >= Size {
		return fmt.Errorf("slot %d: %w", index, ErrSlotOutOfRange)
	}

	return nil
}

func (r Roster) Occupied() int {
	n := 0
	for _, c := range r {
		if c != nil {
			n++
		}
	}

	return n
}

// Minimal projects the roster to its durable form: the ID and name of each
// occupied slot, in slot order.
func (r Roster) Minimal() []Creature {
	minimal := make([]Creature, 0, Size)
	for _, c := range r {
		if c != nil {
			minimal = append(minimal, c.Minimal())
		}
	}

	return minimal
}

func (r Roster) clone() Roster {
	var out Roster
	for i, c := range r {
		if c != nil {
			out[i] = c.Clone()
		}
	}

	return out
}

// Summary is the team-wide matchup view of a roster.
type Summary struct {
	Types    []typechart.TypeName
	Defense  map[typechart.TypeName]int
	Coverage map[typechart.TypeName]int
}

func Analyze(r Roster, chart *typechart.Chart) Summary {
	return Summary{
		Types:    chart.Types(),
		Defense:  DefenseScores(r, chart),
		Coverage: CoverageCounts(r, chart.Types()),
	}
}

func contribution(m float64) int {
	switch {
	case m >= 2:
		return 1
	case m == 0, m > 0 && m <= 0.5:
		return -1
	default:
		return 0
	}
}

// DefenseScores sums, for every attacking type, +1 for each creature taking
// at least double damage and -1 for each creature resisting or immune to it.
// A chart that is not ready yields zero for every type it knows.
func DefenseScores(r Roster, chart *typechart.Chart) map[typechart.TypeName]int {
	types := chart.Types()
	scores := make(map[typechart.TypeName]int, len(types))
	for _, attacking := range types {
		scores[attacking] = 0
	}
	if !chart.Ready() {
		return scores
	}

	for _, attacking := range types {
		total := 0
		for _, c := range r {
			if c == nil {
				continue
			}
			total += contribution(chart.Multiplier(attacking, c.Types...))
		}
		scores[attacking] = total
	}

	return scores
}

// CoverageCounts tallies how many occupied slots have each type. Every type
// in types starts at zero; creature types outside it are counted as well.
func CoverageCounts(r Roster, types []typechart.TypeName) map[typechart.TypeName]int {
	counts := make(map[typechart.TypeName]int, len(types))
	for _, t := range types {
		counts[t] = 0
	}

	for _, c := range r {
		if c == nil {
			continue
		}
		for _, t := range c.Types {
			counts[t]++
		}
	}

	return counts
}
