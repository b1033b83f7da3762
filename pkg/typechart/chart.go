package typechart

import "slices"

type TypeName string

const (
	Shadow  TypeName = "shadow"
	Unknown TypeName = "unknown"
)

func (name TypeName) IsSentinel() bool {
	return name == Shadow || name == Unknown
}

// Playable filters the categories that take no part in battle mechanics out
// of a provider type list, keeping the provider's order.
func Playable(names []TypeName) []TypeName {
	types := make([]TypeName, 0, len(names))
	for _, name := range names {
		if name == "" || name.IsSentinel() || slices.Contains(types, name) {
			continue
		}
		types = append(types, name)
	}

	return types
}

// RawRelations is the damage relation record of an attacking type as served
// by a data provider.
type RawRelations struct {
	DoubleDamageTo []TypeName
	HalfDamageTo   []TypeName
	NoDamageTo     []TypeName
}

type Set map[TypeName]struct{}

func (s Set) Has(name TypeName) bool {
	_, ok := s[name]
	return ok
}

type Relations struct {
	StrongAgainst      Set
	WeakAgainst        Set
	IneffectiveAgainst Set
}

func neutral() Relations {
	return Relations{
		StrongAgainst:      Set{},
		WeakAgainst:        Set{},
		IneffectiveAgainst: Set{},
	}
}

// Chart maps every attacking type to its relations. It is immutable once
// built and is shared by pointer.
type Chart struct {
	types     []TypeName
	relations map[TypeName]Relations
}

// Build converts raw relation records into a chart keyed by exactly the
// given types. Types missing from raw are neutral against everything.
func Build(types []TypeName, raw map[TypeName]RawRelations) *Chart {
	chart := &Chart{
		types:     slices.Clone(types),
		relations: make(map[TypeName]Relations, len(types)),
	}

	for _, typ := range types {
		rels := neutral()
		r, ok := raw[typ]
		if ok {
			// no damage wins over double, double over half.
			for _, t := range r.NoDamageTo {
				rels.IneffectiveAgainst[t] = struct{}{}
			}
			for _, t := range r.DoubleDamageTo {
				if !rels.IneffectiveAgainst.Has(t) {
					rels.StrongAgainst[t] = struct{}{}
				}
			}
			for _, t := range r.HalfDamageTo {
				if !rels.IneffectiveAgainst.Has(t) && !rels.StrongAgainst.Has(t) {
					rels.WeakAgainst[t] = struct{}{}
				}
			}
		}
		chart.relations[typ] = rels
	}

	return chart
}

// Ready reports whether the chart can be used for scoring.
func (chart *Chart) Ready() bool {
	return chart != nil && len(chart.types) > 0
}

func (chart *Chart) Types() []TypeName {
	if chart == nil {
		return nil
	}

	return slices.Clone(chart.types)
}

func (chart *Chart) Relations(attacking TypeName) (Relations, bool) {
	if chart == nil {
		return Relations{}, false
	}

	rels, ok := chart.relations[attacking]
	return rels, ok
}

// Multiplier returns the damage multiplier of an attacking type against a
// defender with the given types. Unknown attacking types are neutral.
func (chart *Chart) Multiplier(attacking TypeName, defending ...TypeName) float64 {
	m := 1.0
	rels, ok := chart.Relations(attacking)
	if !ok {
		return m
	}

	for _, d := range defending {
		switch {
		case rels.IneffectiveAgainst.Has(d):
			m *= 0
		case rels.StrongAgainst.Has(d):
			m *= 2
		case rels.WeakAgainst.Has(d):
			m *= 0.5
		}
	}

	return m
}
