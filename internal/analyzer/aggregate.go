package analyzer

import (
	"github.com/tennolab/farmscout/internal/model"
)

// CombineStrategy merges the per-source chances of one mission visit into a
// single combined chance. Inputs and output are percentages in [0,100].
//
// The upstream tool's combination rule could not be recovered, so the rule is
// a modeling choice kept behind this interface rather than an extracted fact.
type CombineStrategy interface {
	Combine(chances []float64) float64
}

// IndependentUnion treats the contributing reward draws as independent and
// non-exclusive: combined = 1 - Π(1 - pᵢ). Two sources at 20% and 10%
// combine to 28%, not 30%.
type IndependentUnion struct{}

// Combine implements CombineStrategy.
func (IndependentUnion) Combine(chances []float64) float64 {
	miss := 1.0
	for _, p := range chances {
		miss *= 1 - p/100
	}
	return 100 * (1 - miss)
}

// Aggregate merges records sharing a (mission, planet, rotation) visit into
// one record per visit. Groups keep first-seen order, as do the sources
// within a group. A singleton group is re-emitted numerically unchanged with
// a SingleSource; larger groups get a CombinedSource and the strategy's
// combined chance. The first-seen member populates the shared fields;
// per-member rarities survive as a list aligned with the sources.
func Aggregate(records []model.FarmRecord, strategy CombineStrategy) []model.AggregatedFarmRecord {
	if strategy == nil {
		strategy = IndependentUnion{}
	}

	var order []model.MissionKey
	groups := make(map[model.MissionKey][]model.FarmRecord)
	for _, r := range records {
		k := r.Key()
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	out := make([]model.AggregatedFarmRecord, 0, len(order))
	for _, k := range order {
		members := groups[k]
		first := members[0]

		agg := model.AggregatedFarmRecord{
			Mission:  first.Mission,
			Planet:   first.Planet,
			Type:     first.Type,
			Rotation: first.Rotation,
		}

		if len(members) == 1 {
			agg.Source = model.SingleSource{Name: first.Source}
			agg.Rarities = []string{first.Rarity}
			agg.Chance = first.Chance
			out = append(out, agg)
			continue
		}

		names := make([]string, len(members))
		rarities := make([]string, len(members))
		chances := make([]float64, len(members))
		for i, m := range members {
			names[i] = m.Source
			rarities[i] = m.Rarity
			chances[i] = m.Chance
		}
		agg.Source = model.CombinedSource{Members: names}
		agg.Rarities = rarities
		agg.Chance = strategy.Combine(chances)
		out = append(out, agg)
	}
	return out
}
