package analyzer

import (
	"sort"

	"github.com/tennolab/farmscout/internal/model"
)

// CorrelateMultiSource groups every component's raw farm records by mission
// visit and keeps the visits offering two or more contributions — missions
// where a single run can progress several components at once. Provenance
// (which relic, at what chance) is preserved per contribution. Components are
// walked in name order so the contribution lists are deterministic.
func CorrelateMultiSource(components model.ComponentFarmMap) map[model.MissionKey][]model.ContributionDetail {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)

	byMission := make(map[model.MissionKey][]model.ContributionDetail)
	for _, name := range names {
		for _, r := range components[name].Records {
			byMission[r.Key()] = append(byMission[r.Key()], model.ContributionDetail{
				Component: name,
				Source:    r.Source,
				Chance:    r.Chance,
				Rarity:    r.Rarity,
			})
		}
	}

	for k, contributions := range byMission {
		if len(contributions) < 2 {
			delete(byMission, k)
		}
	}
	return byMission
}

// SortMissionKeys orders correlated mission keys for presentation: most
// contributions first, ties broken by mission name, planet, then rotation
// ascending. The full list is returned; top-N truncation is the caller's
// decision.
func SortMissionKeys(m map[model.MissionKey][]model.ContributionDetail) []model.MissionKey {
	keys := make([]model.MissionKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if len(m[a]) != len(m[b]) {
			return len(m[a]) > len(m[b])
		}
		if a.Mission != b.Mission {
			return a.Mission < b.Mission
		}
		if a.Planet != b.Planet {
			return a.Planet < b.Planet
		}
		return a.Rotation < b.Rotation
	})
	return keys
}
