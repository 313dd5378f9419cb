package droptable

import (
	"regexp"
	"strconv"

	"github.com/tennolab/farmscout/internal/model"
)

// FindRelicLocations extracts every mission/rotation where the named relic
// ("Axi A1") drops, with its rarity bucket and printed percentage. Zero
// matches is a valid result: an active relic may not be wired into any live
// mission the parser recognizes.
func FindRelicLocations(text, relicName string) []model.FarmRecord {
	return findLocations(text, relicName, relicRewardPattern(relicName))
}

// FindModLocations extracts every mission/rotation where the named mod drops.
func FindModLocations(text, modName string) []model.FarmRecord {
	return findLocations(text, modName, modRewardPattern(modName))
}

func findLocations(text, source string, reward *regexp.Regexp) []model.FarmRecord {
	var records []model.FarmRecord
	for _, block := range splitMissions(text) {
		if _, skip := pseudoPlanets[block.Planet]; skip {
			continue
		}
		for _, segment := range splitRotations(block.Content) {
			// A segment can list the reward under several rarity buckets;
			// emit one record per match.
			for _, m := range reward.FindAllStringSubmatch(segment.Content, -1) {
				chance, err := strconv.ParseFloat(m[2], 64)
				if err != nil {
					continue
				}
				records = append(records, model.FarmRecord{
					Mission:  block.Mission,
					Planet:   block.Planet,
					Type:     block.Type,
					Rotation: segment.Label,
					Source:   source,
					Rarity:   m[1],
					Chance:   chance,
				})
			}
		}
	}
	return records
}
