package analyzer

import (
	"strings"

	"github.com/tennolab/farmscout/internal/model"
)

// FilterMissions drops every record whose mission, planet, or type contains
// any exclusion term as a case-insensitive substring. An empty term list is
// the identity. Surviving records keep their order, which also makes the
// filter idempotent.
func FilterMissions(records []model.FarmRecord, terms []string) []model.FarmRecord {
	if len(terms) == 0 {
		return records
	}

	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	if len(lowered) == 0 {
		return records
	}

	kept := make([]model.FarmRecord, 0, len(records))
	for _, r := range records {
		if !excluded(r, lowered) {
			kept = append(kept, r)
		}
	}
	return kept
}

func excluded(r model.FarmRecord, lowered []string) bool {
	mission := strings.ToLower(r.Mission)
	planet := strings.ToLower(r.Planet)
	mtype := strings.ToLower(r.Type)
	for _, term := range lowered {
		if strings.Contains(mission, term) || strings.Contains(planet, term) || strings.Contains(mtype, term) {
			return true
		}
	}
	return false
}
