package droptable

import (
	"strings"

	"github.com/tennolab/farmscout/internal/model"
)

// LocateRelics finds every relic whose reward table mentions the item name
// (exact, case-sensitive substring) and counts, per relic, its reward-table
// mentions and its live-drop mentions. The caller reads vault status off the
// returned RelicStatus values. An item that appears nowhere yields an empty
// map, not an error.
func LocateRelics(text, itemName string) map[string]model.RelicStatus {
	statuses := make(map[string]model.RelicStatus)
	lines := strings.Split(text, "\n")

	// First pass: lines naming the item inside a relic reward table.
	for _, line := range lines {
		if !strings.Contains(line, itemName) {
			continue
		}
		m := relicHeaderRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1] + " " + m[2]
		st := statuses[name]
		st.RewardMentions++
		statuses[name] = st
	}

	// Second pass: lines where a discovered relic appears as an obtainable
	// drop. A refinement parenthetical marks the reward-table header itself,
	// which must not count.
	for name, st := range statuses {
		needle := name + " Relic"
		for _, line := range lines {
			if strings.Contains(line, needle) && strings.Contains(line, "%") && !refinementRe.MatchString(line) {
				st.DropMentions++
			}
		}
		statuses[name] = st
	}

	return statuses
}
