// Package droptable reconstructs structured drop facts from the flattened
// text of the official drop-table document. The document has no stable
// delimiters, so extraction is positional pattern-matching over its known
// textual conventions. Every such convention is compiled in this file;
// format drift in the upstream document should only ever touch here.
package droptable

import "regexp"

var (
	// relicHeaderRe matches a relic reward-table header,
	// e.g. "Lith A10 Relic (Radiant)".
	relicHeaderRe = regexp.MustCompile(`(Lith|Meso|Neo|Axi)\s+([A-Z]\d+)\s+Relic\s+\((Intact|Exceptional|Flawless|Radiant)\)`)

	// refinementRe matches the refinement parenthetical on its own. A line
	// carrying one is a reward-table header, not a live drop.
	refinementRe = regexp.MustCompile(`\((Intact|Exceptional|Flawless|Radiant)\)`)

	// missionHeaderRe matches a mission header, e.g. "Mercury/Suisei (Spy)".
	missionHeaderRe = regexp.MustCompile(`([^/\n]+)/([^(\n]+)\s*\(([^)]+)\)`)

	// rotationRe matches a rotation header inside a mission block.
	rotationRe = regexp.MustCompile(`Rotation ([ABC])`)
)

// pseudoPlanets are document section headers that parse like planet names but
// are not real missions.
var pseudoPlanets = map[string]struct{}{
	"Relics": {},
	"Event":  {},
	"Baro":   {},
}

// RotationlessLabel is the rotation assigned to rewards listed before the
// first rotation header of a mission (single-reward mission types).
const RotationlessLabel = "Reward"

const (
	relicRarities = `Rare|Uncommon|Common|Very Common`
	modRarities   = `Very Common|Common|Uncommon|Rare|Ultra Rare|Legendary`
)

// relicRewardPattern matches a relic drop entry inside a rotation segment.
// The document glues the relic name straight onto the rarity token with no
// separator: "Lith A10 RelicUncommon (14.29%)".
func relicRewardPattern(relicName string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(relicName+" Relic") + `(` + relicRarities + `)\s*\(([0-9.]+)%\)`)
}

// modRewardPattern matches a mod drop entry. Mods carry a pipe separator
// between name and rarity and extend the rarity set.
func modRewardPattern(modName string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(modName) + `\s*\|\s*(` + modRarities + `)\s*\(([0-9.]+)%\)`)
}
