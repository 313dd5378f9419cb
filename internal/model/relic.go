package model

// RelicTier is the era of a relic (drop-table section ordering follows it).
type RelicTier string

const (
	TierLith RelicTier = "Lith"
	TierMeso RelicTier = "Meso"
	TierNeo  RelicTier = "Neo"
	TierAxi  RelicTier = "Axi"
)

// Refinement is one of the four upgrade levels every relic reward table lists.
type Refinement string

const (
	RefinementIntact      Refinement = "Intact"
	RefinementExceptional Refinement = "Exceptional"
	RefinementFlawless    Refinement = "Flawless"
	RefinementRadiant     Refinement = "Radiant"
)

// RelicStatus counts how a relic shows up in the drop-table document for a
// given target item: RewardMentions is the number of reward-table lines that
// name the item under this relic, DropMentions the number of lines where the
// relic itself appears as an obtainable drop.
type RelicStatus struct {
	RewardMentions int `json:"reward_mentions"`
	DropMentions   int `json:"drop_mentions"`
}

// Vaulted reports whether the relic is vaulted. The document lists exactly
// four refinement rows for every relic's reward table regardless of vault
// status, but only active relics also appear as live drops elsewhere, so four
// reward mentions with zero drop mentions means vaulted. A relic whose reward
// table is incompletely listed will misclassify; that is a property of the
// source document, not of this check.
func (s RelicStatus) Vaulted() bool {
	return s.RewardMentions == 4 && s.DropMentions == 0
}
