package model

import "strings"

// EquipmentType selects which component suffixes a prime item can split into.
type EquipmentType string

const (
	EquipmentWarframe  EquipmentType = "warframe"
	EquipmentPrimary   EquipmentType = "primary"
	EquipmentMelee     EquipmentType = "melee"
	EquipmentSecondary EquipmentType = "secondary"
)

// ParseEquipmentType recognizes an equipment type name, case-insensitively.
func ParseEquipmentType(s string) (EquipmentType, bool) {
	switch EquipmentType(strings.ToLower(strings.TrimSpace(s))) {
	case EquipmentWarframe:
		return EquipmentWarframe, true
	case EquipmentPrimary:
		return EquipmentPrimary, true
	case EquipmentMelee:
		return EquipmentMelee, true
	case EquipmentSecondary:
		return EquipmentSecondary, true
	}
	return "", false
}

// componentSuffixes are the per-part names appended to a prime base name.
// Melee has two layouts (Blade/Hilt vs Blade/Handle/Guard); the analyzer
// probes the document to pick one.
var componentSuffixes = map[EquipmentType][]string{
	EquipmentWarframe:  {"Blueprint", "Chassis Blueprint", "Neuroptics Blueprint", "Systems Blueprint"},
	EquipmentPrimary:   {"Blueprint", "Stock", "Barrel", "Receiver"},
	EquipmentSecondary: {"Blueprint", "Barrel", "Receiver"},
}

// meleeBladeHilt is the two-part melee layout probed first.
var meleeBladeHilt = []string{"Blueprint", "Blade", "Hilt"}

// meleeBladeHandleGuard is the fallback melee layout.
var meleeBladeHandleGuard = []string{"Blueprint", "Blade", "Handle", "Guard"}

// ComponentSuffixes returns the candidate part names for an equipment type.
// For melee the caller chooses between the two layouts via MeleeLayouts.
func (t EquipmentType) ComponentSuffixes() []string {
	return componentSuffixes[t]
}

// MeleeLayouts returns the probed layout and the fallback layout for melee
// weapons, in that order.
func MeleeLayouts() (probe []string, fallback []string) {
	return meleeBladeHilt, meleeBladeHandleGuard
}

// componentMarkers are substrings whose presence means an item name already
// denotes a specific component rather than a base equipment name.
var componentMarkers = []string{
	"Blueprint", "Chassis", "Neuroptics", "Systems",
	"Barrel", "Receiver", "Stock",
	"Blade", "Handle", "Guard", "Hilt",
}

// IsComponentName reports whether the item name already names a specific
// component ("Gauss Prime Chassis Blueprint") as opposed to a base item
// ("Gauss Prime").
func IsComponentName(item string) bool {
	for _, marker := range componentMarkers {
		if strings.Contains(item, marker) {
			return true
		}
	}
	return false
}
