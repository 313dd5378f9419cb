package model

import "strings"

// FarmRecord is one obtainable drop of a sought reward: a relic (or mod)
// dropping at a specific mission, planet, and rotation. Chance is a
// percentage in [0,100] read verbatim from the document — it already encodes
// the conditional drop chance given the rotation is reached and is never
// recomputed here.
type FarmRecord struct {
	Mission  string  `json:"mission"`
	Planet   string  `json:"planet"`
	Type     string  `json:"type"`
	Rotation string  `json:"rotation"`
	Source   string  `json:"source"` // relic name ("Axi A1") or mod name
	Rarity   string  `json:"rarity"`
	Chance   float64 `json:"chance"`
}

// Key returns the mission identity used for grouping.
func (r FarmRecord) Key() MissionKey {
	return MissionKey{
		Mission:  r.Mission,
		Planet:   r.Planet,
		Type:     r.Type,
		Rotation: r.Rotation,
	}
}

// MissionKey identifies a single (mission, planet, rotation) visit. Type is
// carried for display; records sharing the other three fields share it by
// construction of the document.
type MissionKey struct {
	Mission  string `json:"mission"`
	Planet   string `json:"planet"`
	Type     string `json:"type"`
	Rotation string `json:"rotation"`
}

func (k MissionKey) String() string {
	return k.Mission + " (" + k.Planet + ") - " + k.Type + " Rot. " + k.Rotation
}

// Source is the provenance of an aggregated record. It is a sealed two-arm
// variant: SingleSource when exactly one relic/mod contributed, CombinedSource
// when several did. Consumers must type-switch on the arm rather than inspect
// the rendered string.
type Source interface {
	isSource()
	Names() []string
	String() string
}

// SingleSource is the provenance of an unmerged record.
type SingleSource struct {
	Name string `json:"name"`
}

func (SingleSource) isSource() {}

// Names returns the single contributing source.
func (s SingleSource) Names() []string { return []string{s.Name} }

func (s SingleSource) String() string { return s.Name }

// CombinedSource is the provenance of a record merged from two or more
// contributing sources, in first-seen order.
type CombinedSource struct {
	Members []string `json:"members"`
}

func (CombinedSource) isSource() {}

// Names returns the contributing sources in first-seen order.
func (s CombinedSource) Names() []string { return s.Members }

func (s CombinedSource) String() string { return strings.Join(s.Members, ", ") }

// AggregatedFarmRecord is a FarmRecord whose source has been generalized to a
// Source variant. For combined records Chance is the probability of obtaining
// the sought item from any contributing source within one visit, and Rarities
// holds each member's rarity aligned with Source.Names().
type AggregatedFarmRecord struct {
	Mission  string   `json:"mission"`
	Planet   string   `json:"planet"`
	Type     string   `json:"type"`
	Rotation string   `json:"rotation"`
	Source   Source   `json:"source"`
	Rarities []string `json:"rarities"`
	Chance   float64  `json:"chance"`
}

// Key returns the mission identity of the aggregate.
func (r AggregatedFarmRecord) Key() MissionKey {
	return MissionKey{
		Mission:  r.Mission,
		Planet:   r.Planet,
		Type:     r.Type,
		Rotation: r.Rotation,
	}
}

// ComponentFarms holds the pre-aggregation provenance for one component of a
// piece of equipment: the active relics that reward it and every raw farm
// record those relics produce.
type ComponentFarms struct {
	Relics  []string     `json:"relics"`
	Records []FarmRecord `json:"records"`
}

// ComponentFarmMap maps a component name ("Gauss Prime Chassis Blueprint") to
// its farms. Built before aggregation so the correlator keeps full
// provenance per component per mission.
type ComponentFarmMap map[string]ComponentFarms

// ContributionDetail is one component's share of a multi-source mission: the
// component, the relic carrying it, and its chance within the rotation.
type ContributionDetail struct {
	Component string  `json:"component"`
	Source    string  `json:"source"`
	Chance    float64 `json:"chance"`
	Rarity    string  `json:"rarity"`
}
