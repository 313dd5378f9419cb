// Package analyzer answers farming questions over a drop-table snapshot:
// which relics reward an item, whether they are vaulted, where they drop, and
// which missions progress several components at once. Every operation
// captures the current snapshot once on entry and is a pure function of it,
// so a reload mid-analysis cannot tear a result.
package analyzer

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/tennolab/farmscout/internal/corpus"
	"github.com/tennolab/farmscout/internal/droptable"
	"github.com/tennolab/farmscout/internal/model"
)

// Analyzer runs queries against the currently published corpus snapshot.
type Analyzer struct {
	holder  *corpus.Holder
	combine CombineStrategy
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCombineStrategy overrides the probability combination rule used when
// aggregating overlapping drops.
func WithCombineStrategy(s CombineStrategy) Option {
	return func(a *Analyzer) { a.combine = s }
}

// New returns an Analyzer reading snapshots from holder.
func New(holder *corpus.Holder, opts ...Option) *Analyzer {
	a := &Analyzer{holder: holder, combine: IndependentUnion{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) snapshotText() (string, error) {
	snap, err := a.holder.Load()
	if err != nil {
		return "", err
	}
	return snap.Text, nil
}

// LocateRelics returns the per-relic status for every relic whose reward
// table mentions the item. An empty map means the item is unknown to the
// document.
func (a *Analyzer) LocateRelics(itemName string) (map[string]model.RelicStatus, error) {
	text, err := a.snapshotText()
	if err != nil {
		return nil, err
	}
	return droptable.LocateRelics(text, itemName), nil
}

// FindFarmLocations returns every mission/rotation dropping the named relic.
func (a *Analyzer) FindFarmLocations(relicName string) ([]model.FarmRecord, error) {
	text, err := a.snapshotText()
	if err != nil {
		return nil, err
	}
	return droptable.FindRelicLocations(text, relicName), nil
}

// FindModLocations returns every mission/rotation dropping the named mod.
func (a *Analyzer) FindModLocations(modName string) ([]model.FarmRecord, error) {
	text, err := a.snapshotText()
	if err != nil {
		return nil, err
	}
	return droptable.FindModLocations(text, modName), nil
}

// SplitByVault partitions located relics into active and vaulted name lists,
// each sorted for stable output.
func SplitByVault(statuses map[string]model.RelicStatus) (active, vaulted []string) {
	for name, st := range statuses {
		if st.Vaulted() {
			vaulted = append(vaulted, name)
		} else {
			active = append(active, name)
		}
	}
	sort.Strings(active)
	sort.Strings(vaulted)
	return active, vaulted
}

// ItemReport is the full farming answer for one component or item.
type ItemReport struct {
	Item     string                       `json:"item"`
	Statuses map[string]model.RelicStatus `json:"statuses"`
	Active   []string                     `json:"active"`
	Vaulted  []string                     `json:"vaulted"`
	Farms    []model.AggregatedFarmRecord `json:"farms"`
}

// AnalyzeItem locates the relics rewarding the item, gathers farm locations
// for the active ones, filters, aggregates overlapping visits, and sorts by
// combined chance descending. Returns ErrNotFound when no relic mentions the
// item and ErrAllFiltered when the exclusion terms removed every location.
func (a *Analyzer) AnalyzeItem(itemName string, exclude []string) (*ItemReport, error) {
	text, err := a.snapshotText()
	if err != nil {
		return nil, err
	}
	return analyzeItem(text, itemName, exclude, a.combine)
}

func analyzeItem(text, itemName string, exclude []string, combine CombineStrategy) (*ItemReport, error) {
	statuses := droptable.LocateRelics(text, itemName)
	if len(statuses) == 0 {
		return nil, eris.Wrapf(ErrNotFound, "item %q", itemName)
	}

	active, vaulted := SplitByVault(statuses)

	var records []model.FarmRecord
	for _, relic := range active {
		records = append(records, droptable.FindRelicLocations(text, relic)...)
	}

	report := &ItemReport{
		Item:     itemName,
		Statuses: statuses,
		Active:   active,
		Vaulted:  vaulted,
	}
	if len(records) == 0 {
		return report, nil
	}

	kept := FilterMissions(records, exclude)
	if len(kept) == 0 {
		return nil, eris.Wrapf(ErrAllFiltered, "item %q", itemName)
	}

	report.Farms = Aggregate(kept, combine)
	sort.SliceStable(report.Farms, func(i, j int) bool {
		return report.Farms[i].Chance > report.Farms[j].Chance
	})
	return report, nil
}

// ModReport is the farming answer for one mod.
type ModReport struct {
	Mod   string             `json:"mod"`
	Farms []model.FarmRecord `json:"farms"`
}

// AnalyzeMod finds every mission dropping the mod, filters, and sorts by
// chance descending.
func (a *Analyzer) AnalyzeMod(modName string, exclude []string) (*ModReport, error) {
	text, err := a.snapshotText()
	if err != nil {
		return nil, err
	}

	records := droptable.FindModLocations(text, modName)
	if len(records) == 0 {
		return nil, eris.Wrapf(ErrNotFound, "mod %q", modName)
	}

	kept := FilterMissions(records, exclude)
	if len(kept) == 0 {
		return nil, eris.Wrapf(ErrAllFiltered, "mod %q", modName)
	}

	farms := make([]model.FarmRecord, len(kept))
	copy(farms, kept)
	sort.SliceStable(farms, func(i, j int) bool {
		return farms[i].Chance > farms[j].Chance
	})

	return &ModReport{Mod: modName, Farms: farms}, nil
}
