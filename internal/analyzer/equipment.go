package analyzer

import (
	"sort"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/tennolab/farmscout/internal/droptable"
	"github.com/tennolab/farmscout/internal/model"
)

// DetectComponents probes the document for the components an equipment base
// name splits into. Melee weapons come in two layouts; the Blade/Hilt pair is
// probed first and Blade/Handle/Guard used as fallback. Only components some
// relic actually rewards are returned.
func (a *Analyzer) DetectComponents(baseName string, equipType model.EquipmentType) ([]string, error) {
	text, err := a.snapshotText()
	if err != nil {
		return nil, err
	}
	return detectComponents(text, baseName, equipType), nil
}

func detectComponents(text, baseName string, equipType model.EquipmentType) []string {
	suffixes := equipType.ComponentSuffixes()
	if equipType == model.EquipmentMelee {
		probe, fallback := model.MeleeLayouts()
		suffixes = fallback
		if probeMeleeLayout(text, baseName) {
			suffixes = probe
		}
	}

	var components []string
	for _, suffix := range suffixes {
		name := baseName + " " + suffix
		if len(droptable.LocateRelics(text, name)) > 0 {
			components = append(components, name)
		}
	}
	return components
}

func probeMeleeLayout(text, baseName string) bool {
	for _, part := range []string{"Blade", "Hilt"} {
		if len(droptable.LocateRelics(text, baseName+" "+part)) == 0 {
			return false
		}
	}
	return true
}

// ComponentReport is one component's slice of an equipment analysis.
type ComponentReport struct {
	Component string             `json:"component"`
	Active    []string           `json:"active"`
	Vaulted   []string           `json:"vaulted"`
	Farms     []model.FarmRecord `json:"farms"` // filtered, chance descending
}

// MissionContributions pairs a multi-source mission with its contributions,
// already in presentation order.
type MissionContributions struct {
	Key           model.MissionKey           `json:"key"`
	Contributions []model.ContributionDetail `json:"contributions"`
}

// EquipmentReport is the full farming answer for a multi-component item.
type EquipmentReport struct {
	Item        string                      `json:"item"`
	Components  []ComponentReport           `json:"components"`
	MultiSource []MissionContributions      `json:"multi_source"`
	Best        map[string]model.FarmRecord `json:"best"` // best farm per component
}

// AnalyzeEquipment runs the per-component analysis for every detected
// component of the base item, then correlates missions that progress two or
// more components in one visit. The snapshot is captured once; component
// scans run concurrently over it. Returns ErrNotFound when no component is
// rewarded by any relic.
func (a *Analyzer) AnalyzeEquipment(baseName string, equipType model.EquipmentType, exclude []string) (*EquipmentReport, error) {
	text, err := a.snapshotText()
	if err != nil {
		return nil, err
	}

	components := detectComponents(text, baseName, equipType)
	if len(components) == 0 {
		return nil, eris.Wrapf(ErrNotFound, "equipment %q", baseName)
	}

	reports := make([]ComponentReport, len(components))
	var g errgroup.Group
	g.SetLimit(4)
	for i, component := range components {
		g.Go(func() error {
			reports[i] = analyzeComponent(text, component, exclude)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	farmMap := make(model.ComponentFarmMap, len(reports))
	best := make(map[string]model.FarmRecord)
	kept := make([]ComponentReport, 0, len(reports))
	for _, r := range reports {
		if len(r.Farms) == 0 {
			continue
		}
		kept = append(kept, r)
		farmMap[r.Component] = model.ComponentFarms{Relics: r.Active, Records: r.Farms}
		best[r.Component] = r.Farms[0]
	}

	correlated := CorrelateMultiSource(farmMap)
	multi := make([]MissionContributions, 0, len(correlated))
	for _, key := range SortMissionKeys(correlated) {
		multi = append(multi, MissionContributions{Key: key, Contributions: correlated[key]})
	}

	return &EquipmentReport{
		Item:        baseName,
		Components:  kept,
		MultiSource: multi,
		Best:        best,
	}, nil
}

func analyzeComponent(text, component string, exclude []string) ComponentReport {
	active, vaulted := SplitByVault(droptable.LocateRelics(text, component))

	var records []model.FarmRecord
	for _, relic := range active {
		records = append(records, droptable.FindRelicLocations(text, relic)...)
	}

	farms := FilterMissions(records, exclude)
	sorted := make([]model.FarmRecord, len(farms))
	copy(sorted, farms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Chance > sorted[j].Chance
	})

	return ComponentReport{
		Component: component,
		Active:    active,
		Vaulted:   vaulted,
		Farms:     sorted,
	}
}
