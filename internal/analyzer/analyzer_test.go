package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tennolab/farmscout/internal/corpus"
	"github.com/tennolab/farmscout/internal/model"
)

// analyzerTestCorpus is a miniature flattened drop-table document. Gauss
// Prime splits across four relics (Meso V9 vaulted); the Blueprint drops from
// two relics that share Apollo rotation B, which also carries the Systems
// relic — the multi-source case.
const analyzerTestCorpus = `Warframe drop data
Lith A10 Relic (Intact)Gauss Prime Chassis BlueprintUncommon (11.00%)
Lith A10 Relic (Exceptional)Gauss Prime Chassis BlueprintUncommon (13.00%)
Lith A10 Relic (Flawless)Gauss Prime Chassis BlueprintRare (17.00%)
Lith A10 Relic (Radiant)Gauss Prime Chassis BlueprintRare (20.00%)
Meso V9 Relic (Intact)Gauss Prime Neuroptics BlueprintRare (2.00%)
Meso V9 Relic (Exceptional)Gauss Prime Neuroptics BlueprintRare (4.00%)
Meso V9 Relic (Flawless)Gauss Prime Neuroptics BlueprintRare (6.00%)
Meso V9 Relic (Radiant)Gauss Prime Neuroptics BlueprintRare (10.00%)
Axi G5 Relic (Intact)Gauss Prime Systems BlueprintUncommon (11.00%)Gauss Prime BlueprintUncommon (2.00%)
Axi G5 Relic (Exceptional)Gauss Prime Systems BlueprintUncommon (13.00%)Gauss Prime BlueprintUncommon (4.00%)
Axi G5 Relic (Flawless)Gauss Prime Systems BlueprintUncommon (17.00%)Gauss Prime BlueprintUncommon (6.00%)
Axi G5 Relic (Radiant)Gauss Prime Systems BlueprintUncommon (20.00%)Gauss Prime BlueprintUncommon (10.00%)
Neo N12 Relic (Intact)Gauss Prime BlueprintRare (6.00%)
Neo N12 Relic (Exceptional)Gauss Prime BlueprintRare (8.00%)
Neo N12 Relic (Flawless)Gauss Prime BlueprintRare (11.00%)
Neo N12 Relic (Radiant)Gauss Prime BlueprintRare (14.00%)
Lith N1 Relic (Intact)Nikana Prime BladeRare (2.00%)Nikana Prime HiltUncommon (11.00%)
Lith N1 Relic (Exceptional)Nikana Prime BladeRare (4.00%)Nikana Prime HiltUncommon (13.00%)
Lith N1 Relic (Flawless)Nikana Prime BladeRare (6.00%)Nikana Prime HiltUncommon (17.00%)
Lith N1 Relic (Radiant)Nikana Prime BladeRare (10.00%)Nikana Prime HiltUncommon (20.00%)
Meso R2 Relic (Intact)Reaper Prime BladeRare (2.00%)Reaper Prime HandleUncommon (11.00%)
Meso R2 Relic (Exceptional)Reaper Prime BladeRare (4.00%)Reaper Prime HandleUncommon (13.00%)
Meso R2 Relic (Flawless)Reaper Prime BladeRare (6.00%)Reaper Prime HandleUncommon (17.00%)
Meso R2 Relic (Radiant)Reaper Prime BladeRare (10.00%)Reaper Prime HandleUncommon (20.00%)
Mercury/Suisei (Spy)Rotation ALith A10 RelicUncommon (14.29%)Rotation BNeo N12 RelicUncommon (12.00%)
Lua/Apollo (Disruption)Rotation BAxi G5 RelicUncommon (11.11%)Neo N12 RelicUncommon (14.29%)Serration | Uncommon (4.42%)
Void/Hepit (Capture)Lith A10 RelicVery Common (33.33%)
`

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	h := corpus.NewHolder()
	h.Replace(&corpus.Snapshot{Text: analyzerTestCorpus, FetchedAt: time.Now()})
	return New(h)
}

func TestAnalyzer_NotReady(t *testing.T) {
	a := New(corpus.NewHolder())

	_, err := a.LocateRelics("Gauss Prime Chassis Blueprint")
	assert.ErrorIs(t, err, corpus.ErrNotReady)

	_, err = a.AnalyzeItem("Gauss Prime Chassis Blueprint", nil)
	assert.ErrorIs(t, err, corpus.ErrNotReady)

	_, err = a.AnalyzeMod("Serration", nil)
	assert.ErrorIs(t, err, corpus.ErrNotReady)

	_, err = a.AnalyzeEquipment("Gauss Prime", model.EquipmentWarframe, nil)
	assert.ErrorIs(t, err, corpus.ErrNotReady)
}

func TestAnalyzeItem_AggregatesAcrossRelics(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.AnalyzeItem("Gauss Prime Blueprint", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Axi G5", "Neo N12"}, report.Active)
	assert.Empty(t, report.Vaulted)

	require.Len(t, report.Farms, 2)

	// Apollo rotation B is reached through both relics and comes first on
	// combined chance.
	top := report.Farms[0]
	assert.Equal(t, "Apollo", top.Mission)
	assert.Equal(t, "B", top.Rotation)
	assert.InDelta(t, 23.8124, top.Chance, 0.001)
	combined, ok := top.Source.(model.CombinedSource)
	require.True(t, ok)
	assert.Equal(t, []string{"Axi G5", "Neo N12"}, combined.Members)

	second := report.Farms[1]
	assert.Equal(t, "Suisei", second.Mission)
	assert.Equal(t, 12.00, second.Chance)
	_, single := second.Source.(model.SingleSource)
	assert.True(t, single)
}

func TestAnalyzeItem_VaultedOnly(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.AnalyzeItem("Gauss Prime Neuroptics Blueprint", nil)
	require.NoError(t, err)
	assert.Empty(t, report.Active)
	assert.Equal(t, []string{"Meso V9"}, report.Vaulted)
	assert.True(t, report.Statuses["Meso V9"].Vaulted())
	assert.Empty(t, report.Farms)
}

func TestAnalyzeItem_NotFound(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.AnalyzeItem("Excalibur Umbra Blueprint", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnalyzeItem_AllFiltered(t *testing.T) {
	a := newTestAnalyzer(t)

	// Chassis drops only at a Spy and a Capture mission.
	_, err := a.AnalyzeItem("Gauss Prime Chassis Blueprint", []string{"Spy", "Capture"})
	assert.ErrorIs(t, err, ErrAllFiltered)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestAnalyzeMod(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.AnalyzeMod("Serration", nil)
	require.NoError(t, err)
	require.Len(t, report.Farms, 1)
	assert.Equal(t, "Apollo", report.Farms[0].Mission)
	assert.Equal(t, "B", report.Farms[0].Rotation)
	assert.Equal(t, 4.42, report.Farms[0].Chance)

	_, err = a.AnalyzeMod("Split Chamber", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = a.AnalyzeMod("Serration", []string{"lua"})
	assert.ErrorIs(t, err, ErrAllFiltered)
}

func TestDetectComponents_Warframe(t *testing.T) {
	a := newTestAnalyzer(t)

	components, err := a.DetectComponents("Gauss Prime", model.EquipmentWarframe)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Gauss Prime Blueprint",
		"Gauss Prime Chassis Blueprint",
		"Gauss Prime Neuroptics Blueprint",
		"Gauss Prime Systems Blueprint",
	}, components)
}

func TestDetectComponents_MeleeProbe(t *testing.T) {
	a := newTestAnalyzer(t)

	// Nikana has the Blade/Hilt layout.
	components, err := a.DetectComponents("Nikana Prime", model.EquipmentMelee)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nikana Prime Blade", "Nikana Prime Hilt"}, components)

	// Reaper has no Hilt, so the probe falls back to Blade/Handle/Guard.
	components, err = a.DetectComponents("Reaper Prime", model.EquipmentMelee)
	require.NoError(t, err)
	assert.Equal(t, []string{"Reaper Prime Blade", "Reaper Prime Handle"}, components)
}

func TestAnalyzeEquipment(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.AnalyzeEquipment("Gauss Prime", model.EquipmentWarframe, nil)
	require.NoError(t, err)

	// Neuroptics is vaulted with no farms and drops out of the component
	// reports.
	require.Len(t, report.Components, 3)
	assert.Equal(t, "Gauss Prime Blueprint", report.Components[0].Component)
	assert.Equal(t, "Gauss Prime Chassis Blueprint", report.Components[1].Component)
	assert.Equal(t, "Gauss Prime Systems Blueprint", report.Components[2].Component)

	// Apollo rotation B progresses Blueprint (two relics) and Systems at
	// once.
	require.Len(t, report.MultiSource, 1)
	multi := report.MultiSource[0]
	assert.Equal(t, "Apollo", multi.Key.Mission)
	assert.Equal(t, "B", multi.Key.Rotation)
	require.Len(t, multi.Contributions, 3)

	// Best farm per component.
	assert.Equal(t, 33.33, report.Best["Gauss Prime Chassis Blueprint"].Chance)
	assert.Equal(t, "Hepit", report.Best["Gauss Prime Chassis Blueprint"].Mission)
	assert.Equal(t, 14.29, report.Best["Gauss Prime Blueprint"].Chance)
	assert.Equal(t, 11.11, report.Best["Gauss Prime Systems Blueprint"].Chance)
}

func TestAnalyzeEquipment_NotFound(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.AnalyzeEquipment("Unknown Prime", model.EquipmentWarframe, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
