package droptable

// testCorpus is a miniature flattened drop-table document following the
// upstream conventions: relic reward tables as four refinement lines, then
// mission blocks whose cells glue reward names straight onto rarity tokens.
const testCorpus = `Warframe drop data last generated abc
Lith A10 Relic (Intact)Forma BlueprintUncommon (25.33%)Gauss Prime Chassis BlueprintUncommon (11.00%)
Lith A10 Relic (Exceptional)Forma BlueprintUncommon (23.33%)Gauss Prime Chassis BlueprintUncommon (13.00%)
Lith A10 Relic (Flawless)Forma BlueprintUncommon (20.00%)Gauss Prime Chassis BlueprintRare (17.00%)
Lith A10 Relic (Radiant)Forma BlueprintUncommon (16.67%)Gauss Prime Chassis BlueprintRare (20.00%)
Meso V9 Relic (Intact)Gauss Prime Neuroptics BlueprintRare (2.00%)
Meso V9 Relic (Exceptional)Gauss Prime Neuroptics BlueprintRare (4.00%)
Meso V9 Relic (Flawless)Gauss Prime Neuroptics BlueprintRare (6.00%)
Meso V9 Relic (Radiant)Gauss Prime Neuroptics BlueprintRare (10.00%)
Axi G5 Relic (Intact)Gauss Prime Systems BlueprintUncommon (11.00%)
Axi G5 Relic (Exceptional)Gauss Prime Systems BlueprintUncommon (13.00%)
Axi G5 Relic (Flawless)Gauss Prime Systems BlueprintUncommon (17.00%)
Axi G5 Relic (Radiant)Gauss Prime Systems BlueprintUncommon (20.00%)
Mercury/Suisei (Spy)Rotation ALith A10 RelicUncommon (14.29%)Rotation BAxi G5 RelicUncommon (11.11%)Rotation CArrow Mutation | Legendary (1.01%)
Ceres/Kiste (Mobile Defense)Lith A10 RelicRare (7.52%)Serration | Uncommon (9.09%)
Void/Hepit (Capture)Lith A10 RelicVery Common (33.33%)
Lua/Apollo (Disruption)Rotation BAxi G5 RelicUncommon (11.50%)Serration | Uncommon (4.42%)
Event/Gifts of the Lotus (Alert)Axi G5 RelicRare (100.00%)
`
