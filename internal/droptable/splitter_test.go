package droptable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMissions(t *testing.T) {
	blocks := splitMissions(testCorpus)
	require.Len(t, blocks, 5)

	assert.Equal(t, "Mercury", blocks[0].Planet)
	assert.Equal(t, "Suisei", blocks[0].Mission)
	assert.Equal(t, "Spy", blocks[0].Type)
	assert.Contains(t, blocks[0].Content, "Rotation A")
	assert.NotContains(t, blocks[0].Content, "Kiste")

	assert.Equal(t, "Ceres", blocks[1].Planet)
	assert.Equal(t, "Mobile Defense", blocks[1].Type)

	// Pseudo-planet sections still split; the extractor discards them.
	assert.Equal(t, "Event", blocks[4].Planet)
	assert.Equal(t, "Gifts of the Lotus", blocks[4].Mission)
}

func TestSplitMissions_NoHeaders(t *testing.T) {
	assert.Empty(t, splitMissions("no mission headers in here at all"))
}

func TestSplitRotations(t *testing.T) {
	segments := splitRotations("Rotation AFirst (10.00%)Rotation BSecond (20.00%)Rotation CThird (30.00%)")
	require.Len(t, segments, 3)
	assert.Equal(t, "A", segments[0].Label)
	assert.Contains(t, segments[0].Content, "First")
	assert.NotContains(t, segments[0].Content, "Second")
	assert.Equal(t, "B", segments[1].Label)
	assert.Equal(t, "C", segments[2].Label)
}

func TestSplitRotations_RotationlessHead(t *testing.T) {
	segments := splitRotations("Head reward (5.00%)Rotation ATail (10.00%)")
	require.Len(t, segments, 2)
	assert.Equal(t, RotationlessLabel, segments[0].Label)
	assert.Contains(t, segments[0].Content, "Head reward")
	assert.Equal(t, "A", segments[1].Label)
}

func TestSplitRotations_NoHeaders(t *testing.T) {
	segments := splitRotations("only a flat reward list (33.33%)")
	require.Len(t, segments, 1)
	assert.Equal(t, RotationlessLabel, segments[0].Label)
}

func TestSplitRotations_Blank(t *testing.T) {
	assert.Empty(t, splitRotations("  \n "))
}
