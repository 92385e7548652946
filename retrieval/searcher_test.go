package retrieval

import (
	"testing"

	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankHits(t *testing.T) {
	t.Run("assigns 1-based ranks in hit order", func(t *testing.T) {
		hits := []odm.SearchHit[ChunkModel]{
			{Doc: ChunkModel{ChunkID: "a"}},
			{Doc: ChunkModel{ChunkID: "b"}},
			{Doc: ChunkModel{ChunkID: "c"}},
		}

		ranks := rankHits(hits)
		assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, ranks)
	})

	t.Run("a duplicate keeps its best rank", func(t *testing.T) {
		hits := []odm.SearchHit[ChunkModel]{
			{Doc: ChunkModel{ChunkID: "a"}},
			{Doc: ChunkModel{ChunkID: "b"}},
			{Doc: ChunkModel{ChunkID: "a"}},
		}

		ranks := rankHits(hits)
		assert.Equal(t, 1, ranks["a"])
	})

	t.Run("empty hits rank nothing", func(t *testing.T) {
		assert.Empty(t, rankHits[ChunkModel](nil))
	})
}

func TestFuseRanks(t *testing.T) {
	t.Run("a doc ranked by both engines beats single-engine docs", func(t *testing.T) {
		textRanks := map[string]int{"a": 1, "b": 2}
		vectorRanks := map[string]int{"b": 1, "c": 2}

		ids := fuseRanks(textRanks, vectorRanks, 10)
		require.Equal(t, []string{"b", "a", "c"}, ids)
	})

	t.Run("limit caps the fused list", func(t *testing.T) {
		textRanks := map[string]int{"a": 1, "b": 2}
		vectorRanks := map[string]int{"b": 1, "c": 2}

		ids := fuseRanks(textRanks, vectorRanks, 2)
		require.Equal(t, []string{"b", "a"}, ids)
	})

	t.Run("one empty engine degrades to the other ranking", func(t *testing.T) {
		textRanks := map[string]int{"a": 1, "b": 2, "c": 3}

		ids := fuseRanks(textRanks, map[string]int{}, 10)
		require.Equal(t, []string{"a", "b", "c"}, ids)
	})

	t.Run("both engines empty fuse to nothing", func(t *testing.T) {
		assert.Empty(t, fuseRanks(map[string]int{}, map[string]int{}, 10))
	})
}

func TestOrderBySection(t *testing.T) {
	chunks := []*ChunkModel{
		{ChunkID: "s2-w1", SectionID: "s2", WindowIndex: 1},
		{ChunkID: "s1-w3", SectionID: "s1", WindowIndex: 3},
		{ChunkID: "s2-w0", SectionID: "s2", WindowIndex: 0},
		{ChunkID: "s1-w1", SectionID: "s1", WindowIndex: 1},
	}

	orderBySection(chunks)

	got := make([]string, 0, len(chunks))
	for _, c := range chunks {
		got = append(got, c.ChunkID)
	}

	// s2 appeared first in RRF order, so its windows lead, ordered by window.
	assert.Equal(t, []string{"s2-w0", "s2-w1", "s1-w1", "s1-w3"}, got)
}

func TestChunkModelBody(t *testing.T) {
	chunk := ChunkModel{Sentences: []string{"Returns are accepted within 30 days.", "Keep the receipt."}}
	assert.Equal(t, "Returns are accepted within 30 days. Keep the receipt.", chunk.Body())
}
