package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSetRatio(t *testing.T) {
	t.Run("identical strings", func(t *testing.T) {
		assert.Equal(t, 1.0, TokenSetRatio("i want to file a complaint", "i want to file a complaint"))
	})

	t.Run("word order does not matter", func(t *testing.T) {
		assert.Equal(t, 1.0, TokenSetRatio("complaint a file to want i", "i want to file a complaint"))
	})

	t.Run("repeated words do not matter", func(t *testing.T) {
		assert.Equal(t, 1.0, TokenSetRatio("file file a complaint", "file a complaint"))
	})

	t.Run("typo stays close", func(t *testing.T) {
		score := TokenSetRatio("i want to file a complain", "i want to file a complaint")
		assert.Greater(t, score, 0.9)
		assert.Less(t, score, 1.0)
	})

	t.Run("disjoint strings score low", func(t *testing.T) {
		score := TokenSetRatio("the sky is blue", "i want to file a complaint")
		assert.Less(t, score, 0.4)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, 0.0, TokenSetRatio("", "i want to file a complaint"))
		assert.Equal(t, 0.0, TokenSetRatio("hello", ""))
	})
}

func TestFuzzyMatcher_Match(t *testing.T) {
	m := NewFuzzyMatcher(DefaultCatalog(), 0.7)

	t.Run("close filing phrase", func(t *testing.T) {
		got := m.Match("I wanna file a complaint")
		assert.Equal(t, FileComplaint, got.Intent)
		assert.GreaterOrEqual(t, got.Score, 0.7)
		assert.NotEmpty(t, got.Phrase)
	})

	t.Run("retrieval phrase", func(t *testing.T) {
		got := m.Match("please check my complaint status")
		assert.Equal(t, RetrieveComplaint, got.Intent)
		assert.GreaterOrEqual(t, got.Score, 0.7)
	})

	t.Run("function words alone never match", func(t *testing.T) {
		got := m.Match("i want to")
		assert.Equal(t, Unknown, got.Intent)
		assert.Zero(t, got.Score)
	})

	t.Run("single token never matches", func(t *testing.T) {
		got := m.Match("complaint")
		assert.Equal(t, Unknown, got.Intent)
		assert.Zero(t, got.Score)
	})

	t.Run("unrelated text scores below threshold", func(t *testing.T) {
		got := m.Match("how do I reset my password")
		assert.Less(t, got.Score, 0.7)
	})

	t.Run("threshold accessor", func(t *testing.T) {
		assert.Equal(t, 0.7, m.Threshold())
	})
}
