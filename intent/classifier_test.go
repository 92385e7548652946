package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClassifier() *Classifier {
	return NewClassifier(DefaultCatalog(), 0.7, 0.8)
}

func TestClassifier_ExactPatternWins(t *testing.T) {
	c := newTestClassifier()

	t.Run("filing pattern from idle", func(t *testing.T) {
		got := c.Classify("I want to file a complaint", Context{})
		assert.Equal(t, FileComplaint, got.Label)
		assert.Equal(t, 1.0, got.Confidence)
		assert.NotEmpty(t, got.Matched)
	})

	t.Run("pattern outranks slot collection", func(t *testing.T) {
		got := c.Classify("check my complaint status", Context{AwaitingSlot: true})
		assert.Equal(t, RetrieveComplaint, got.Label)
		assert.Equal(t, 1.0, got.Confidence)
	})
}

func TestClassifier_SlotCollectionOverride(t *testing.T) {
	c := newTestClassifier()

	t.Run("plain statement becomes slot value", func(t *testing.T) {
		got := c.Classify("my order #12345 never arrived", Context{AwaitingSlot: true})
		assert.Equal(t, ProvideSlotValue, got.Label)
		assert.Equal(t, SlotValueConfidence, got.Confidence)
	})

	t.Run("same statement from idle is a document query", func(t *testing.T) {
		got := c.Classify("my order #12345 never arrived", Context{})
		assert.Equal(t, DocumentQuery, got.Label)
		assert.Equal(t, StatementConfidence, got.Confidence)
	})

	t.Run("question shape switches topic", func(t *testing.T) {
		got := c.Classify("what does the manual say about returns?", Context{AwaitingSlot: true})
		assert.Equal(t, DocumentQuery, got.Label)
		assert.Equal(t, QuestionConfidence, got.Confidence)
	})

	t.Run("empty utterance is never a slot value", func(t *testing.T) {
		got := c.Classify("", Context{AwaitingSlot: true})
		assert.NotEqual(t, ProvideSlotValue, got.Label)
	})
}

func TestClassifier_FuzzyAboveThreshold(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify("I want to fiel a complaint", Context{})
	assert.Equal(t, FileComplaint, got.Label)
	assert.GreaterOrEqual(t, got.Confidence, 0.7)
	assert.Less(t, got.Confidence, 1.0)
	assert.NotEmpty(t, got.Matched)
}

func TestClassifier_KeywordOnlyIsUnknown(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify("it is about the complaint", Context{})
	assert.Equal(t, Unknown, got.Label)
	assert.Equal(t, UnknownConfidence, got.Confidence)
}

func TestClassifier_DocumentQueryFallback(t *testing.T) {
	c := newTestClassifier()

	t.Run("question", func(t *testing.T) {
		got := c.Classify("what does the manual say about returns?", Context{})
		assert.Equal(t, DocumentQuery, got.Label)
		assert.Equal(t, QuestionConfidence, got.Confidence)
	})

	t.Run("statement", func(t *testing.T) {
		got := c.Classify("the warranty covers two years", Context{})
		assert.Equal(t, DocumentQuery, got.Label)
		assert.Equal(t, StatementConfidence, got.Confidence)
	})
}

func TestClassifier_SlotsRideAlong(t *testing.T) {
	c := newTestClassifier()

	got := c.Classify("check complaint ABC-999", Context{})
	assert.Equal(t, RetrieveComplaint, got.Label)
	assert.Equal(t, "ABC-999", got.Slots.ComplaintID)
}

func TestQuestionShaped(t *testing.T) {
	assert.True(t, questionShaped("what does the manual say"))
	assert.True(t, questionShaped("is the store open on sunday?"))
	assert.True(t, questionShaped("tell me about the return policy"))
	assert.False(t, questionShaped("the store opens at nine"))
	assert.False(t, questionShaped(""))
}
