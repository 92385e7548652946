package dialogboot

import (
	"fmt"

	"github.com/SaiNageswarS/dialog-boot/dialogue"
	"github.com/SaiNageswarS/dialog-boot/intent"
	"github.com/SaiNageswarS/dialog-boot/memory"
	"github.com/SaiNageswarS/dialog-boot/refine"
)

// ConfigError reports an engine configuration value that fails validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid engine config %s: %s", e.Field, e.Reason)
}

// EngineBuilder provides a fluent API for assembling a dialogue Engine.
//
// Example usage:
//
//	engine, err := dialogboot.NewEngineBuilder().
//	    WithContextStore(memory.NewInMemoryContextStore()).
//	    WithRefinement(true).
//	    Build()
type EngineBuilder struct {
	catalog              *intent.Catalog
	slots                []dialogue.SlotSpec
	store                memory.ContextStore
	fuzzyThreshold       float64
	topicSwitchThreshold float64
	historyWindow        int
	maxTurns             int
	refineFollowups      bool
}

// NewEngineBuilder creates a builder seeded with the default thresholds.
func NewEngineBuilder() *EngineBuilder {
	return &EngineBuilder{
		fuzzyThreshold:       intent.DefaultFuzzyThreshold,
		topicSwitchThreshold: intent.DefaultTopicSwitchThreshold,
		historyWindow:        3,
		maxTurns:             50,
		refineFollowups:      true,
	}
}

// WithCatalog sets the intent catalog used for classification.
func (b *EngineBuilder) WithCatalog(catalog *intent.Catalog) *EngineBuilder {
	b.catalog = catalog
	return b
}

// WithSlots sets the complaint slots collected during the filing flow.
func (b *EngineBuilder) WithSlots(slots []dialogue.SlotSpec) *EngineBuilder {
	b.slots = slots
	return b
}

// WithContextStore sets the per-session conversation store.
func (b *EngineBuilder) WithContextStore(store memory.ContextStore) *EngineBuilder {
	b.store = store
	return b
}

// WithFuzzyThreshold sets the minimum similarity for fuzzy intent matches.
func (b *EngineBuilder) WithFuzzyThreshold(threshold float64) *EngineBuilder {
	b.fuzzyThreshold = threshold
	return b
}

// WithTopicSwitchThreshold sets the confidence needed to abandon an
// active complaint flow for a different intent.
func (b *EngineBuilder) WithTopicSwitchThreshold(threshold float64) *EngineBuilder {
	b.topicSwitchThreshold = threshold
	return b
}

// WithHistoryWindow sets how many recent turns feed follow-up refinement.
func (b *EngineBuilder) WithHistoryWindow(turns int) *EngineBuilder {
	b.historyWindow = turns
	return b
}

// WithMaxTurns bounds the per-session history retained by the store.
func (b *EngineBuilder) WithMaxTurns(turns int) *EngineBuilder {
	b.maxTurns = turns
	return b
}

// WithRefinement toggles follow-up query refinement for document retrieval.
func (b *EngineBuilder) WithRefinement(enabled bool) *EngineBuilder {
	b.refineFollowups = enabled
	return b
}

// Build validates the configuration and assembles the Engine.
func (b *EngineBuilder) Build() (*Engine, error) {
	if b.fuzzyThreshold < 0 || b.fuzzyThreshold > 1 {
		return nil, &ConfigError{Field: "fuzzyThreshold", Reason: "must be between 0 and 1"}
	}

	if b.topicSwitchThreshold < 0 || b.topicSwitchThreshold > 1 {
		return nil, &ConfigError{Field: "topicSwitchThreshold", Reason: "must be between 0 and 1"}
	}

	if b.topicSwitchThreshold < b.fuzzyThreshold {
		return nil, &ConfigError{Field: "topicSwitchThreshold", Reason: "must not be lower than fuzzyThreshold"}
	}

	if b.historyWindow < 1 {
		return nil, &ConfigError{Field: "historyWindow", Reason: "must be at least 1"}
	}

	catalog := b.catalog
	if catalog == nil {
		catalog = intent.DefaultCatalog()
	}

	slots := b.slots
	if len(slots) == 0 {
		slots = dialogue.DefaultComplaintSlots()
	}

	seen := map[string]bool{}
	for _, slot := range slots {
		if slot.Name == "" {
			return nil, &ConfigError{Field: "slots", Reason: "slot name must not be empty"}
		}
		if seen[slot.Name] {
			return nil, &ConfigError{Field: "slots", Reason: fmt.Sprintf("duplicate slot %q", slot.Name)}
		}
		seen[slot.Name] = true
	}

	store := b.store
	if store == nil {
		store = memory.NewInMemoryContextStore()
	}

	return &Engine{
		classifier:    intent.NewClassifier(catalog, b.fuzzyThreshold, b.topicSwitchThreshold),
		machine:       dialogue.NewMachine(slots, b.topicSwitchThreshold),
		refiner:       refine.NewRefiner(b.refineFollowups),
		contexts:      memory.NewContextManager(store, b.maxTurns),
		historyWindow: b.historyWindow,
		sessions:      map[string]*sessionHandle{},
	}, nil
}
