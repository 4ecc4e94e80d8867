// Package history tracks a learner's recent items so generation can
// avoid repeating prompts, answers, and question families.
package history

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
)

// DefaultCapacity is the per-buffer bound on remembered entries.
const DefaultCapacity = 8

// Ring is a bounded FIFO of strings. Pushing beyond capacity drops the
// oldest entry. Not safe for concurrent use; the session layer
// serializes access.
type Ring struct {
	capacity int
	items    []string
}

// NewRing creates a Ring holding at most capacity entries.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{capacity: capacity}
}

// Push appends v, evicting the oldest entry when full.
func (r *Ring) Push(v string) {
	r.items = append(r.items, v)
	if len(r.items) > r.capacity {
		r.items = r.items[len(r.items)-r.capacity:]
	}
}

// Items returns the entries oldest first.
func (r *Ring) Items() []string {
	out := make([]string, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns up to n of the most recent entries, oldest first.
func (r *Ring) Last(n int) []string {
	if n >= len(r.items) {
		return r.Items()
	}
	out := make([]string, n)
	copy(out, r.items[len(r.items)-n:])
	return out
}

// Count reports how many entries equal v.
func (r *Ring) Count(v string) int {
	n := 0
	for _, item := range r.items {
		if item == v {
			n++
		}
	}
	return n
}

// Len reports the number of stored entries.
func (r *Ring) Len() int { return len(r.items) }

// MarshalJSON encodes the ring as a plain array, oldest first.
func (r *Ring) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.items)
}

// UnmarshalJSON decodes a plain array, trimming to capacity. A ring
// decoded from scratch gets DefaultCapacity.
func (r *Ring) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if r.capacity == 0 {
		r.capacity = DefaultCapacity
	}
	if len(items) > r.capacity {
		items = items[len(items)-r.capacity:]
	}
	r.items = items
	return nil
}

// LearnerContext is the bounded recent-item history for one learner
// session. It feeds novelty validation and the generator request.
type LearnerContext struct {
	ConceptIDs       *Ring `json:"concept_ids"`
	PromptHashes     *Ring `json:"prompt_hashes"`
	InteractionTypes *Ring `json:"interaction_types"`
	AnswerKeys       *Ring `json:"answer_keys"`
	FamilyTags       *Ring `json:"family_tags"`
}

// NewLearnerContext creates an empty context with default capacities.
func NewLearnerContext() *LearnerContext {
	return &LearnerContext{
		ConceptIDs:       NewRing(DefaultCapacity),
		PromptHashes:     NewRing(DefaultCapacity),
		InteractionTypes: NewRing(DefaultCapacity),
		AnswerKeys:       NewRing(DefaultCapacity),
		FamilyTags:       NewRing(DefaultCapacity),
	}
}

// RecordAccepted appends one accepted item's identifying features.
func (c *LearnerContext) RecordAccepted(conceptID, promptHash, interactionType, answerKey, familyTag string) {
	c.ConceptIDs.Push(conceptID)
	c.PromptHashes.Push(promptHash)
	c.InteractionTypes.Push(interactionType)
	c.AnswerKeys.Push(answerKey)
	c.FamilyTags.Push(familyTag)
}

// PromptHash computes a stable hash of an already-normalized prompt.
func PromptHash(normalizedPrompt string) string {
	h := fnv.New64a()
	h.Write([]byte(strings.TrimSpace(normalizedPrompt)))
	return fmt.Sprintf("%016x", h.Sum64())
}

// AnswerKey builds the identity string used for answer repetition
// tracking.
func AnswerKey(kind, value string) string {
	return kind + ":" + strings.TrimSpace(strings.ToLower(value))
}
