package sand

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed reactions.yaml
var defaultReactionsYAML []byte

// ErrDuplicateReaction is returned when two entries share an unordered pair.
var ErrDuplicateReaction = errors.New("duplicate reaction")

// ReactionKey is the canonical unordered pair, smaller kind first.
type ReactionKey struct {
	A, B ElementType
}

// NewReactionKey orders a and b by the ElementType total order.
func NewReactionKey(a, b ElementType) ReactionKey {
	if b < a {
		a, b = b, a
	}
	return ReactionKey{A: a, B: b}
}

// Reaction is one table entry.
type Reaction struct {
	A      ElementType `yaml:"a"`
	B      ElementType `yaml:"b"`
	Result ElementType `yaml:"result"`
}

// Reactions is an immutable lookup from unordered pairs to a product kind.
type Reactions struct {
	table    map[ReactionKey]ElementType
	reactive [elementTypeCount]bool
}

type reactionsFile struct {
	Reactions []Reaction `yaml:"reactions"`
}

// NewReactions builds a table from entries.
func NewReactions(entries []Reaction) (*Reactions, error) {
	r := &Reactions{table: make(map[ReactionKey]ElementType, len(entries))}
	for _, e := range entries {
		if !e.A.Valid() || !e.B.Valid() || !e.Result.Valid() {
			return nil, fmt.Errorf("reaction %s+%s: %w", e.A, e.B, ErrUnknownElement)
		}
		key := NewReactionKey(e.A, e.B)
		if _, dup := r.table[key]; dup {
			return nil, fmt.Errorf("%w: %s+%s", ErrDuplicateReaction, key.A, key.B)
		}
		r.table[key] = e.Result
		r.reactive[e.A] = true
		r.reactive[e.B] = true
	}
	return r, nil
}

// LoadReactions parses a YAML reaction document.
func LoadReactions(data []byte) (*Reactions, error) {
	var f reactionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse reactions: %w", err)
	}
	return NewReactions(f.Reactions)
}

// DefaultReactions returns the embedded table.
func DefaultReactions() *Reactions {
	r, err := LoadReactions(defaultReactionsYAML)
	if err != nil {
		panic(fmt.Sprintf("sand: embedded reactions: %v", err))
	}
	return r
}

// Lookup returns the kind that replaces the initiating cell when a meets b.
func (r *Reactions) Lookup(a, b ElementType) (ElementType, bool) {
	if r == nil {
		return 0, false
	}
	res, ok := r.table[NewReactionKey(a, b)]
	return res, ok
}

// Reactive reports whether kind appears in any entry.
func (r *Reactions) Reactive(kind ElementType) bool {
	return r != nil && kind.Valid() && r.reactive[kind]
}

// Len returns the number of entries.
func (r *Reactions) Len() int {
	if r == nil {
		return 0
	}
	return len(r.table)
}
