package sand

import (
	"fmt"
	"strconv"
	"strings"
)

// Attr is one behavioural capability flag.
type Attr uint16

const (
	CanFall Attr = 1 << iota
	Solid
	Liquid
	Gas
	AirLike
	Immovable
	Sparkle
	CanEvaporate
	CanCondensate
	PillarLike
)

var attrNames = []struct {
	attr Attr
	name string
}{
	{CanFall, "can_fall"},
	{Solid, "solid"},
	{Liquid, "liquid"},
	{Gas, "gas"},
	{AirLike, "air"},
	{Immovable, "immovable"},
	{Sparkle, "sparkle"},
	{CanEvaporate, "can_evaporate"},
	{CanCondensate, "can_condensate"},
	{PillarLike, "pillar_like"},
}

func (a Attr) String() string {
	var parts []string
	for _, n := range attrNames {
		if a&n.attr != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Attributes is a bitset over Attr plus the payloads of the parameterised
// capabilities.
type Attributes struct {
	mask        Attr
	evaporateTo ElementType
	condenseTo  ElementType
	pillar      float32
}

// NewAttributes builds a set from plain flags. Parameterised flags must be
// added with WithEvaporate, WithCondensate or WithPillar.
func NewAttributes(flags ...Attr) Attributes {
	var a Attributes
	for _, f := range flags {
		a.mask |= f &^ (CanEvaporate | CanCondensate | PillarLike)
	}
	return a
}

// Has reports membership in O(1).
func (a Attributes) Has(f Attr) bool { return a.mask&f == f }

// Any reports whether at least one of the flags is present.
func (a Attributes) Any(f Attr) bool { return a.mask&f != 0 }

// Mask returns the raw flag set.
func (a Attributes) Mask() Attr { return a.mask }

// WithEvaporate adds CanEvaporate(target).
func (a Attributes) WithEvaporate(target ElementType) Attributes {
	a.mask |= CanEvaporate
	a.evaporateTo = target
	return a
}

// WithCondensate adds CanCondensate(target).
func (a Attributes) WithCondensate(target ElementType) Attributes {
	a.mask |= CanCondensate
	a.condenseTo = target
	return a
}

// WithPillar adds PillarLike(v).
func (a Attributes) WithPillar(v float32) Attributes {
	a.mask |= PillarLike
	a.pillar = v
	return a
}

// EvaporatesTo returns the evaporation product, if any.
func (a Attributes) EvaporatesTo() (ElementType, bool) {
	return a.evaporateTo, a.Has(CanEvaporate)
}

// CondensesTo returns the condensation product, if any.
func (a Attributes) CondensesTo() (ElementType, bool) {
	return a.condenseTo, a.Has(CanCondensate)
}

// Pillar returns the PillarLike parameter, if any.
func (a Attributes) Pillar() (float32, bool) {
	return a.pillar, a.Has(PillarLike)
}

// ParseAttributes decodes catalog entries such as "solid",
// "can_evaporate:steam" or "pillar_like:0.35".
func ParseAttributes(specs []string) (Attributes, error) {
	var a Attributes
	for _, spec := range specs {
		name, arg, hasArg := strings.Cut(strings.TrimSpace(spec), ":")
		name = strings.ToLower(name)
		switch name {
		case "can_evaporate", "can_condensate":
			if !hasArg {
				return a, fmt.Errorf("%w: %s needs a target element", ErrUnknownAttribute, name)
			}
			target, err := ParseElementType(arg)
			if err != nil {
				return a, fmt.Errorf("attribute %s: %w", name, err)
			}
			if name == "can_evaporate" {
				a = a.WithEvaporate(target)
			} else {
				a = a.WithCondensate(target)
			}
		case "pillar_like":
			v := 0.0
			if hasArg {
				parsed, err := strconv.ParseFloat(strings.TrimSpace(arg), 32)
				if err != nil {
					return a, fmt.Errorf("attribute pillar_like: %w", err)
				}
				v = parsed
			}
			a = a.WithPillar(float32(v))
		default:
			flag, ok := lookupAttr(name)
			if !ok || hasArg {
				return a, fmt.Errorf("%w: %q", ErrUnknownAttribute, spec)
			}
			a.mask |= flag
		}
	}
	return a, nil
}

func lookupAttr(name string) (Attr, bool) {
	for _, n := range attrNames {
		if n.name == name {
			return n.attr, true
		}
	}
	return 0, false
}
