package sand

import (
	"fmt"
	"math"
	"strings"
)

// ElementType identifies a material kind. The declaration order is the total
// order used to build canonical reaction keys.
type ElementType uint8

const (
	Air ElementType = iota
	Water
	Sand
	Dirt
	Stone
	Metal
	Steam
	Bendium

	elementTypeCount
)

var elementNames = [elementTypeCount]string{
	Air:     "air",
	Water:   "water",
	Sand:    "sand",
	Dirt:    "dirt",
	Stone:   "stone",
	Metal:   "metal",
	Steam:   "steam",
	Bendium: "bendium",
}

// ElementTypes lists every kind in total order.
func ElementTypes() []ElementType {
	out := make([]ElementType, elementTypeCount)
	for i := range out {
		out[i] = ElementType(i)
	}
	return out
}

// Valid reports whether t is a member of the closed enumeration.
func (t ElementType) Valid() bool { return t < elementTypeCount }

func (t ElementType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ElementType(%d)", uint8(t))
	}
	return elementNames[t]
}

// ParseElementType maps a case-insensitive kind name to its ElementType.
func ParseElementType(s string) (ElementType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range elementNames {
		if name == s {
			return ElementType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownElement, s)
}

// UnmarshalText lets ElementType appear as a plain name in YAML documents.
func (t *ElementType) UnmarshalText(b []byte) error {
	parsed, err := ParseElementType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText renders the kind name.
func (t ElementType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownElement, uint8(t))
	}
	return []byte(t.String()), nil
}

// RGB is a color with channels in [0, 1].
type RGB struct {
	R, G, B float32
}

// Pack converts the color to 0xRRGGBB, rounding each channel.
func (c RGB) Pack() uint32 {
	return channelByte(c.R)<<16 | channelByte(c.G)<<8 | channelByte(c.B)
}

func channelByte(v float32) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint32(math.Round(float64(v) * 255))
}

// Element is the value stored in a grid cell. Elements are small and copied
// by value; they never reference other cells.
type Element struct {
	Name    string
	Type    ElementType
	Attrs   Attributes
	Color   ElementColor
	Render  RGB
	Density float32
	// Falling widens the fall candidates to the diagonals. It clears when a
	// cell fails to move and sets again once it drops.
	Falling bool
}

// Is reports whether the element carries the attribute flag.
func (e Element) Is(a Attr) bool { return e.Attrs.Has(a) }
