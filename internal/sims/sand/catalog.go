package sand

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"sandca/internal/core"
)

//go:embed elements.yaml
var defaultElementsYAML []byte

var (
	// ErrUnknownElement is returned when a name does not map to an ElementType.
	ErrUnknownElement = errors.New("unknown element")
	// ErrDuplicateElement is returned when a catalog lists a kind twice.
	ErrDuplicateElement = errors.New("duplicate element")
	// ErrMissingElement is returned when a catalog omits a kind.
	ErrMissingElement = errors.New("missing element")
	// ErrUnknownAttribute is returned for unparseable attribute entries.
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// Catalog maps every ElementType to its canonical template. It is immutable
// after construction.
type Catalog struct {
	templates [elementTypeCount]Element
}

type colorSpec struct {
	R       float32 `yaml:"r"`
	G       float32 `yaml:"g"`
	B       float32 `yaml:"b"`
	RV      float32 `yaml:"rv"`
	GV      float32 `yaml:"gv"`
	BV      float32 `yaml:"bv"`
	DV      float32 `yaml:"dv"`
	MaxDist float32 `yaml:"max_dist"`
}

type elementSpec struct {
	Type       ElementType `yaml:"type"`
	Name       string      `yaml:"name"`
	Attributes []string    `yaml:"attributes"`
	Density    float32     `yaml:"density"`
	Color      colorSpec   `yaml:"color"`
}

type catalogFile struct {
	Elements []elementSpec `yaml:"elements"`
}

// NewCatalog validates and freezes a set of templates. Every kind must be
// present exactly once and every phase-change target must be a valid kind.
func NewCatalog(templates []Element) (*Catalog, error) {
	c := &Catalog{}
	var seen [elementTypeCount]bool
	for _, t := range templates {
		if !t.Type.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownElement, uint8(t.Type))
		}
		if seen[t.Type] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateElement, t.Type)
		}
		seen[t.Type] = true
		if target, ok := t.Attrs.EvaporatesTo(); ok && !target.Valid() {
			return nil, fmt.Errorf("%s evaporates to %w", t.Type, ErrUnknownElement)
		}
		if target, ok := t.Attrs.CondensesTo(); ok && !target.Valid() {
			return nil, fmt.Errorf("%s condenses to %w", t.Type, ErrUnknownElement)
		}
		if t.Name == "" {
			t.Name = t.Type.String()
		}
		t.Render = t.Color.Base
		t.Falling = t.Attrs.Has(CanFall)
		c.templates[t.Type] = t
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingElement, ElementType(i))
		}
	}
	return c, nil
}

// LoadCatalog parses a YAML catalog document.
func LoadCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	templates := make([]Element, 0, len(f.Elements))
	for _, doc := range f.Elements {
		attrs, err := ParseAttributes(doc.Attributes)
		if err != nil {
			return nil, fmt.Errorf("element %s: %w", doc.Type, err)
		}
		templates = append(templates, Element{
			Name:    doc.Name,
			Type:    doc.Type,
			Attrs:   attrs,
			Density: doc.Density,
			Color: ElementColor{
				Base:    RGB{R: doc.Color.R / 255, G: doc.Color.G / 255, B: doc.Color.B / 255},
				RV:      doc.Color.RV,
				GV:      doc.Color.GV,
				BV:      doc.Color.BV,
				DV:      doc.Color.DV,
				MaxDist: doc.Color.MaxDist,
			},
		})
	}
	return NewCatalog(templates)
}

// DefaultCatalog returns the embedded catalog. The embedded document is
// part of the binary, so a parse failure is a build defect and panics.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(defaultElementsYAML)
	if err != nil {
		panic(fmt.Sprintf("sand: embedded catalog: %v", err))
	}
	return c
}

// Template returns the unvaried template for kind. It panics for kinds
// outside the enumeration.
func (c *Catalog) Template(kind ElementType) Element {
	if !kind.Valid() {
		panic(fmt.Sprintf("sand: %s is not in the catalog", kind))
	}
	return c.templates[kind]
}

// Instantiate clones the template for kind and applies color variance.
func (c *Catalog) Instantiate(kind ElementType, src core.Source) Element {
	e := c.Template(kind)
	e.Render = e.Color.Vary(src)
	return e
}
