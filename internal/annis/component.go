package annis

import (
	"strings"

	"github.com/matthias-stemmler/rem-treebank-annis/pkg/errors"
)

// ComponentType is the relation kind of an edge component.
type ComponentType int

// Relation kinds supported by the store.
const (
	Ordering ComponentType = iota
	Coverage
	Dominance
	PartOf
)

// String returns the canonical component type name.
func (t ComponentType) String() string {
	switch t {
	case Ordering:
		return "Ordering"
	case Coverage:
		return "Coverage"
	case Dominance:
		return "Dominance"
	case PartOf:
		return "PartOf"
	default:
		return "unknown"
	}
}

// ParseComponentType parses a canonical component type name.
func ParseComponentType(s string) (ComponentType, error) {
	switch s {
	case "Ordering":
		return Ordering, nil
	case "Coverage":
		return Coverage, nil
	case "Dominance":
		return Dominance, nil
	case "PartOf":
		return PartOf, nil
	default:
		return 0, errors.NewParseError("graphml", "", "unknown component type "+s, nil)
	}
}

// Component identifies an edge component by relation kind, layer and name.
type Component struct {
	Type  ComponentType
	Layer string
	Name  string
}

// String returns the component in Type/layer/name form.
func (c Component) String() string {
	return c.Type.String() + "/" + c.Layer + "/" + c.Name
}

// ParseComponent parses a Type/layer/name component identifier.
func ParseComponent(s string) (Component, error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 3 {
		return Component{}, errors.NewParseError("graphml", "", "malformed component "+s, nil)
	}

	componentType, err := ParseComponentType(parts[0])
	if err != nil {
		return Component{}, err
	}

	return Component{Type: componentType, Layer: parts[1], Name: parts[2]}, nil
}

// OrderingComponent is the canonical token-order relation.
var OrderingComponent = Component{Type: Ordering, Layer: Namespace, Name: ""}
