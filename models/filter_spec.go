package models

import (
	"fmt"
	"strings"
)

// FilterKind selects which field of a row the filter query is matched against.
type FilterKind string

const (
	FilterNone        FilterKind = "none"
	FilterNumber      FilterKind = "bus-number"
	FilterOperator    FilterKind = "bus-operator"
	FilterDestination FilterKind = "destination-bus-stop"
)

// FilterKinds lists the selectable kinds in display order.
var FilterKinds = []FilterKind{FilterNone, FilterNumber, FilterOperator, FilterDestination}

// ParseFilterKind is case-insensitive. An empty string is FilterNone.
func ParseFilterKind(s string) (FilterKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterNone, nil
	}
	for _, k := range FilterKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return FilterNone, fmt.Errorf("unknown filter kind %q", s)
}

// Label is the selector text shown for the kind.
func (k FilterKind) Label() string {
	switch k {
	case FilterNumber:
		return "Bus Number"
	case FilterOperator:
		return "Bus Operator"
	case FilterDestination:
		return "Destination Bus Stop ID"
	default:
		return "Select Type"
	}
}

// InputType is the HTML input type the filter value field switches to.
func (k FilterKind) InputType() string {
	if k == FilterDestination {
		return "number"
	}
	return "text"
}

// FilterSpec is the current display filter. Query is empty when Kind is none.
type FilterSpec struct {
	Kind  FilterKind `json:"kind"`
	Query string     `json:"query"`
}

// Matches reports whether a service passes the filter.
func (f FilterSpec) Matches(s BusService) bool {
	switch f.Kind {
	case FilterNumber:
		return strings.Contains(strings.ToLower(s.Number), strings.ToLower(f.Query))
	case FilterOperator:
		return strings.Contains(strings.ToLower(s.Operator), strings.ToLower(f.Query))
	case FilterDestination:
		return s.Next.DestinationCode == f.Query
	default:
		return true
	}
}
