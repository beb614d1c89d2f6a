package entity

import "strings"

// Kind identifies one of the inventory entity types
type Kind string

const (
	KindAirline  Kind = "airline"
	KindAirport  Kind = "airport"
	KindAircraft Kind = "aircraft"
	KindFlight   Kind = "flight"
)

// Kinds lists every entity kind, referenced kinds first
func Kinds() []Kind {
	return []Kind{KindAirline, KindAirport, KindAircraft, KindFlight}
}

// IndexName is the search index collection holding documents of this kind
func (k Kind) IndexName() string {
	switch k {
	case KindAirline:
		return "airlines"
	case KindAirport:
		return "airports"
	case KindAircraft:
		return "aircrafts"
	case KindFlight:
		return "flights"
	}
	return ""
}

// Title is the capitalized kind name used in messages
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// ParseKind accepts either the singular kind or its index name
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if s == string(k) || s == k.IndexName() {
			return k, true
		}
	}
	return "", false
}

// Document is the search index projection of one entity, keyed by its business key
type Document struct {
	Kind   Kind
	ID     string
	Fields map[string]interface{}
}
