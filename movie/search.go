package movie

import (
	"net/url"
	"strings"
)

// MaxSearchResults caps the number of movies a single search returns.
// Results beyond the cap are dropped without any signal to the caller.
const MaxSearchResults = 1000

type SearchRequest struct {
	Title     string
	Genre     string
	ActorName string
}

func (r SearchRequest) Validate() error {
	if isBlank(r.Title) && isBlank(r.Genre) && isBlank(r.ActorName) {
		return ErrNoSearchCriteria
	}
	return nil
}

// Field identifies the catalog attribute a Criterion is tested against.
type Field int

const (
	FieldTitle Field = iota
	FieldGenre
	FieldActorName
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldGenre:
		return "genre"
	case FieldActorName:
		return "actorName"
	default:
		return "unknown"
	}
}

// Criterion is a single case-insensitive containment test. Term is already
// trimmed and lower-cased.
type Criterion struct {
	Field Field
	Term  string
}

// Predicate is the conjunction of its criteria. It is assembled once by
// BuildPredicate and never mutated afterwards.
type Predicate struct {
	criteria []Criterion
}

// BuildPredicate turns a validated request into a Predicate with one
// criterion per non-blank field.
func BuildPredicate(r SearchRequest) Predicate {
	var criteria []Criterion
	add := func(f Field, raw string) {
		if isBlank(raw) {
			return
		}
		criteria = append(criteria, Criterion{Field: f, Term: normalize(raw)})
	}

	add(FieldTitle, r.Title)
	add(FieldGenre, r.Genre)
	add(FieldActorName, r.ActorName)

	return Predicate{criteria: criteria}
}

// Criteria returns a copy of the predicate's criteria in build order.
func (p Predicate) Criteria() []Criterion {
	out := make([]Criterion, len(p.criteria))
	copy(out, p.criteria)
	return out
}

func (p Predicate) IsEmpty() bool {
	return len(p.criteria) == 0
}

// Key renders the predicate as a stable string, suitable as a cache key.
// Terms are query-escaped so no two predicates share a key.
func (p Predicate) Key() string {
	var b strings.Builder
	for i, c := range p.criteria {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(c.Field.String())
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(c.Term))
	}
	return b.String()
}

// Matches evaluates the predicate against a movie and its linked actors.
// An actor criterion holds when any one of the actors matches.
func (p Predicate) Matches(m Movie, actors []Actor) bool {
	for _, c := range p.criteria {
		if !c.matches(m, actors) {
			return false
		}
	}
	return true
}

func (c Criterion) matches(m Movie, actors []Actor) bool {
	switch c.Field {
	case FieldTitle:
		return contains(m.Title, c.Term)
	case FieldGenre:
		return contains(m.Genre, c.Term)
	case FieldActorName:
		for _, a := range actors {
			if contains(a.Name, c.Term) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func contains(field, term string) bool {
	return strings.Contains(normalize(field), term)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
