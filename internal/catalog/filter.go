package catalog

import (
	"cmp"
	"slices"
	"strings"

	"cataloghub/pkg/models"
)

// Predicate reports whether an entity passes a filter.
type Predicate[T any] func(T) bool

// MatchAll is the pass-through predicate.
func MatchAll[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// And combines predicates; an empty list matches everything.
func And[T any](ps ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range ps {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Equal matches when field(v) equals want.
func Equal[T any, V comparable](field func(T) V, want V) Predicate[T] {
	return func(v T) bool { return field(v) == want }
}

// Filter keeps the items matching p, preserving order. The result is never nil.
func Filter[T any](items []T, p Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if p(it) {
			out = append(out, it)
		}
	}
	return out
}

// Order is the optional sort direction of a direct listing.
type Order int

const (
	OrderNone Order = iota
	OrderAsc
	OrderDesc
)

func (o Order) String() string {
	switch o {
	case OrderAsc:
		return "asc"
	case OrderDesc:
		return "desc"
	default:
		return ""
	}
}

// ParseOrder accepts asc or desc in any case.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return OrderAsc, nil
	case "desc":
		return OrderDesc, nil
	default:
		return OrderNone, validation("order must be asc or desc, got %q", s)
	}
}

// sortBy stable-sorts items by key. Ties keep store order.
func sortBy[T any](items []T, o Order, key func(T) string) {
	switch o {
	case OrderAsc:
		slices.SortStableFunc(items, func(a, b T) int { return cmp.Compare(key(a), key(b)) })
	case OrderDesc:
		slices.SortStableFunc(items, func(a, b T) int { return cmp.Compare(key(b), key(a)) })
	}
}

// ---- works ----

// WorkParams are the raw optional parameters of a work listing.
type WorkParams struct {
	Name    *string
	GenreID *int64
	Order   *string
}

// WorkQuery is one of WorkNoFilter, WorkByScalar or WorkByGenre.
type WorkQuery interface {
	workQuery()
}

// WorkNoFilter lists every work in summary shape.
type WorkNoFilter struct{}

// WorkByScalar filters works by exact title and optionally sorts by title.
type WorkByScalar struct {
	Title *string
	Order Order
}

// WorkByGenre pivots to a genre and its works.
type WorkByGenre struct {
	GenreID int64
}

func (WorkNoFilter) workQuery() {}
func (WorkByScalar) workQuery() {}
func (WorkByGenre) workQuery()  {}

// ResolveWorkQuery turns raw parameters into a query variant. A genre id
// wins over name and order. An order alone still selects the detail path.
func ResolveWorkQuery(p WorkParams) (WorkQuery, error) {
	order := OrderNone
	if p.Order != nil {
		o, err := ParseOrder(*p.Order)
		if err != nil {
			return nil, err
		}
		order = o
	}

	switch {
	case p.GenreID != nil:
		return WorkByGenre{GenreID: *p.GenreID}, nil
	case p.Name == nil && p.Order == nil:
		return WorkNoFilter{}, nil
	default:
		return WorkByScalar{Title: p.Name, Order: order}, nil
	}
}

func (q WorkByScalar) Predicate() Predicate[models.Work] {
	if q.Title == nil {
		return MatchAll[models.Work]()
	}
	return Equal(func(w models.Work) string { return w.Title }, *q.Title)
}

// ---- characters ----

// CharacterParams are the raw optional parameters of a character listing.
type CharacterParams struct {
	Name   *string
	Age    *int
	WorkID *int64
}

// CharacterQuery is one of CharacterNoFilter, CharacterByScalar or
// CharacterByWork.
type CharacterQuery interface {
	characterQuery()
}

type CharacterNoFilter struct{}

// CharacterByScalar ANDs the present name and age filters.
type CharacterByScalar struct {
	Name *string
	Age  *int
}

// CharacterByWork pivots to a work and its characters.
type CharacterByWork struct {
	WorkID int64
}

func (CharacterNoFilter) characterQuery() {}
func (CharacterByScalar) characterQuery() {}
func (CharacterByWork) characterQuery()   {}

func ResolveCharacterQuery(p CharacterParams) (CharacterQuery, error) {
	switch {
	case p.WorkID != nil:
		return CharacterByWork{WorkID: *p.WorkID}, nil
	case p.Name == nil && p.Age == nil:
		return CharacterNoFilter{}, nil
	default:
		return CharacterByScalar{Name: p.Name, Age: p.Age}, nil
	}
}

func (q CharacterByScalar) Predicate() Predicate[models.Character] {
	ps := make([]Predicate[models.Character], 0, 2)
	if q.Name != nil {
		ps = append(ps, Equal(func(c models.Character) string { return c.Name }, *q.Name))
	}
	if q.Age != nil {
		ps = append(ps, Equal(func(c models.Character) int { return c.Age }, *q.Age))
	}
	return And(ps...)
}
