package catalog

import (
	"context"
	"fmt"

	"cataloghub/internal/store"
	"cataloghub/pkg/models"
)

// Shape names the projection a listing produced.
type Shape string

const (
	ShapeSummary Shape = "summary"
	ShapeDetail  Shape = "detail"
	ShapePivot   Shape = "pivot"
)

// WorkListing holds exactly one of Summaries, Details or Genre, per Shape.
type WorkListing struct {
	Shape     Shape         `json:"shape"`
	Summaries []WorkSummary `json:"summaries,omitempty"`
	Details   []WorkDetail  `json:"details,omitempty"`
	Genre     *GenreDetail  `json:"genre,omitempty"`
}

// Payload returns the populated view.
func (l WorkListing) Payload() any {
	switch l.Shape {
	case ShapeSummary:
		return l.Summaries
	case ShapePivot:
		return l.Genre
	default:
		return l.Details
	}
}

// CharacterListing holds exactly one of Summaries, Details or Work, per Shape.
type CharacterListing struct {
	Shape     Shape              `json:"shape"`
	Summaries []CharacterSummary `json:"summaries,omitempty"`
	Details   []CharacterDetail  `json:"details,omitempty"`
	Work      *WorkCharacters    `json:"work,omitempty"`
}

func (l CharacterListing) Payload() any {
	switch l.Shape {
	case ShapeSummary:
		return l.Summaries
	case ShapePivot:
		return l.Work
	default:
		return l.Details
	}
}

// ListWorks runs a work query.
//
//	WorkNoFilter  -> summaries, nothing hydrated
//	WorkByScalar  -> details, characters and genres hydrated
//	WorkByGenre   -> the genre with its work titles
func (e *Engine) ListWorks(ctx context.Context, q WorkQuery) (WorkListing, error) {
	switch q := q.(type) {
	case nil, WorkNoFilter:
		works, err := e.Store.ListWorks(ctx, store.IncludeNone)
		if err != nil {
			return WorkListing{}, fmt.Errorf("list works: %w", err)
		}
		if len(works) == 0 {
			return WorkListing{}, noMatch("there are no works in the catalog")
		}
		return WorkListing{Shape: ShapeSummary, Summaries: ToWorkSummaries(works)}, nil

	case WorkByScalar:
		works, err := e.Store.ListWorks(ctx, store.IncludeCharacters|store.IncludeGenres)
		if err != nil {
			return WorkListing{}, fmt.Errorf("list works: %w", err)
		}
		works = Filter(works, q.Predicate())
		if len(works) == 0 {
			return WorkListing{}, noMatch("no works match the given filter")
		}
		sortBy(works, q.Order, func(w models.Work) string { return w.Title })
		return WorkListing{Shape: ShapeDetail, Details: ToWorkDetails(works)}, nil

	case WorkByGenre:
		g, err := e.Store.GetGenre(ctx, q.GenreID, store.IncludeWorks)
		if err != nil {
			return WorkListing{}, fmt.Errorf("get genre %d: %w", q.GenreID, err)
		}
		if g == nil {
			return WorkListing{}, notFound("no genre with id %d", q.GenreID)
		}
		if len(g.Works) == 0 {
			return WorkListing{}, noMatch("genre %q has no associated works", g.Name)
		}
		detail := ToGenreDetail(*g)
		return WorkListing{Shape: ShapePivot, Genre: &detail}, nil

	default:
		return WorkListing{}, fmt.Errorf("unsupported work query %T", q)
	}
}

// GetWork returns a work with its character and genre names.
func (e *Engine) GetWork(ctx context.Context, id int64) (WorkDetail, error) {
	w, err := e.Store.GetWork(ctx, id, store.IncludeCharacters|store.IncludeGenres)
	if err != nil {
		return WorkDetail{}, fmt.Errorf("get work %d: %w", id, err)
	}
	if w == nil {
		return WorkDetail{}, notFound("no work with id %d", id)
	}
	return ToWorkDetail(*w), nil
}

// ListCharacters runs a character query.
//
//	CharacterNoFilter -> summaries, nothing hydrated
//	CharacterByScalar -> details, works hydrated
//	CharacterByWork   -> the work with its character names
func (e *Engine) ListCharacters(ctx context.Context, q CharacterQuery) (CharacterListing, error) {
	switch q := q.(type) {
	case nil, CharacterNoFilter:
		chars, err := e.Store.ListCharacters(ctx, store.IncludeNone)
		if err != nil {
			return CharacterListing{}, fmt.Errorf("list characters: %w", err)
		}
		if len(chars) == 0 {
			return CharacterListing{}, noMatch("there are no characters in the catalog")
		}
		return CharacterListing{Shape: ShapeSummary, Summaries: ToCharacterSummaries(chars)}, nil

	case CharacterByScalar:
		chars, err := e.Store.ListCharacters(ctx, store.IncludeWorks)
		if err != nil {
			return CharacterListing{}, fmt.Errorf("list characters: %w", err)
		}
		chars = Filter(chars, q.Predicate())
		if len(chars) == 0 {
			return CharacterListing{}, noMatch("no characters match the given filter")
		}
		return CharacterListing{Shape: ShapeDetail, Details: ToCharacterDetails(chars)}, nil

	case CharacterByWork:
		w, err := e.Store.GetWork(ctx, q.WorkID, store.IncludeCharacters)
		if err != nil {
			return CharacterListing{}, fmt.Errorf("get work %d: %w", q.WorkID, err)
		}
		if w == nil {
			return CharacterListing{}, notFound("no work with id %d", q.WorkID)
		}
		if len(w.Characters) == 0 {
			return CharacterListing{}, noMatch("work %q has no associated characters", w.Title)
		}
		view := ToWorkCharacters(*w)
		return CharacterListing{Shape: ShapePivot, Work: &view}, nil

	default:
		return CharacterListing{}, fmt.Errorf("unsupported character query %T", q)
	}
}

// GetCharacter returns a character with the titles of its works.
func (e *Engine) GetCharacter(ctx context.Context, id int64) (CharacterDetail, error) {
	c, err := e.Store.GetCharacter(ctx, id, store.IncludeWorks)
	if err != nil {
		return CharacterDetail{}, fmt.Errorf("get character %d: %w", id, err)
	}
	if c == nil {
		return CharacterDetail{}, notFound("no character with id %d", id)
	}
	return ToCharacterDetail(*c), nil
}

// ListGenres returns every genre in summary shape.
func (e *Engine) ListGenres(ctx context.Context) ([]GenreSummary, error) {
	genres, err := e.Store.ListGenres(ctx, store.IncludeNone)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	if len(genres) == 0 {
		return nil, noMatch("there are no genres in the catalog")
	}
	return ToGenreSummaries(genres), nil
}

// GetGenre returns a genre with the titles of its works.
func (e *Engine) GetGenre(ctx context.Context, id int64) (GenreDetail, error) {
	g, err := e.Store.GetGenre(ctx, id, store.IncludeWorks)
	if err != nil {
		return GenreDetail{}, fmt.Errorf("get genre %d: %w", id, err)
	}
	if g == nil {
		return GenreDetail{}, notFound("no genre with id %d", id)
	}
	return ToGenreDetail(*g), nil
}
