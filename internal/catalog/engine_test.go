package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cataloghub/internal/store"
	"cataloghub/pkg/database"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Publish(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestEngine(t *testing.T) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewEngine(store.NewMemStore(), nil, rec), rec
}

// runForAllStores runs fn against an engine over each store implementation.
func runForAllStores(t *testing.T, fn func(t *testing.T, e *Engine)) {
	t.Run("MemStore", func(t *testing.T) {
		fn(t, NewEngine(store.NewMemStore(), nil, nil))
	})
	t.Run("SQLiteStore", func(t *testing.T) {
		db, err := database.Open(database.Config{Path: database.MemoryPath})
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		require.NoError(t, database.Migrate(context.Background(), db))
		fn(t, NewEngine(store.NewSQLiteStore(db), nil, nil))
	})
}

func mustCreateWork(t *testing.T, e *Engine, title string, rating float64) int64 {
	t.Helper()
	out, err := e.CreateWork(context.Background(), WorkInput{Title: title, Rating: rating, ReleaseDate: "2001-06-02"})
	require.NoError(t, err)
	return out.ID
}

func mustCreateCharacter(t *testing.T, e *Engine, name string, age int) int64 {
	t.Helper()
	out, err := e.CreateCharacter(context.Background(), CharacterInput{Name: name, Age: age})
	require.NoError(t, err)
	return out.ID
}

func mustCreateGenre(t *testing.T, e *Engine, name string) int64 {
	t.Helper()
	out, err := e.CreateGenre(context.Background(), GenreInput{Name: name})
	require.NoError(t, err)
	return out.ID
}

// =============================================================================
// Listings
// =============================================================================

func TestListWorksWithoutFilterReturnsSummaries(t *testing.T) {
	runForAllStores(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		alpha := mustCreateWork(t, e, "Alpha", 4)
		drama := mustCreateGenre(t, e, "Drama")
		_, err := e.AttachGenreToWork(ctx, alpha, drama)
		require.NoError(t, err)

		q, err := ResolveWorkQuery(WorkParams{})
		require.NoError(t, err)

		got, err := e.ListWorks(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, ShapeSummary, got.Shape)
		assert.Nil(t, got.Details)
		assert.Nil(t, got.Genre)
		assert.Equal(t, []WorkSummary{{Title: "Alpha", ReleaseYear: "2001"}}, got.Summaries)
	})
}

func TestListWorksEmptyCatalogIsNoMatch(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.ListWorks(context.Background(), WorkNoFilter{})
	assert.True(t, IsNoMatch(err))

	_, err = e.ListGenres(context.Background())
	assert.True(t, IsNoMatch(err))

	_, err = e.ListCharacters(context.Background(), CharacterNoFilter{})
	assert.True(t, IsNoMatch(err))
}

func TestListWorksOrderDescending(t *testing.T) {
	runForAllStores(t, func(t *testing.T, e *Engine) {
		mustCreateWork(t, e, "Alpha", 4.0)
		mustCreateWork(t, e, "Beta", 3.0)

		q, err := ResolveWorkQuery(WorkParams{Order: ptr("desc")})
		require.NoError(t, err)

		got, err := e.ListWorks(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, ShapeDetail, got.Shape)
		require.Len(t, got.Details, 2)
		assert.Equal(t, "Beta", got.Details[0].Title)
		assert.Equal(t, "Alpha", got.Details[1].Title)
		assert.Equal(t, []string{}, got.Details[0].Characters)
		assert.Equal(t, []string{}, got.Details[0].Genres)
	})
}

func TestListWorksByTitle(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	mustCreateWork(t, e, "Alpha", 4)
	beta := mustCreateWork(t, e, "Beta", 3)
	ann := mustCreateCharacter(t, e, "Ann", 30)
	_, err := e.AttachWorkToCharacter(ctx, ann, beta)
	require.NoError(t, err)

	got, err := e.ListWorks(ctx, WorkByScalar{Title: ptr("Beta")})
	require.NoError(t, err)
	require.Len(t, got.Details, 1)
	assert.Equal(t, beta, got.Details[0].ID)
	assert.Equal(t, []string{"Ann"}, got.Details[0].Characters)

	_, err = e.ListWorks(ctx, WorkByScalar{Title: ptr("beta")})
	assert.True(t, IsNoMatch(err))
}

func TestListWorksByGenrePivots(t *testing.T) {
	runForAllStores(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		alpha := mustCreateWork(t, e, "Alpha", 4)
		beta := mustCreateWork(t, e, "Beta", 3)
		drama := mustCreateGenre(t, e, "Drama")
		_, err := e.AttachGenreToWork(ctx, beta, drama)
		require.NoError(t, err)
		_, err = e.AttachGenreToWork(ctx, alpha, drama)
		require.NoError(t, err)

		// name is ignored once a genre is given
		q, err := ResolveWorkQuery(WorkParams{GenreID: &drama, Name: ptr("Nope")})
		require.NoError(t, err)

		got, err := e.ListWorks(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, ShapePivot, got.Shape)
		require.NotNil(t, got.Genre)
		assert.Equal(t, drama, got.Genre.ID)
		assert.Equal(t, "Drama", got.Genre.Name)
		assert.Equal(t, []string{"Beta", "Alpha"}, got.Genre.Works)
	})
}

func TestListWorksByGenreWithoutWorksIsNoMatch(t *testing.T) {
	runForAllStores(t, func(t *testing.T, e *Engine) {
		for _, name := range []string{"Action", "Comedy", "Drama", "Horror", "Western"} {
			mustCreateGenre(t, e, name)
		}
		mustCreateWork(t, e, "Alpha", 4)

		_, err := e.ListWorks(context.Background(), WorkByGenre{GenreID: 5})
		require.Error(t, err)
		assert.Equal(t, KindNoMatch, KindOf(err))
	})
}

func TestListWorksByMissingGenreIsNotFound(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.ListWorks(context.Background(), WorkByGenre{GenreID: 9})
	assert.True(t, IsNotFound(err))
}

func TestListCharactersShapes(t *testing.T) {
	runForAllStores(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		alpha := mustCreateWork(t, e, "Alpha", 4)
		ann := mustCreateCharacter(t, e, "Ann", 30)
		mustCreateCharacter(t, e, "Ann", 40)
		bob := mustCreateCharacter(t, e, "Bob", 30)
		_, err := e.AttachWorkToCharacter(ctx, ann, alpha)
		require.NoError(t, err)
		_, err = e.AttachWorkToCharacter(ctx, bob, alpha)
		require.NoError(t, err)

		all, err := e.ListCharacters(ctx, CharacterNoFilter{})
		require.NoError(t, err)
		assert.Equal(t, ShapeSummary, all.Shape)
		assert.Len(t, all.Summaries, 3)

		filtered, err := e.ListCharacters(ctx, CharacterByScalar{Name: ptr("Ann"), Age: ptr(30)})
		require.NoError(t, err)
		assert.Equal(t, ShapeDetail, filtered.Shape)
		require.Len(t, filtered.Details, 1)
		assert.Equal(t, ann, filtered.Details[0].ID)
		assert.Equal(t, []string{"Alpha"}, filtered.Details[0].Works)

		_, err = e.ListCharacters(ctx, CharacterByScalar{Name: ptr("Ann"), Age: ptr(99)})
		assert.True(t, IsNoMatch(err))

		pivot, err := e.ListCharacters(ctx, CharacterByWork{WorkID: alpha})
		require.NoError(t, err)
		assert.Equal(t, ShapePivot, pivot.Shape)
		require.NotNil(t, pivot.Work)
		assert.Equal(t, "Alpha", pivot.Work.Title)
		assert.Equal(t, []string{"Ann", "Bob"}, pivot.Work.Characters)
	})
}

func TestListCharactersByWorkFailures(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.ListCharacters(context.Background(), CharacterByWork{WorkID: 1})
	assert.True(t, IsNotFound(err))

	alpha := mustCreateWork(t, e, "Alpha", 4)
	_, err = e.ListCharacters(context.Background(), CharacterByWork{WorkID: alpha})
	assert.True(t, IsNoMatch(err))
}

func TestGetGenre(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	drama := mustCreateGenre(t, e, "Drama")

	got, err := e.GetGenre(ctx, drama)
	require.NoError(t, err)
	assert.Equal(t, GenreDetail{ID: drama, Name: "Drama", Works: []string{}}, got)

	_, err = e.GetGenre(ctx, drama+1)
	assert.True(t, IsNotFound(err))

	list, err := e.ListGenres(ctx)
	require.NoError(t, err)
	assert.Equal(t, []GenreSummary{{ID: drama, Name: "Drama"}}, list)
}

// =============================================================================
// Attach
// =============================================================================

func TestAttachAddsDisplayFieldOnce(t *testing.T) {
	runForAllStores(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		alpha := mustCreateWork(t, e, "Alpha", 4)
		drama := mustCreateGenre(t, e, "Drama")
		ann := mustCreateCharacter(t, e, "Ann", 30)

		before, err := e.GetWork(ctx, alpha)
		require.NoError(t, err)

		out, err := e.AttachGenreToWork(ctx, alpha, drama)
		require.NoError(t, err)
		assert.Contains(t, out.Message, "Alpha")
		assert.Contains(t, out.Message, "Drama")

		after, err := e.GetWork(ctx, alpha)
		require.NoError(t, err)
		assert.Len(t, after.Genres, len(before.Genres)+1)
		assert.Equal(t, 1, count(after.Genres, "Drama"))

		_, err = e.AttachWorkToCharacter(ctx, ann, alpha)
		require.NoError(t, err)

		c, err := e.GetCharacter(ctx, ann)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha"}, c.Works)

		after, err = e.GetWork(ctx, alpha)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ann"}, after.Characters)
	})
}

func count(list []string, v string) int {
	n := 0
	for _, s := range list {
		if s == v {
			n++
		}
	}
	return n
}

func TestAttachGenreToWorkMissingSides(t *testing.T) {
	e, _ := newTestEngine(t)
	alpha := mustCreateWork(t, e, "Alpha", 4)
	drama := mustCreateGenre(t, e, "Drama")

	tests := []struct {
		name    string
		workID  int64
		genreID int64
		missing []string
		message string
	}{
		{"owner missing", 99, drama, []string{"works"}, "no record found in works with the given id"},
		{"far side missing", alpha, 99, []string{"genres"}, "no record found in genres with the given id"},
		{"both missing", 98, 99, []string{"works", "genres"}, "no record found in works and genres with the given ids"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.AttachGenreToWork(context.Background(), tt.workID, tt.genreID)
			require.Error(t, err)

			var ce *Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, KindNotFound, ce.Kind)
			assert.Equal(t, tt.missing, ce.Missing)
			assert.Equal(t, tt.message, ce.Message)
		})
	}

	got, err := e.GetWork(context.Background(), alpha)
	require.NoError(t, err)
	assert.Empty(t, got.Genres)
}

func TestAttachWorkToCharacterMissingSides(t *testing.T) {
	e, _ := newTestEngine(t)
	alpha := mustCreateWork(t, e, "Alpha", 4)
	ann := mustCreateCharacter(t, e, "Ann", 30)

	tests := []struct {
		name        string
		characterID int64
		workID      int64
		missing     []string
	}{
		{"owner missing", 99, alpha, []string{"characters"}},
		{"far side missing", ann, 99, []string{"works"}},
		{"both missing", 98, 99, []string{"characters", "works"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.AttachWorkToCharacter(context.Background(), tt.characterID, tt.workID)
			var ce *Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, KindNotFound, ce.Kind)
			assert.Equal(t, tt.missing, ce.Missing)
		})
	}
}

// Attaching the same pair twice is rejected rather than stacking a second row.
func TestAttachDuplicatePairIsConflict(t *testing.T) {
	runForAllStores(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		alpha := mustCreateWork(t, e, "Alpha", 4)
		drama := mustCreateGenre(t, e, "Drama")
		ann := mustCreateCharacter(t, e, "Ann", 30)

		_, err := e.AttachGenreToWork(ctx, alpha, drama)
		require.NoError(t, err)
		_, err = e.AttachGenreToWork(ctx, alpha, drama)
		assert.True(t, IsConflict(err))

		_, err = e.AttachWorkToCharacter(ctx, ann, alpha)
		require.NoError(t, err)
		_, err = e.AttachWorkToCharacter(ctx, ann, alpha)
		assert.True(t, IsConflict(err))

		got, err := e.GetWork(ctx, alpha)
		require.NoError(t, err)
		assert.Equal(t, []string{"Drama"}, got.Genres)
		assert.Equal(t, []string{"Ann"}, got.Characters)
	})
}

// =============================================================================
// Mutations
// =============================================================================

func TestCreateWorkRoundTrip(t *testing.T) {
	runForAllStores(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		in := WorkInput{Image: "alpha.png", Title: "Alpha", ReleaseDate: "1999-03-31", Rating: 4.5}

		out, err := e.CreateWork(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "work 'Alpha' was added to the catalog", out.Message)

		got, err := e.GetWork(ctx, out.ID)
		require.NoError(t, err)
		assert.Equal(t, WorkDetail{
			ID:          out.ID,
			Image:       "alpha.png",
			Title:       "Alpha",
			ReleaseDate: "1999-03-31",
			Rating:      4.5,
			Characters:  []string{},
			Genres:      []string{},
		}, got)
	})
}

func TestUpdateWithMismatchedIDDoesNotMutate(t *testing.T) {
	e, rec := newTestEngine(t)
	ctx := context.Background()
	alpha := mustCreateWork(t, e, "Alpha", 4)

	_, err := e.UpdateWork(ctx, alpha, WorkInput{ID: alpha + 1, Title: "Changed", Rating: 2})
	require.Error(t, err)
	assert.Equal(t, KindIdentifierMismatch, KindOf(err))

	got, err := e.GetWork(ctx, alpha)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Title)
	assert.InDelta(t, 4.0, got.Rating, 0.001)

	ann := mustCreateCharacter(t, e, "Ann", 30)
	_, err = e.UpdateCharacter(ctx, ann, CharacterInput{ID: 0, Name: "Changed"})
	assert.Equal(t, KindIdentifierMismatch, KindOf(err))

	drama := mustCreateGenre(t, e, "Drama")
	_, err = e.UpdateGenre(ctx, drama, GenreInput{ID: 42, Name: "Changed"})
	assert.Equal(t, KindIdentifierMismatch, KindOf(err))

	assert.Equal(t, []string{EventWorkCreated, EventCharacterCreated, EventGenreCreated}, rec.types())
}

func TestUpdateReplacesFields(t *testing.T) {
	runForAllStores(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		alpha := mustCreateWork(t, e, "Alpha", 4)

		out, err := e.UpdateWork(ctx, alpha, WorkInput{ID: alpha, Title: "Alpha II", Rating: 2.5})
		require.NoError(t, err)
		assert.Equal(t, "work 'Alpha II' was updated", out.Message)

		got, err := e.GetWork(ctx, alpha)
		require.NoError(t, err)
		assert.Equal(t, "Alpha II", got.Title)
		assert.Equal(t, "", got.ReleaseDate)
		assert.InDelta(t, 2.5, got.Rating, 0.001)

		_, err = e.UpdateWork(ctx, 77, WorkInput{ID: 77, Title: "Ghost", Rating: 3})
		assert.True(t, IsNotFound(err))
	})
}

func TestValidationRunsBeforeStore(t *testing.T) {
	e, rec := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
	}{
		{"rating too high", func() error {
			_, err := e.CreateWork(ctx, WorkInput{Title: "Alpha", Rating: 5.5})
			return err
		}},
		{"rating missing", func() error {
			_, err := e.CreateWork(ctx, WorkInput{Title: "Alpha"})
			return err
		}},
		{"title missing", func() error {
			_, err := e.CreateWork(ctx, WorkInput{Rating: 3})
			return err
		}},
		{"bad date", func() error {
			_, err := e.CreateWork(ctx, WorkInput{Title: "Alpha", Rating: 3, ReleaseDate: "31/03/1999"})
			return err
		}},
		{"character name too long", func() error {
			long := make([]byte, 91)
			for i := range long {
				long[i] = 'x'
			}
			_, err := e.CreateCharacter(ctx, CharacterInput{Name: string(long)})
			return err
		}},
		{"negative age", func() error {
			_, err := e.CreateCharacter(ctx, CharacterInput{Name: "Ann", Age: -1})
			return err
		}},
		{"genre name missing", func() error {
			_, err := e.CreateGenre(ctx, GenreInput{Image: "x.png"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err), err.Error())
		})
	}

	_, err := e.ListWorks(ctx, WorkNoFilter{})
	assert.True(t, IsNoMatch(err), "nothing was stored")
	assert.Empty(t, rec.types())
}

func TestValidationMessageUsesJSONNames(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.CreateWork(context.Background(), WorkInput{Title: "Alpha", Rating: 9})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating must be <= 5")
}

func TestBlankDisplayFieldsAreRejected(t *testing.T) {
	runForAllStores(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		alpha := mustCreateWork(t, e, "Alpha", 4)
		ann := mustCreateCharacter(t, e, "Ann", 30)
		drama := mustCreateGenre(t, e, "Drama")

		tests := []struct {
			name string
			run  func() error
		}{
			{"create work", func() error {
				_, err := e.CreateWork(ctx, WorkInput{Title: "   ", Rating: 3})
				return err
			}},
			{"update work", func() error {
				_, err := e.UpdateWork(ctx, alpha, WorkInput{ID: alpha, Title: "\t\n", Rating: 3})
				return err
			}},
			{"create character", func() error {
				_, err := e.CreateCharacter(ctx, CharacterInput{Name: "   "})
				return err
			}},
			{"update character", func() error {
				_, err := e.UpdateCharacter(ctx, ann, CharacterInput{ID: ann, Name: " "})
				return err
			}},
			{"create genre", func() error {
				_, err := e.CreateGenre(ctx, GenreInput{Name: "\t"})
				return err
			}},
			{"update genre", func() error {
				_, err := e.UpdateGenre(ctx, drama, GenreInput{ID: drama, Name: "   "})
				return err
			}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.run()
				require.Error(t, err)
				assert.Equal(t, KindValidation, KindOf(err), err.Error())
				assert.Contains(t, err.Error(), "is required")
			})
		}

		works, err := e.ListWorks(ctx, WorkNoFilter{})
		require.NoError(t, err)
		assert.Len(t, works.Summaries, 1)

		got, err := e.GetWork(ctx, alpha)
		require.NoError(t, err)
		assert.Equal(t, "Alpha", got.Title)

		g, err := e.GetGenre(ctx, drama)
		require.NoError(t, err)
		assert.Equal(t, "Drama", g.Name)
	})
}

func TestDisplayFieldsAreStoredTrimmed(t *testing.T) {
	runForAllStores(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()

		out, err := e.CreateWork(ctx, WorkInput{Image: " alpha.png ", Title: " Alpha ", Rating: 4})
		require.NoError(t, err)
		assert.Equal(t, "work 'Alpha' was added to the catalog", out.Message)

		got, err := e.GetWork(ctx, out.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alpha", got.Title)
		assert.Equal(t, "alpha.png", got.Image)

		ann, err := e.CreateCharacter(ctx, CharacterInput{Name: "  Ann\t", History: "  kept as is  "})
		require.NoError(t, err)
		c, err := e.GetCharacter(ctx, ann.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ann", c.Name)
		assert.Equal(t, "  kept as is  ", c.History)
	})
}

func TestDeleteRemovesAssociations(t *testing.T) {
	runForAllStores(t, func(t *testing.T, e *Engine) {
		ctx := context.Background()
		alpha := mustCreateWork(t, e, "Alpha", 4)
		beta := mustCreateWork(t, e, "Beta", 3)
		drama := mustCreateGenre(t, e, "Drama")
		ann := mustCreateCharacter(t, e, "Ann", 30)
		_, err := e.AttachGenreToWork(ctx, alpha, drama)
		require.NoError(t, err)
		_, err = e.AttachGenreToWork(ctx, beta, drama)
		require.NoError(t, err)
		_, err = e.AttachWorkToCharacter(ctx, ann, alpha)
		require.NoError(t, err)

		out, err := e.DeleteWork(ctx, alpha)
		require.NoError(t, err)
		assert.Equal(t, "work 'Alpha' was removed from the catalog", out.Message)

		g, err := e.GetGenre(ctx, drama)
		require.NoError(t, err)
		assert.Equal(t, []string{"Beta"}, g.Works)

		c, err := e.GetCharacter(ctx, ann)
		require.NoError(t, err)
		assert.Equal(t, []string{}, c.Works)

		_, err = e.DeleteWork(ctx, alpha)
		assert.True(t, IsNotFound(err))

		_, err = e.DeleteGenre(ctx, drama)
		require.NoError(t, err)
		got, err := e.GetWork(ctx, beta)
		require.NoError(t, err)
		assert.Equal(t, []string{}, got.Genres)

		_, err = e.DeleteCharacter(ctx, ann)
		require.NoError(t, err)
		_, err = e.GetCharacter(ctx, ann)
		assert.True(t, IsNotFound(err))
	})
}

func TestEventsPublishedOnSuccess(t *testing.T) {
	e, rec := newTestEngine(t)
	ctx := context.Background()

	alpha := mustCreateWork(t, e, "Alpha", 4)
	drama := mustCreateGenre(t, e, "Drama")
	ann := mustCreateCharacter(t, e, "Ann", 30)
	_, err := e.AttachGenreToWork(ctx, alpha, drama)
	require.NoError(t, err)
	_, err = e.AttachWorkToCharacter(ctx, ann, alpha)
	require.NoError(t, err)
	_, err = e.AttachWorkToCharacter(ctx, ann, 99)
	require.Error(t, err)
	_, err = e.DeleteWork(ctx, alpha)
	require.NoError(t, err)

	assert.Equal(t, []string{
		EventWorkCreated,
		EventGenreCreated,
		EventCharacterCreated,
		EventGenreAttached,
		EventWorkAttached,
		EventWorkDeleted,
	}, rec.types())

	rec.mu.Lock()
	attached := rec.events[3]
	rec.mu.Unlock()
	assert.Equal(t, alpha, attached.ID)
	assert.Equal(t, drama, attached.RelatedID)
	assert.Equal(t, "Drama", attached.Label)
	assert.False(t, attached.At.IsZero())
}
