package csvio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cataloghub/internal/catalog"
	"cataloghub/internal/store"
)

func seededEngine(t *testing.T) *catalog.Engine {
	t.Helper()
	ctx := context.Background()
	e := catalog.NewEngine(store.NewMemStore(), nil, nil)

	alpha, err := e.CreateWork(ctx, catalog.WorkInput{Title: "Alpha", Rating: 4.5, ReleaseDate: "2001-06-02", Image: "alpha.png"})
	require.NoError(t, err)
	beta, err := e.CreateWork(ctx, catalog.WorkInput{Title: "Beta, the sequel", Rating: 3})
	require.NoError(t, err)
	drama, err := e.CreateGenre(ctx, catalog.GenreInput{Name: "Drama"})
	require.NoError(t, err)
	ann, err := e.CreateCharacter(ctx, catalog.CharacterInput{Name: "Ann", Age: 30, Weight: 55.5, History: "Lives in \"town\""})
	require.NoError(t, err)
	bob, err := e.CreateCharacter(ctx, catalog.CharacterInput{Name: "Bob", Age: 41})
	require.NoError(t, err)

	_, err = e.AttachGenreToWork(ctx, beta.ID, drama.ID)
	require.NoError(t, err)
	_, err = e.AttachGenreToWork(ctx, alpha.ID, drama.ID)
	require.NoError(t, err)
	_, err = e.AttachWorkToCharacter(ctx, bob.ID, alpha.ID)
	require.NoError(t, err)
	_, err = e.AttachWorkToCharacter(ctx, ann.ID, alpha.ID)
	require.NoError(t, err)
	return e
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := seededEngine(t)
	dir := t.TempDir()

	exported, err := Export(ctx, src.Store, dir)
	require.NoError(t, err)
	assert.Equal(t, Counts{Works: 2, Characters: 2, Genres: 1, WorkGenres: 2, WorkCharacters: 2}, exported)

	dst := catalog.NewEngine(store.NewMemStore(), nil, nil)
	imported, err := Import(ctx, dst, dir)
	require.NoError(t, err)
	assert.Equal(t, exported, imported)

	for _, id := range []int64{1, 2} {
		want, err := src.GetWork(ctx, id)
		require.NoError(t, err)
		got, err := dst.GetWork(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	want, err := src.GetCharacter(ctx, 1)
	require.NoError(t, err)
	got, err := dst.GetCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	genre, err := dst.GetGenre(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Alpha", "Beta, the sequel"}, genre.Works)
}

func TestExportWritesHeaders(t *testing.T) {
	dir := t.TempDir()
	_, err := Export(context.Background(), store.NewMemStore(), dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, WorkGenresFile))
	require.NoError(t, err)
	assert.Equal(t, "work_id,genre_id\n", string(data))
}

func TestImportRemapsIDs(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write(WorksFile, "id,title,rating,release_date\n70,Gamma,2,1999-12-31\n")
	write(GenresFile, "id,name\n9,Noir\n")
	write(WorkGenresFile, "work_id,genre_id\n70,9\n70,9\n")

	e := catalog.NewEngine(store.NewMemStore(), nil, nil)
	n, err := Import(context.Background(), e, dir)
	require.NoError(t, err)
	assert.Equal(t, Counts{Works: 1, Genres: 1, WorkGenres: 1}, n)

	w, err := e.GetWork(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Gamma", w.Title)
	assert.Equal(t, "1999-12-31", w.ReleaseDate)
	assert.Equal(t, []string{"Noir"}, w.Genres)
}

func TestImportRejectsInvalidRows(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, WorksFile), []byte("id,title,rating\n1,Gamma,9\n"), 0o644))

	_, err := Import(context.Background(), catalog.NewEngine(store.NewMemStore(), nil, nil), dir)
	require.Error(t, err)
	assert.Equal(t, catalog.KindValidation, catalog.KindOf(err))
	assert.Contains(t, err.Error(), "works.csv row 2")
}

func TestImportUnknownAssociationEndpoint(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, WorksFile), []byte("id,title,rating\n1,Gamma,3\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, WorkCharactersFile), []byte("work_id,character_id\n1,4\n"), 0o644))

	_, err := Import(context.Background(), catalog.NewEngine(store.NewMemStore(), nil, nil), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown character_id 4")
}
