package csvio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cataloghub/internal/store"
)

// Counts reports how many rows of each kind moved.
type Counts struct {
	Works          int
	Characters     int
	Genres         int
	WorkGenres     int
	WorkCharacters int
}

// Export writes the whole catalog under dir. Association rows are grouped by
// work, each group in attach order.
func Export(ctx context.Context, st store.Store, dir string) (Counts, error) {
	var n Counts
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return n, fmt.Errorf("create export dir: %w", err)
	}

	works, err := st.ListWorks(ctx, store.IncludeCharacters|store.IncludeGenres)
	if err != nil {
		return n, fmt.Errorf("list works: %w", err)
	}
	characters, err := st.ListCharacters(ctx, store.IncludeNone)
	if err != nil {
		return n, fmt.Errorf("list characters: %w", err)
	}
	genres, err := st.ListGenres(ctx, store.IncludeNone)
	if err != nil {
		return n, fmt.Errorf("list genres: %w", err)
	}

	var workRows, workGenreRows, workCharacterRows [][]string
	for _, w := range works {
		release := ""
		if !w.ReleaseDate.IsZero() {
			release = w.ReleaseDate.Format("2006-01-02")
		}
		workRows = append(workRows, []string{id(w.ID), w.Image, w.Title, release, formatFloat(w.Rating)})
		for _, g := range w.Genres {
			workGenreRows = append(workGenreRows, []string{id(w.ID), id(g.GenreID)})
		}
		for _, c := range w.Characters {
			workCharacterRows = append(workCharacterRows, []string{id(w.ID), id(c.CharacterID)})
		}
	}

	characterRows := make([][]string, 0, len(characters))
	for _, c := range characters {
		characterRows = append(characterRows, []string{
			id(c.ID), c.Image, c.Name, strconv.Itoa(c.Age), formatFloat(c.Weight), c.History,
		})
	}

	genreRows := make([][]string, 0, len(genres))
	for _, g := range genres {
		genreRows = append(genreRows, []string{id(g.ID), g.Image, g.Name})
	}

	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{WorksFile, worksHeader, workRows},
		{CharactersFile, charactersHeader, characterRows},
		{GenresFile, genresHeader, genreRows},
		{WorkGenresFile, workGenresHeader, workGenreRows},
		{WorkCharactersFile, workCharactersHeader, workCharacterRows},
	}
	for _, f := range files {
		if err := writeTable(filepath.Join(dir, f.name), f.header, f.rows); err != nil {
			return n, err
		}
	}

	return Counts{
		Works:          len(workRows),
		Characters:     len(characterRows),
		Genres:         len(genreRows),
		WorkGenres:     len(workGenreRows),
		WorkCharacters: len(workCharacterRows),
	}, nil
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
