package csvio

import (
	"context"
	"fmt"
	"path/filepath"

	"cataloghub/internal/catalog"
)

// Import loads the CSV files under dir through the engine, so every row is
// validated and published like an API call. Association rows whose endpoints
// were not imported fail the import; repeated pairs are skipped.
func Import(ctx context.Context, engine *catalog.Engine, dir string) (Counts, error) {
	var n Counts

	genreIDs, err := importGenres(ctx, engine, filepath.Join(dir, GenresFile), &n)
	if err != nil {
		return n, err
	}
	workIDs, err := importWorks(ctx, engine, filepath.Join(dir, WorksFile), &n)
	if err != nil {
		return n, err
	}
	characterIDs, err := importCharacters(ctx, engine, filepath.Join(dir, CharactersFile), &n)
	if err != nil {
		return n, err
	}

	links, err := readTable(filepath.Join(dir, WorkGenresFile))
	if err != nil {
		return n, err
	}
	for i, row := range links.rows {
		work, genre, err := remap(links, row, "genre_id", workIDs, genreIDs)
		if err != nil {
			return n, fmt.Errorf("%s row %d: %w", WorkGenresFile, i+2, err)
		}
		if _, err := engine.AttachGenreToWork(ctx, work, genre); err != nil {
			if catalog.IsConflict(err) {
				continue
			}
			return n, fmt.Errorf("%s row %d: %w", WorkGenresFile, i+2, err)
		}
		n.WorkGenres++
	}

	links, err = readTable(filepath.Join(dir, WorkCharactersFile))
	if err != nil {
		return n, err
	}
	for i, row := range links.rows {
		work, character, err := remap(links, row, "character_id", workIDs, characterIDs)
		if err != nil {
			return n, fmt.Errorf("%s row %d: %w", WorkCharactersFile, i+2, err)
		}
		if _, err := engine.AttachWorkToCharacter(ctx, character, work); err != nil {
			if catalog.IsConflict(err) {
				continue
			}
			return n, fmt.Errorf("%s row %d: %w", WorkCharactersFile, i+2, err)
		}
		n.WorkCharacters++
	}

	return n, nil
}

func remap(t table, row []string, otherKey string, workIDs, otherIDs map[int64]int64) (work, other int64, err error) {
	rawWork, err := parseInt(t.value(row, "work_id"))
	if err != nil {
		return 0, 0, fmt.Errorf("work_id: %w", err)
	}
	rawOther, err := parseInt(t.value(row, otherKey))
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", otherKey, err)
	}

	work, ok := workIDs[rawWork]
	if !ok {
		return 0, 0, fmt.Errorf("unknown work_id %d", rawWork)
	}
	other, ok = otherIDs[rawOther]
	if !ok {
		return 0, 0, fmt.Errorf("unknown %s %d", otherKey, rawOther)
	}
	return work, other, nil
}

func importGenres(ctx context.Context, engine *catalog.Engine, path string, n *Counts) (map[int64]int64, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]int64, len(t.rows))
	for i, row := range t.rows {
		fileID, err := parseInt(t.value(row, "id"))
		if err != nil {
			return nil, fmt.Errorf("%s row %d id: %w", GenresFile, i+2, err)
		}
		out, err := engine.CreateGenre(ctx, catalog.GenreInput{
			Image: t.value(row, "image"),
			Name:  t.value(row, "name"),
		})
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", GenresFile, i+2, err)
		}
		ids[fileID] = out.ID
		n.Genres++
	}
	return ids, nil
}

func importWorks(ctx context.Context, engine *catalog.Engine, path string, n *Counts) (map[int64]int64, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]int64, len(t.rows))
	for i, row := range t.rows {
		fileID, err := parseInt(t.value(row, "id"))
		if err != nil {
			return nil, fmt.Errorf("%s row %d id: %w", WorksFile, i+2, err)
		}
		rating, err := parseFloat(t.value(row, "rating"))
		if err != nil {
			return nil, fmt.Errorf("%s row %d rating: %w", WorksFile, i+2, err)
		}
		out, err := engine.CreateWork(ctx, catalog.WorkInput{
			Image:       t.value(row, "image"),
			Title:       t.value(row, "title"),
			ReleaseDate: t.value(row, "release_date"),
			Rating:      rating,
		})
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", WorksFile, i+2, err)
		}
		ids[fileID] = out.ID
		n.Works++
	}
	return ids, nil
}

func importCharacters(ctx context.Context, engine *catalog.Engine, path string, n *Counts) (map[int64]int64, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]int64, len(t.rows))
	for i, row := range t.rows {
		fileID, err := parseInt(t.value(row, "id"))
		if err != nil {
			return nil, fmt.Errorf("%s row %d id: %w", CharactersFile, i+2, err)
		}
		age, err := parseInt(t.value(row, "age"))
		if err != nil {
			return nil, fmt.Errorf("%s row %d age: %w", CharactersFile, i+2, err)
		}
		weight, err := parseFloat(t.value(row, "weight"))
		if err != nil {
			return nil, fmt.Errorf("%s row %d weight: %w", CharactersFile, i+2, err)
		}
		out, err := engine.CreateCharacter(ctx, catalog.CharacterInput{
			Image:   t.value(row, "image"),
			Name:    t.value(row, "name"),
			Age:     int(age),
			Weight:  weight,
			History: t.value(row, "history"),
		})
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CharactersFile, i+2, err)
		}
		ids[fileID] = out.ID
		n.Characters++
	}
	return ids, nil
}
