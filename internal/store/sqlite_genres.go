package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cataloghub/pkg/models"
)

func (s *SQLiteStore) CreateGenre(ctx context.Context, g models.Genre) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO genres (image, name)
		VALUES (?, ?)
	`, nullString(g.Image), g.Name)
	if err != nil {
		return 0, fmt.Errorf("insert genre: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) GetGenre(ctx context.Context, id int64, inc Include) (*models.Genre, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT `+genreColumns+`
		FROM genres g
		WHERE g.id = ?
	`, id)

	g, err := scanGenre(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getGenre: %w", err)
	}

	if inc.Has(IncludeWorks) {
		byGenre, err := s.loadGenreWorks(ctx, `WHERE wg.genre_id = ?`, id)
		if err != nil {
			return nil, err
		}
		g.Works = nonNil(byGenre[id])
	}
	return &g, nil
}

func (s *SQLiteStore) ListGenres(ctx context.Context, inc Include) ([]models.Genre, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+genreColumns+`
		FROM genres g
		ORDER BY g.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	out := make([]models.Genre, 0)
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, fmt.Errorf("list genres scan: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}

	if inc.Has(IncludeWorks) {
		byGenre, err := s.loadGenreWorks(ctx, "")
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i].Works = nonNil(byGenre[out[i].ID])
		}
	}
	return out, nil
}

func (s *SQLiteStore) UpdateGenre(ctx context.Context, g models.Genre) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE genres
		SET image = ?, name = ?
		WHERE id = ?
	`, nullString(g.Image), g.Name, g.ID)
	if err != nil {
		return false, fmt.Errorf("update genre: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update genre rows: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) DeleteGenre(ctx context.Context, id int64) (bool, error) {
	return s.deleteWithRows(ctx, "genres", id,
		`DELETE FROM work_genres WHERE genre_id = ?`,
	)
}
