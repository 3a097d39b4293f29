package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cataloghub/pkg/models"
)

func (s *SQLiteStore) CreateWork(ctx context.Context, w models.Work) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO works (image, title, release_date, rating)
		VALUES (?, ?, ?, ?)
	`, nullString(w.Image), w.Title, nullDate(w.ReleaseDate), w.Rating)
	if err != nil {
		return 0, fmt.Errorf("insert work: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) GetWork(ctx context.Context, id int64, inc Include) (*models.Work, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT `+workColumns+`
		FROM works w
		WHERE w.id = ?
	`, id)

	w, err := scanWork(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getWork: %w", err)
	}

	if inc.Has(IncludeCharacters) {
		byWork, err := s.loadWorkCharacters(ctx, `WHERE wc.work_id = ?`, id)
		if err != nil {
			return nil, err
		}
		w.Characters = nonNil(byWork[id])
	}
	if inc.Has(IncludeGenres) {
		byWork, err := s.loadWorkGenres(ctx, `WHERE wg.work_id = ?`, id)
		if err != nil {
			return nil, err
		}
		w.Genres = nonNil(byWork[id])
	}
	return &w, nil
}

func (s *SQLiteStore) ListWorks(ctx context.Context, inc Include) ([]models.Work, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+workColumns+`
		FROM works w
		ORDER BY w.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list works: %w", err)
	}
	defer rows.Close()

	out := make([]models.Work, 0)
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, fmt.Errorf("list works scan: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}

	if inc.Has(IncludeCharacters) {
		byWork, err := s.loadWorkCharacters(ctx, "")
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i].Characters = nonNil(byWork[out[i].ID])
		}
	}
	if inc.Has(IncludeGenres) {
		byWork, err := s.loadWorkGenres(ctx, "")
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i].Genres = nonNil(byWork[out[i].ID])
		}
	}
	return out, nil
}

func (s *SQLiteStore) UpdateWork(ctx context.Context, w models.Work) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE works
		SET image = ?, title = ?, release_date = ?, rating = ?
		WHERE id = ?
	`, nullString(w.Image), w.Title, nullDate(w.ReleaseDate), w.Rating, w.ID)
	if err != nil {
		return false, fmt.Errorf("update work: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update work rows: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) DeleteWork(ctx context.Context, id int64) (bool, error) {
	return s.deleteWithRows(ctx, "works", id,
		`DELETE FROM work_characters WHERE work_id = ?`,
		`DELETE FROM work_genres WHERE work_id = ?`,
	)
}
