package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cataloghub/pkg/models"
)

func (s *SQLiteStore) CreateCharacter(ctx context.Context, c models.Character) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO characters (image, name, age, weight, history)
		VALUES (?, ?, ?, ?, ?)
	`, nullString(c.Image), c.Name, c.Age, c.Weight, nullString(c.History))
	if err != nil {
		return 0, fmt.Errorf("insert character: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) GetCharacter(ctx context.Context, id int64, inc Include) (*models.Character, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT `+characterColumns+`
		FROM characters c
		WHERE c.id = ?
	`, id)

	c, err := scanCharacter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getCharacter: %w", err)
	}

	if inc.Has(IncludeWorks) {
		byCharacter, err := s.loadCharacterWorks(ctx, `WHERE wc.character_id = ?`, id)
		if err != nil {
			return nil, err
		}
		c.Works = nonNil(byCharacter[id])
	}
	return &c, nil
}

func (s *SQLiteStore) ListCharacters(ctx context.Context, inc Include) ([]models.Character, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+characterColumns+`
		FROM characters c
		ORDER BY c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer rows.Close()

	out := make([]models.Character, 0)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("list characters scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}

	if inc.Has(IncludeWorks) {
		byCharacter, err := s.loadCharacterWorks(ctx, "")
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i].Works = nonNil(byCharacter[out[i].ID])
		}
	}
	return out, nil
}

func (s *SQLiteStore) UpdateCharacter(ctx context.Context, c models.Character) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE characters
		SET image = ?, name = ?, age = ?, weight = ?, history = ?
		WHERE id = ?
	`, nullString(c.Image), c.Name, c.Age, c.Weight, nullString(c.History), c.ID)
	if err != nil {
		return false, fmt.Errorf("update character: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update character rows: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) DeleteCharacter(ctx context.Context, id int64) (bool, error) {
	return s.deleteWithRows(ctx, "characters", id,
		`DELETE FROM work_characters WHERE character_id = ?`,
	)
}
