package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"cataloghub/pkg/models"
)

const dateLayout = "2006-01-02"

// SQLiteStore implements Store on a migrated SQLite database.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const (
	workColumns      = `w.id, w.image, w.title, w.release_date, w.rating`
	characterColumns = `c.id, c.image, c.name, c.age, c.weight, c.history`
	genreColumns     = `g.id, g.image, g.name`
)

func scanWork(sc scanner, extra ...any) (models.Work, error) {
	var (
		w       models.Work
		image   sql.NullString
		release sql.NullTime
	)
	dest := append([]any{&w.ID, &image, &w.Title, &release, &w.Rating}, extra...)
	if err := sc.Scan(dest...); err != nil {
		return models.Work{}, err
	}
	w.Image = image.String
	if release.Valid {
		w.ReleaseDate = release.Time.UTC()
	}
	return w, nil
}

func scanCharacter(sc scanner, extra ...any) (models.Character, error) {
	var (
		c       models.Character
		image   sql.NullString
		history sql.NullString
	)
	dest := append([]any{&c.ID, &image, &c.Name, &c.Age, &c.Weight, &history}, extra...)
	if err := sc.Scan(dest...); err != nil {
		return models.Character{}, err
	}
	c.Image = image.String
	c.History = history.String
	return c, nil
}

func scanGenre(sc scanner, extra ...any) (models.Genre, error) {
	var (
		g     models.Genre
		image sql.NullString
	)
	dest := append([]any{&g.ID, &image, &g.Name}, extra...)
	if err := sc.Scan(dest...); err != nil {
		return models.Genre{}, err
	}
	g.Image = image.String
	return g, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(dateLayout), Valid: true}
}

func isDuplicate(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// deleteWithRows removes the dependent association rows and then the entity
// itself inside one transaction.
func (s *SQLiteStore) deleteWithRows(ctx context.Context, entity string, id int64, cleanup ...string) (deleted bool, err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete %s: %w", entity, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range cleanup {
		if _, err = tx.ExecContext(ctx, stmt, id); err != nil {
			return false, fmt.Errorf("delete %s associations: %w", entity, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM `+entity+` WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", entity, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s rows: %w", entity, err)
	}
	if n == 0 {
		err = tx.Rollback()
		return false, err
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete %s: %w", entity, err)
	}
	return true, nil
}

// ---- associations ----

func (s *SQLiteStore) AddWorkGenre(ctx context.Context, workID, genreID int64) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO work_genres (genre_id, work_id)
		VALUES (?, ?)
	`, genreID, workID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert work genre: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddCharacterWork(ctx context.Context, characterID, workID int64) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO work_characters (character_id, work_id)
		VALUES (?, ?)
	`, characterID, workID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert character work: %w", err)
	}
	return nil
}

func (s *SQLiteStore) WorkCharacters(ctx context.Context, workID int64) ([]models.WorkCharacter, error) {
	byWork, err := s.loadWorkCharacters(ctx, `WHERE wc.work_id = ?`, workID)
	if err != nil {
		return nil, err
	}
	return nonNil(byWork[workID]), nil
}

func (s *SQLiteStore) WorkGenres(ctx context.Context, workID int64) ([]models.WorkGenre, error) {
	byWork, err := s.loadWorkGenres(ctx, `WHERE wg.work_id = ?`, workID)
	if err != nil {
		return nil, err
	}
	return nonNil(byWork[workID]), nil
}

func (s *SQLiteStore) CharacterWorks(ctx context.Context, characterID int64) ([]models.WorkCharacter, error) {
	byCharacter, err := s.loadCharacterWorks(ctx, `WHERE wc.character_id = ?`, characterID)
	if err != nil {
		return nil, err
	}
	return nonNil(byCharacter[characterID]), nil
}

func (s *SQLiteStore) GenreWorks(ctx context.Context, genreID int64) ([]models.WorkGenre, error) {
	byGenre, err := s.loadGenreWorks(ctx, `WHERE wg.genre_id = ?`, genreID)
	if err != nil {
		return nil, err
	}
	return nonNil(byGenre[genreID]), nil
}

// loadWorkCharacters groups work_characters rows by work id, each row
// carrying the character. Rows keep join-table insertion order.
func (s *SQLiteStore) loadWorkCharacters(ctx context.Context, where string, args ...any) (map[int64][]models.WorkCharacter, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+characterColumns+`, wc.work_id
		FROM work_characters wc
		JOIN characters c ON c.id = wc.character_id
		`+where+`
		ORDER BY wc.rowid
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query work characters: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]models.WorkCharacter)
	for rows.Next() {
		var workID int64
		c, err := scanCharacter(rows, &workID)
		if err != nil {
			return nil, fmt.Errorf("scan work character: %w", err)
		}
		out[workID] = append(out[workID], models.WorkCharacter{CharacterID: c.ID, WorkID: workID, Character: &c})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows work characters: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) loadWorkGenres(ctx context.Context, where string, args ...any) (map[int64][]models.WorkGenre, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+genreColumns+`, wg.work_id
		FROM work_genres wg
		JOIN genres g ON g.id = wg.genre_id
		`+where+`
		ORDER BY wg.rowid
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query work genres: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]models.WorkGenre)
	for rows.Next() {
		var workID int64
		g, err := scanGenre(rows, &workID)
		if err != nil {
			return nil, fmt.Errorf("scan work genre: %w", err)
		}
		out[workID] = append(out[workID], models.WorkGenre{GenreID: g.ID, WorkID: workID, Genre: &g})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows work genres: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) loadCharacterWorks(ctx context.Context, where string, args ...any) (map[int64][]models.WorkCharacter, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+workColumns+`, wc.character_id
		FROM work_characters wc
		JOIN works w ON w.id = wc.work_id
		`+where+`
		ORDER BY wc.rowid
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query character works: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]models.WorkCharacter)
	for rows.Next() {
		var characterID int64
		w, err := scanWork(rows, &characterID)
		if err != nil {
			return nil, fmt.Errorf("scan character work: %w", err)
		}
		out[characterID] = append(out[characterID], models.WorkCharacter{CharacterID: characterID, WorkID: w.ID, Work: &w})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows character works: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) loadGenreWorks(ctx context.Context, where string, args ...any) (map[int64][]models.WorkGenre, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+workColumns+`, wg.genre_id
		FROM work_genres wg
		JOIN works w ON w.id = wg.work_id
		`+where+`
		ORDER BY wg.rowid
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query genre works: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]models.WorkGenre)
	for rows.Next() {
		var genreID int64
		w, err := scanWork(rows, &genreID)
		if err != nil {
			return nil, fmt.Errorf("scan genre work: %w", err)
		}
		out[genreID] = append(out[genreID], models.WorkGenre{GenreID: genreID, WorkID: w.ID, Work: &w})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows genre works: %w", err)
	}
	return out, nil
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return make([]T, 0)
	}
	return rows
}
