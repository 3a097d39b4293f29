// Package store holds the canonical catalog graph: works, characters, genres
// and the two association sets linking works to characters and genres.
//
// Two implementations share the Store interface. MemStore keeps everything in
// maps and is used by tests and tooling; SQLiteStore persists through
// database/sql. Both assign identifiers, return rows in insertion order and
// remove dependent association rows when an entity is deleted.
package store

import (
	"context"
	"errors"

	"cataloghub/pkg/models"
)

// ErrDuplicate is returned when an association pair already exists.
var ErrDuplicate = errors.New("association already exists")

// Include selects which association rows a read hydrates.
type Include uint8

const (
	IncludeCharacters Include = 1 << iota // work -> characters
	IncludeGenres                         // work -> genres
	IncludeWorks                          // character/genre -> works

	IncludeNone Include = 0
)

func (i Include) Has(flag Include) bool { return i&flag != 0 }

// Store is the repository the catalog engine runs against.
//
// Get methods return (nil, nil) when the id does not resolve. Update and
// Delete report whether a row was addressed.
type Store interface {
	CreateWork(ctx context.Context, w models.Work) (int64, error)
	GetWork(ctx context.Context, id int64, inc Include) (*models.Work, error)
	ListWorks(ctx context.Context, inc Include) ([]models.Work, error)
	UpdateWork(ctx context.Context, w models.Work) (bool, error)
	DeleteWork(ctx context.Context, id int64) (bool, error)

	CreateCharacter(ctx context.Context, c models.Character) (int64, error)
	GetCharacter(ctx context.Context, id int64, inc Include) (*models.Character, error)
	ListCharacters(ctx context.Context, inc Include) ([]models.Character, error)
	UpdateCharacter(ctx context.Context, c models.Character) (bool, error)
	DeleteCharacter(ctx context.Context, id int64) (bool, error)

	CreateGenre(ctx context.Context, g models.Genre) (int64, error)
	GetGenre(ctx context.Context, id int64, inc Include) (*models.Genre, error)
	ListGenres(ctx context.Context, inc Include) ([]models.Genre, error)
	UpdateGenre(ctx context.Context, g models.Genre) (bool, error)
	DeleteGenre(ctx context.Context, id int64) (bool, error)

	// AddWorkGenre and AddCharacterWork assume both endpoints exist; the
	// caller checks. A repeated pair yields ErrDuplicate.
	AddWorkGenre(ctx context.Context, workID, genreID int64) error
	AddCharacterWork(ctx context.Context, characterID, workID int64) error

	// Association accessors, rows hydrated with the far-side entity.
	WorkCharacters(ctx context.Context, workID int64) ([]models.WorkCharacter, error)
	WorkGenres(ctx context.Context, workID int64) ([]models.WorkGenre, error)
	CharacterWorks(ctx context.Context, characterID int64) ([]models.WorkCharacter, error)
	GenreWorks(ctx context.Context, genreID int64) ([]models.WorkGenre, error)

	Close() error
}
