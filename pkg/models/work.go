package models

import "time"

// Work is a catalog audiovisual item (film or show).
//
// Characters and Genres hold association rows and are only populated when
// the caller asked the store to hydrate them.
type Work struct {
	ID          int64     `json:"id"`
	Image       string    `json:"image"`
	Title       string    `json:"title"`
	ReleaseDate time.Time `json:"release_date"`
	Rating      float64   `json:"rating"`

	Characters []WorkCharacter `json:"-"`
	Genres     []WorkGenre     `json:"-"`
}

// WorkCharacter links a character to a work it appears in.
type WorkCharacter struct {
	CharacterID int64 `json:"character_id"`
	WorkID      int64 `json:"work_id"`

	Character *Character `json:"-"`
	Work      *Work      `json:"-"`
}

// WorkGenre records that a work belongs to a genre.
type WorkGenre struct {
	GenreID int64 `json:"genre_id"`
	WorkID  int64 `json:"work_id"`

	Genre *Genre `json:"-"`
	Work  *Work  `json:"-"`
}
