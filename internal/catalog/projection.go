package catalog

import (
	"time"

	"cataloghub/pkg/models"
)

const dateLayout = "2006-01-02"

// Response shapes. Association lists carry only the far side's display field
// in loaded-row order and are never nil.

type WorkSummary struct {
	Image       string `json:"image"`
	Title       string `json:"title"`
	ReleaseYear string `json:"release_year"`
}

type WorkDetail struct {
	ID          int64    `json:"id"`
	Image       string   `json:"image"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"release_date"`
	Rating      float64  `json:"rating"`
	Characters  []string `json:"characters"`
	Genres      []string `json:"genres"`
}

// WorkCharacters is a work together with the names of its characters.
type WorkCharacters struct {
	ID          int64    `json:"id"`
	Image       string   `json:"image"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"release_date"`
	Rating      float64  `json:"rating"`
	Characters  []string `json:"characters"`
}

type CharacterSummary struct {
	Image string `json:"image"`
	Name  string `json:"name"`
}

type CharacterDetail struct {
	ID      int64    `json:"id"`
	Image   string   `json:"image"`
	Name    string   `json:"name"`
	Age     int      `json:"age"`
	Weight  float64  `json:"weight"`
	History string   `json:"history"`
	Works   []string `json:"works"`
}

type GenreSummary struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
	Name  string `json:"name"`
}

type GenreDetail struct {
	ID    int64    `json:"id"`
	Image string   `json:"image"`
	Name  string   `json:"name"`
	Works []string `json:"works"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatYear(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006")
}

// ---- far-side display fields ----

func characterNames(rows []models.WorkCharacter) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Character != nil {
			out = append(out, r.Character.Name)
		}
	}
	return out
}

func genreNames(rows []models.WorkGenre) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Genre != nil {
			out = append(out, r.Genre.Name)
		}
	}
	return out
}

func characterWorkTitles(rows []models.WorkCharacter) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Work != nil {
			out = append(out, r.Work.Title)
		}
	}
	return out
}

func genreWorkTitles(rows []models.WorkGenre) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Work != nil {
			out = append(out, r.Work.Title)
		}
	}
	return out
}

// ---- works ----

func ToWorkSummary(w models.Work) WorkSummary {
	return WorkSummary{Image: w.Image, Title: w.Title, ReleaseYear: formatYear(w.ReleaseDate)}
}

func ToWorkSummaries(ws []models.Work) []WorkSummary {
	out := make([]WorkSummary, 0, len(ws))
	for _, w := range ws {
		out = append(out, ToWorkSummary(w))
	}
	return out
}

// ToWorkDetail expects characters and genres hydrated.
func ToWorkDetail(w models.Work) WorkDetail {
	return WorkDetail{
		ID:          w.ID,
		Image:       w.Image,
		Title:       w.Title,
		ReleaseDate: formatDate(w.ReleaseDate),
		Rating:      w.Rating,
		Characters:  characterNames(w.Characters),
		Genres:      genreNames(w.Genres),
	}
}

func ToWorkDetails(ws []models.Work) []WorkDetail {
	out := make([]WorkDetail, 0, len(ws))
	for _, w := range ws {
		out = append(out, ToWorkDetail(w))
	}
	return out
}

// ToWorkCharacters expects characters hydrated.
func ToWorkCharacters(w models.Work) WorkCharacters {
	return WorkCharacters{
		ID:          w.ID,
		Image:       w.Image,
		Title:       w.Title,
		ReleaseDate: formatDate(w.ReleaseDate),
		Rating:      w.Rating,
		Characters:  characterNames(w.Characters),
	}
}

// ---- characters ----

func ToCharacterSummary(c models.Character) CharacterSummary {
	return CharacterSummary{Image: c.Image, Name: c.Name}
}

func ToCharacterSummaries(cs []models.Character) []CharacterSummary {
	out := make([]CharacterSummary, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCharacterSummary(c))
	}
	return out
}

// ToCharacterDetail expects works hydrated.
func ToCharacterDetail(c models.Character) CharacterDetail {
	return CharacterDetail{
		ID:      c.ID,
		Image:   c.Image,
		Name:    c.Name,
		Age:     c.Age,
		Weight:  c.Weight,
		History: c.History,
		Works:   characterWorkTitles(c.Works),
	}
}

func ToCharacterDetails(cs []models.Character) []CharacterDetail {
	out := make([]CharacterDetail, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCharacterDetail(c))
	}
	return out
}

// ---- genres ----

func ToGenreSummary(g models.Genre) GenreSummary {
	return GenreSummary{ID: g.ID, Image: g.Image, Name: g.Name}
}

func ToGenreSummaries(gs []models.Genre) []GenreSummary {
	out := make([]GenreSummary, 0, len(gs))
	for _, g := range gs {
		out = append(out, ToGenreSummary(g))
	}
	return out
}

// ToGenreDetail expects works hydrated.
func ToGenreDetail(g models.Genre) GenreDetail {
	return GenreDetail{
		ID:    g.ID,
		Image: g.Image,
		Name:  g.Name,
		Works: genreWorkTitles(g.Works),
	}
}
