package models

type Character struct {
	ID      int64   `json:"id"`
	Image   string  `json:"image"`
	Name    string  `json:"name"`
	Age     int     `json:"age"`
	Weight  float64 `json:"weight"`
	History string  `json:"history"`

	Works []WorkCharacter `json:"-"`
}
