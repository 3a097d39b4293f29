package models

type Genre struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
	Name  string `json:"name"`

	Works []WorkGenre `json:"-"`
}
