package grpcserver

import "cataloghub/internal/catalog"

type ListWorksRequest struct {
	Name    *string `json:"name,omitempty"`
	GenreID *int64  `json:"genre_id,omitempty"`
	Order   *string `json:"order,omitempty"`
}

type GetRequest struct {
	ID int64 `json:"id"`
}

type ListCharactersRequest struct {
	Name   *string `json:"name,omitempty"`
	Age    *int    `json:"age,omitempty"`
	WorkID *int64  `json:"work_id,omitempty"`
}

type ListGenresRequest struct{}

type ListGenresResponse struct {
	Genres []catalog.GenreSummary `json:"genres"`
}

type AttachRequest struct {
	OwnerID   int64 `json:"owner_id"`
	RelatedID int64 `json:"related_id"`
}
