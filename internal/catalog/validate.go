package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"cataloghub/pkg/models"
)

// Inputs carry the client-supplied fields of a create or update. ID is only
// read on update, where it must equal the addressed id.

type WorkInput struct {
	ID          int64   `json:"id"`
	Image       string  `json:"image" validate:"max=80"`
	Title       string  `json:"title" validate:"required,max=120"`
	ReleaseDate string  `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	Rating      float64 `json:"rating" validate:"gte=1,lte=5"`
}

type CharacterInput struct {
	ID      int64   `json:"id"`
	Image   string  `json:"image" validate:"max=80"`
	Name    string  `json:"name" validate:"required,max=90"`
	Age     int     `json:"age" validate:"gte=0,lte=32767"`
	Weight  float64 `json:"weight" validate:"gte=0,lt=10000"`
	History string  `json:"history"`
}

type GenreInput struct {
	ID    int64  `json:"id"`
	Image string `json:"image" validate:"max=80"`
	Name  string `json:"name" validate:"required,max=40"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput runs the struct tags and folds failures into one
// KindValidation error.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return validation("invalid input: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be < %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, validation("release_date must be a date formatted %s", dateLayout)
	}
	return t, nil
}

// trimmed strips surrounding whitespace from the display fields. It runs
// before validation so a blank title fails required and the stored value is
// the trimmed one.
func (in WorkInput) trimmed() WorkInput {
	in.Image = strings.TrimSpace(in.Image)
	in.Title = strings.TrimSpace(in.Title)
	return in
}

func (in CharacterInput) trimmed() CharacterInput {
	in.Image = strings.TrimSpace(in.Image)
	in.Name = strings.TrimSpace(in.Name)
	return in
}

func (in GenreInput) trimmed() GenreInput {
	in.Image = strings.TrimSpace(in.Image)
	in.Name = strings.TrimSpace(in.Name)
	return in
}

func (in WorkInput) model(id int64) (models.Work, error) {
	release, err := parseDate(in.ReleaseDate)
	if err != nil {
		return models.Work{}, err
	}
	return models.Work{
		ID:          id,
		Image:       in.Image,
		Title:       in.Title,
		ReleaseDate: release,
		Rating:      in.Rating,
	}, nil
}

func (in CharacterInput) model(id int64) models.Character {
	return models.Character{
		ID:      id,
		Image:   in.Image,
		Name:    in.Name,
		Age:     in.Age,
		Weight:  in.Weight,
		History: in.History,
	}
}

func (in GenreInput) model(id int64) models.Genre {
	return models.Genre{
		ID:    id,
		Image: in.Image,
		Name:  in.Name,
	}
}
