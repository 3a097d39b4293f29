package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cataloghub/internal/store"
)

// ---- works ----

func (e *Engine) CreateWork(ctx context.Context, in WorkInput) (Outcome, error) {
	in = in.trimmed()
	if err := validateInput(in); err != nil {
		return Outcome{}, err
	}
	w, err := in.model(0)
	if err != nil {
		return Outcome{}, err
	}

	id, err := e.Store.CreateWork(ctx, w)
	if err != nil {
		return Outcome{}, fmt.Errorf("create work: %w", err)
	}

	e.Log.Info("work created", zap.Int64("id", id), zap.String("title", w.Title))
	e.publish(EventWorkCreated, "work", id, 0, w.Title)
	return Outcome{ID: id, Message: fmt.Sprintf("work '%s' was added to the catalog", w.Title)}, nil
}

// UpdateWork replaces every scalar field of work id. The body id must match.
func (e *Engine) UpdateWork(ctx context.Context, id int64, in WorkInput) (Outcome, error) {
	if in.ID != id {
		return Outcome{}, idMismatch(id, in.ID)
	}
	in = in.trimmed()
	if err := validateInput(in); err != nil {
		return Outcome{}, err
	}
	w, err := in.model(id)
	if err != nil {
		return Outcome{}, err
	}

	ok, err := e.Store.UpdateWork(ctx, w)
	if err != nil {
		return Outcome{}, fmt.Errorf("update work %d: %w", id, err)
	}
	if !ok {
		return Outcome{}, notFound("no work with id %d", id)
	}

	e.Log.Info("work updated", zap.Int64("id", id))
	e.publish(EventWorkUpdated, "work", id, 0, w.Title)
	return Outcome{ID: id, Message: fmt.Sprintf("work '%s' was updated", w.Title)}, nil
}

// DeleteWork removes a work and every association row referencing it.
func (e *Engine) DeleteWork(ctx context.Context, id int64) (Outcome, error) {
	w, err := e.Store.GetWork(ctx, id, store.IncludeNone)
	if err != nil {
		return Outcome{}, fmt.Errorf("get work %d: %w", id, err)
	}
	if w == nil {
		return Outcome{}, notFound("no work with id %d", id)
	}

	ok, err := e.Store.DeleteWork(ctx, id)
	if err != nil {
		return Outcome{}, fmt.Errorf("delete work %d: %w", id, err)
	}
	if !ok {
		return Outcome{}, notFound("no work with id %d", id)
	}

	e.Log.Info("work deleted", zap.Int64("id", id))
	e.publish(EventWorkDeleted, "work", id, 0, w.Title)
	return Outcome{ID: id, Message: fmt.Sprintf("work '%s' was removed from the catalog", w.Title)}, nil
}

// ---- characters ----

func (e *Engine) CreateCharacter(ctx context.Context, in CharacterInput) (Outcome, error) {
	in = in.trimmed()
	if err := validateInput(in); err != nil {
		return Outcome{}, err
	}
	c := in.model(0)

	id, err := e.Store.CreateCharacter(ctx, c)
	if err != nil {
		return Outcome{}, fmt.Errorf("create character: %w", err)
	}

	e.Log.Info("character created", zap.Int64("id", id), zap.String("name", c.Name))
	e.publish(EventCharacterCreated, "character", id, 0, c.Name)
	return Outcome{ID: id, Message: fmt.Sprintf("character '%s' was added to the catalog", c.Name)}, nil
}

func (e *Engine) UpdateCharacter(ctx context.Context, id int64, in CharacterInput) (Outcome, error) {
	if in.ID != id {
		return Outcome{}, idMismatch(id, in.ID)
	}
	in = in.trimmed()
	if err := validateInput(in); err != nil {
		return Outcome{}, err
	}
	c := in.model(id)

	ok, err := e.Store.UpdateCharacter(ctx, c)
	if err != nil {
		return Outcome{}, fmt.Errorf("update character %d: %w", id, err)
	}
	if !ok {
		return Outcome{}, notFound("no character with id %d", id)
	}

	e.Log.Info("character updated", zap.Int64("id", id))
	e.publish(EventCharacterUpdated, "character", id, 0, c.Name)
	return Outcome{ID: id, Message: fmt.Sprintf("character '%s' was updated", c.Name)}, nil
}

func (e *Engine) DeleteCharacter(ctx context.Context, id int64) (Outcome, error) {
	c, err := e.Store.GetCharacter(ctx, id, store.IncludeNone)
	if err != nil {
		return Outcome{}, fmt.Errorf("get character %d: %w", id, err)
	}
	if c == nil {
		return Outcome{}, notFound("no character with id %d", id)
	}

	ok, err := e.Store.DeleteCharacter(ctx, id)
	if err != nil {
		return Outcome{}, fmt.Errorf("delete character %d: %w", id, err)
	}
	if !ok {
		return Outcome{}, notFound("no character with id %d", id)
	}

	e.Log.Info("character deleted", zap.Int64("id", id))
	e.publish(EventCharacterDeleted, "character", id, 0, c.Name)
	return Outcome{ID: id, Message: fmt.Sprintf("character '%s' was removed from the catalog", c.Name)}, nil
}

// ---- genres ----

func (e *Engine) CreateGenre(ctx context.Context, in GenreInput) (Outcome, error) {
	in = in.trimmed()
	if err := validateInput(in); err != nil {
		return Outcome{}, err
	}
	g := in.model(0)

	id, err := e.Store.CreateGenre(ctx, g)
	if err != nil {
		return Outcome{}, fmt.Errorf("create genre: %w", err)
	}

	e.Log.Info("genre created", zap.Int64("id", id), zap.String("name", g.Name))
	e.publish(EventGenreCreated, "genre", id, 0, g.Name)
	return Outcome{ID: id, Message: fmt.Sprintf("genre '%s' was added to the catalog", g.Name)}, nil
}

func (e *Engine) UpdateGenre(ctx context.Context, id int64, in GenreInput) (Outcome, error) {
	if in.ID != id {
		return Outcome{}, idMismatch(id, in.ID)
	}
	in = in.trimmed()
	if err := validateInput(in); err != nil {
		return Outcome{}, err
	}
	g := in.model(id)

	ok, err := e.Store.UpdateGenre(ctx, g)
	if err != nil {
		return Outcome{}, fmt.Errorf("update genre %d: %w", id, err)
	}
	if !ok {
		return Outcome{}, notFound("no genre with id %d", id)
	}

	e.Log.Info("genre updated", zap.Int64("id", id))
	e.publish(EventGenreUpdated, "genre", id, 0, g.Name)
	return Outcome{ID: id, Message: fmt.Sprintf("genre '%s' was updated", g.Name)}, nil
}

func (e *Engine) DeleteGenre(ctx context.Context, id int64) (Outcome, error) {
	g, err := e.Store.GetGenre(ctx, id, store.IncludeNone)
	if err != nil {
		return Outcome{}, fmt.Errorf("get genre %d: %w", id, err)
	}
	if g == nil {
		return Outcome{}, notFound("no genre with id %d", id)
	}

	ok, err := e.Store.DeleteGenre(ctx, id)
	if err != nil {
		return Outcome{}, fmt.Errorf("delete genre %d: %w", id, err)
	}
	if !ok {
		return Outcome{}, notFound("no genre with id %d", id)
	}

	e.Log.Info("genre deleted", zap.Int64("id", id))
	e.publish(EventGenreDeleted, "genre", id, 0, g.Name)
	return Outcome{ID: id, Message: fmt.Sprintf("genre '%s' was removed from the catalog", g.Name)}, nil
}
