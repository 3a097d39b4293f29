package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cataloghub/internal/store"
)

// AttachGenreToWork links an existing genre to an existing work. The work is
// the owner. Both sides resolve independently so the error can name either
// or both missing tables.
func (e *Engine) AttachGenreToWork(ctx context.Context, workID, genreID int64) (Outcome, error) {
	w, err := e.Store.GetWork(ctx, workID, store.IncludeNone)
	if err != nil {
		return Outcome{}, fmt.Errorf("get work %d: %w", workID, err)
	}
	g, err := e.Store.GetGenre(ctx, genreID, store.IncludeNone)
	if err != nil {
		return Outcome{}, fmt.Errorf("get genre %d: %w", genreID, err)
	}

	var missing []string
	if w == nil {
		missing = append(missing, "works")
	}
	if g == nil {
		missing = append(missing, "genres")
	}
	if len(missing) > 0 {
		return Outcome{}, missingSides(missing...)
	}

	if err := e.Store.AddWorkGenre(ctx, workID, genreID); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return Outcome{}, conflict("work %q already belongs to genre %q", w.Title, g.Name)
		}
		return Outcome{}, fmt.Errorf("attach genre %d to work %d: %w", genreID, workID, err)
	}

	e.Log.Info("genre attached",
		zap.Int64("work_id", workID),
		zap.Int64("genre_id", genreID),
	)
	e.publish(EventGenreAttached, "work", workID, genreID, g.Name)

	return Outcome{
		ID:      workID,
		Message: fmt.Sprintf("work '%s' was updated with genre '%s'", w.Title, g.Name),
	}, nil
}

// AttachWorkToCharacter links an existing work to an existing character. The
// character is the owner.
func (e *Engine) AttachWorkToCharacter(ctx context.Context, characterID, workID int64) (Outcome, error) {
	c, err := e.Store.GetCharacter(ctx, characterID, store.IncludeNone)
	if err != nil {
		return Outcome{}, fmt.Errorf("get character %d: %w", characterID, err)
	}
	w, err := e.Store.GetWork(ctx, workID, store.IncludeNone)
	if err != nil {
		return Outcome{}, fmt.Errorf("get work %d: %w", workID, err)
	}

	var missing []string
	if c == nil {
		missing = append(missing, "characters")
	}
	if w == nil {
		missing = append(missing, "works")
	}
	if len(missing) > 0 {
		return Outcome{}, missingSides(missing...)
	}

	if err := e.Store.AddCharacterWork(ctx, characterID, workID); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return Outcome{}, conflict("character %q already appears in work %q", c.Name, w.Title)
		}
		return Outcome{}, fmt.Errorf("attach work %d to character %d: %w", workID, characterID, err)
	}

	e.Log.Info("work attached",
		zap.Int64("character_id", characterID),
		zap.Int64("work_id", workID),
	)
	e.publish(EventWorkAttached, "character", characterID, workID, w.Title)

	return Outcome{
		ID:      characterID,
		Message: fmt.Sprintf("character '%s' was updated with work '%s'", c.Name, w.Title),
	}, nil
}
