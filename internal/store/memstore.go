package store

import (
	"context"
	"sync"

	"cataloghub/pkg/models"
)

type pair struct {
	owner int64 // character or genre id
	work  int64
}

// MemStore is an in-memory Store. Ids are assigned from per-kind counters
// starting at 1, so ascending id order equals insertion order.
type MemStore struct {
	mu sync.RWMutex

	works      map[int64]models.Work
	characters map[int64]models.Character
	genres     map[int64]models.Genre

	workOrder      []int64
	characterOrder []int64
	genreOrder     []int64

	nextWork, nextCharacter, nextGenre int64

	// association rows in insertion order
	characterWorks []pair
	genreWorks     []pair
}

func NewMemStore() *MemStore {
	return &MemStore{
		works:      make(map[int64]models.Work),
		characters: make(map[int64]models.Character),
		genres:     make(map[int64]models.Genre),
	}
}

func (s *MemStore) Close() error { return nil }

// ---- works ----

func (s *MemStore) CreateWork(_ context.Context, w models.Work) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextWork++
	w.ID = s.nextWork
	w.Characters, w.Genres = nil, nil
	s.works[w.ID] = w
	s.workOrder = append(s.workOrder, w.ID)
	return w.ID, nil
}

func (s *MemStore) GetWork(_ context.Context, id int64, inc Include) (*models.Work, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.works[id]
	if !ok {
		return nil, nil
	}
	s.hydrateWork(&w, inc)
	return &w, nil
}

func (s *MemStore) ListWorks(_ context.Context, inc Include) ([]models.Work, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Work, 0, len(s.workOrder))
	for _, id := range s.workOrder {
		w := s.works[id]
		s.hydrateWork(&w, inc)
		out = append(out, w)
	}
	return out, nil
}

func (s *MemStore) UpdateWork(_ context.Context, w models.Work) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.works[w.ID]; !ok {
		return false, nil
	}
	w.Characters, w.Genres = nil, nil
	s.works[w.ID] = w
	return true, nil
}

func (s *MemStore) DeleteWork(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.works[id]; !ok {
		return false, nil
	}
	delete(s.works, id)
	s.workOrder = removeID(s.workOrder, id)
	s.characterWorks = removePairs(s.characterWorks, func(p pair) bool { return p.work == id })
	s.genreWorks = removePairs(s.genreWorks, func(p pair) bool { return p.work == id })
	return true, nil
}

// ---- characters ----

func (s *MemStore) CreateCharacter(_ context.Context, c models.Character) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCharacter++
	c.ID = s.nextCharacter
	c.Works = nil
	s.characters[c.ID] = c
	s.characterOrder = append(s.characterOrder, c.ID)
	return c.ID, nil
}

func (s *MemStore) GetCharacter(_ context.Context, id int64, inc Include) (*models.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.characters[id]
	if !ok {
		return nil, nil
	}
	if inc.Has(IncludeWorks) {
		c.Works = s.characterWorkRows(id)
	}
	return &c, nil
}

func (s *MemStore) ListCharacters(_ context.Context, inc Include) ([]models.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Character, 0, len(s.characterOrder))
	for _, id := range s.characterOrder {
		c := s.characters[id]
		if inc.Has(IncludeWorks) {
			c.Works = s.characterWorkRows(id)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *MemStore) UpdateCharacter(_ context.Context, c models.Character) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.characters[c.ID]; !ok {
		return false, nil
	}
	c.Works = nil
	s.characters[c.ID] = c
	return true, nil
}

func (s *MemStore) DeleteCharacter(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.characters[id]; !ok {
		return false, nil
	}
	delete(s.characters, id)
	s.characterOrder = removeID(s.characterOrder, id)
	s.characterWorks = removePairs(s.characterWorks, func(p pair) bool { return p.owner == id })
	return true, nil
}

// ---- genres ----

func (s *MemStore) CreateGenre(_ context.Context, g models.Genre) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextGenre++
	g.ID = s.nextGenre
	g.Works = nil
	s.genres[g.ID] = g
	s.genreOrder = append(s.genreOrder, g.ID)
	return g.ID, nil
}

func (s *MemStore) GetGenre(_ context.Context, id int64, inc Include) (*models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.genres[id]
	if !ok {
		return nil, nil
	}
	if inc.Has(IncludeWorks) {
		g.Works = s.genreWorkRows(id)
	}
	return &g, nil
}

func (s *MemStore) ListGenres(_ context.Context, inc Include) ([]models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Genre, 0, len(s.genreOrder))
	for _, id := range s.genreOrder {
		g := s.genres[id]
		if inc.Has(IncludeWorks) {
			g.Works = s.genreWorkRows(id)
		}
		out = append(out, g)
	}
	return out, nil
}

func (s *MemStore) UpdateGenre(_ context.Context, g models.Genre) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.genres[g.ID]; !ok {
		return false, nil
	}
	g.Works = nil
	s.genres[g.ID] = g
	return true, nil
}

func (s *MemStore) DeleteGenre(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.genres[id]; !ok {
		return false, nil
	}
	delete(s.genres, id)
	s.genreOrder = removeID(s.genreOrder, id)
	s.genreWorks = removePairs(s.genreWorks, func(p pair) bool { return p.owner == id })
	return true, nil
}

// ---- associations ----

func (s *MemStore) AddWorkGenre(_ context.Context, workID, genreID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := pair{owner: genreID, work: workID}
	for _, existing := range s.genreWorks {
		if existing == p {
			return ErrDuplicate
		}
	}
	s.genreWorks = append(s.genreWorks, p)
	return nil
}

func (s *MemStore) AddCharacterWork(_ context.Context, characterID, workID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := pair{owner: characterID, work: workID}
	for _, existing := range s.characterWorks {
		if existing == p {
			return ErrDuplicate
		}
	}
	s.characterWorks = append(s.characterWorks, p)
	return nil
}

func (s *MemStore) WorkCharacters(_ context.Context, workID int64) ([]models.WorkCharacter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workCharacterRows(workID), nil
}

func (s *MemStore) WorkGenres(_ context.Context, workID int64) ([]models.WorkGenre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workGenreRows(workID), nil
}

func (s *MemStore) CharacterWorks(_ context.Context, characterID int64) ([]models.WorkCharacter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.characterWorkRows(characterID), nil
}

func (s *MemStore) GenreWorks(_ context.Context, genreID int64) ([]models.WorkGenre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.genreWorkRows(genreID), nil
}

// helpers below expect s.mu to be held

func (s *MemStore) hydrateWork(w *models.Work, inc Include) {
	if inc.Has(IncludeCharacters) {
		w.Characters = s.workCharacterRows(w.ID)
	}
	if inc.Has(IncludeGenres) {
		w.Genres = s.workGenreRows(w.ID)
	}
}

func (s *MemStore) workCharacterRows(workID int64) []models.WorkCharacter {
	rows := make([]models.WorkCharacter, 0)
	for _, p := range s.characterWorks {
		if p.work != workID {
			continue
		}
		c := s.characters[p.owner]
		rows = append(rows, models.WorkCharacter{CharacterID: p.owner, WorkID: workID, Character: &c})
	}
	return rows
}

func (s *MemStore) workGenreRows(workID int64) []models.WorkGenre {
	rows := make([]models.WorkGenre, 0)
	for _, p := range s.genreWorks {
		if p.work != workID {
			continue
		}
		g := s.genres[p.owner]
		rows = append(rows, models.WorkGenre{GenreID: p.owner, WorkID: workID, Genre: &g})
	}
	return rows
}

func (s *MemStore) characterWorkRows(characterID int64) []models.WorkCharacter {
	rows := make([]models.WorkCharacter, 0)
	for _, p := range s.characterWorks {
		if p.owner != characterID {
			continue
		}
		w := s.works[p.work]
		rows = append(rows, models.WorkCharacter{CharacterID: characterID, WorkID: p.work, Work: &w})
	}
	return rows
}

func (s *MemStore) genreWorkRows(genreID int64) []models.WorkGenre {
	rows := make([]models.WorkGenre, 0)
	for _, p := range s.genreWorks {
		if p.owner != genreID {
			continue
		}
		w := s.works[p.work]
		rows = append(rows, models.WorkGenre{GenreID: genreID, WorkID: p.work, Work: &w})
	}
	return rows
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func removePairs(pairs []pair, drop func(pair) bool) []pair {
	out := pairs[:0]
	for _, p := range pairs {
		if !drop(p) {
			out = append(out, p)
		}
	}
	return out
}
