package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
)

var _ ports.Repository = (*Repository)(nil)

type favoriteKey struct {
	userID uuid.UUID
	gifID  string
}

// Repository keeps favorites in memory for development and tests.
type Repository struct {
	mu        sync.RWMutex
	favorites map[favoriteKey]domain.Favorite
}

func NewRepository() *Repository {
	return &Repository{favorites: map[favoriteKey]domain.Favorite{}}
}

func (r *Repository) Upsert(_ context.Context, favorite *domain.Favorite) (*domain.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := favoriteKey{userID: favorite.UserID, gifID: favorite.GifID}
	stored, ok := r.favorites[key]
	if ok {
		stored.Alias = favorite.Alias
		stored.UpdatedAt = favorite.UpdatedAt
	} else {
		stored = *favorite
	}
	r.favorites[key] = stored
	return &stored, nil
}

func (r *Repository) Delete(_ context.Context, userID uuid.UUID, gifID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := favoriteKey{userID: userID, gifID: gifID}
	if _, ok := r.favorites[key]; !ok {
		return ports.ErrNotFound
	}
	delete(r.favorites, key)
	return nil
}

func (r *Repository) List(_ context.Context, userID uuid.UUID, page domain.PageRequest) (*domain.Page, error) {
	r.mu.RLock()
	owned := make([]domain.Favorite, 0)
	for key, favorite := range r.favorites {
		if key.userID == userID {
			owned = append(owned, favorite)
		}
	}
	r.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].GifID < owned[j].GifID
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	result := &domain.Page{Items: []*domain.Favorite{}, TotalCount: int64(len(owned)), Offset: page.Offset}
	for i := page.Offset; i < len(owned) && len(result.Items) < page.Limit; i++ {
		favorite := owned[i]
		result.Items = append(result.Items, &favorite)
	}
	return result, nil
}

func (r *Repository) Exists(_ context.Context, userID uuid.UUID, gifID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.favorites[favoriteKey{userID: userID, gifID: gifID}]
	return ok, nil
}
