package service

import (
	"math/rand/v2"
	"sync"

	"movie-wallet/internal/core/domain"
)

// CatalogServiceImpl implements ports.CatalogService over the fixed demo titles.
type CatalogServiceImpl struct {
	mu     sync.RWMutex
	movies []domain.Movie
	rng    *rand.Rand
}

// NewCatalogService creates a catalog in its default order. rng may be nil.
func NewCatalogService(rng *rand.Rand) *CatalogServiceImpl {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &CatalogServiceImpl{movies: domain.DefaultCatalog(), rng: rng}
}

// List returns the catalog in its current order.
func (c *CatalogServiceImpl) List() []domain.Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// Shuffle reorders the wall.
func (c *CatalogServiceImpl) Shuffle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rng.Shuffle(len(c.movies), func(i, j int) {
		c.movies[i], c.movies[j] = c.movies[j], c.movies[i]
	})
}

// Find looks a movie up by id.
func (c *CatalogServiceImpl) Find(id string) (domain.Movie, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.movies {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Movie{}, false
}
