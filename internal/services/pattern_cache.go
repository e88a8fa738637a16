package services

import (
	"errors"
	"sync"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

var ErrPatternCacheUserMismatch = errors.New("pattern cache belongs to a different user")

// PatternCache holds one user's payee patterns and payees for the duration of
// a single resolution pass. Create one per request and drop it afterwards.
type PatternCache struct {
	userID uuid.UUID

	mu       sync.Mutex
	loaded   bool
	patterns []models.PayeeMatchingPattern
	payees   []models.Payee
}

func NewPatternCache(userID uuid.UUID) *PatternCache {
	return &PatternCache{userID: userID}
}

func (c *PatternCache) UserID() uuid.UUID {
	return c.userID
}

// load fills the cache on first use. fetch is only called once.
func (c *PatternCache) load(fetch func() ([]models.PayeeMatchingPattern, []models.Payee, error)) ([]models.PayeeMatchingPattern, []models.Payee, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		patterns, payees, err := fetch()
		if err != nil {
			return nil, nil, err
		}
		c.patterns = patterns
		c.payees = payees
		c.loaded = true
	}
	return c.patterns, c.payees, nil
}

// AddPayee makes a payee created mid-pass visible to later lookups.
func (c *PatternCache) AddPayee(payee models.Payee) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return
	}
	for _, p := range c.payees {
		if p.ID == payee.ID {
			return
		}
	}
	c.payees = append(c.payees, payee)
}
