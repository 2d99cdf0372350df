package scenario

import (
	"context"
	"errors"
	"time"

	"github.com/RaxHax/fratak/internal/calculations"
)

// ErrNotFound is returned when no scenario exists for the given ID.
var ErrNotFound = errors.New("scenario not found")

// Scenario is a named, persisted loan configuration. Only numeric and flag
// fields are stored, so a round-tripped scenario reproduces the exact same
// schedule as the original configuration.
type Scenario struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Config    calculations.LoanConfig `json:"config"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// Store persists named scenarios.
type Store interface {
	Save(ctx context.Context, s Scenario) error
	Get(ctx context.Context, id string) (Scenario, error)
	List(ctx context.Context) ([]Scenario, error)
	Delete(ctx context.Context, id string) error
}
