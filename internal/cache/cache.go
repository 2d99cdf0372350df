package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/RaxHax/fratak/internal/calculations"
)

// Cache stores computed schedule results keyed by configuration digest.
// Implementations must treat every operation as best-effort: a miss or a
// failed Set never blocks a calculation.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// ConfigKey derives a stable cache key from the canonical JSON encoding of
// a loan configuration.
func ConfigKey(cfg calculations.LoanConfig) (string, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal loan config: %w", err)
	}
	return fmt.Sprintf("fratak:schedule:%x", xxhash.Sum64(raw)), nil
}
