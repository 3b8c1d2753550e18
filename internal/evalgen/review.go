package evalgen

import (
	"context"
	"fmt"
)

// Describable is anything that can be shown to a reviewer.
type Describable interface {
	JSON() string
}

// Decider makes the keep/discard call for a described item.
type Decider interface {
	Decide(ctx context.Context, description string) (bool, error)
}

// Review keeps the items the decider accepts, in input order.
func Review[T Describable](ctx context.Context, d Decider, items []T) ([]T, error) {
	kept := make([]T, 0, len(items))
	for i, item := range items {
		keep, err := d.Decide(ctx, item.JSON())
		if err != nil {
			return nil, fmt.Errorf("evalgen: review item %d: %w", i+1, err)
		}
		if keep {
			kept = append(kept, item)
		}
	}
	return kept, nil
}
