package harness

import (
	"context"
	"fmt"

	"github.com/tessera-io/tessera/internal/node"
	"github.com/tessera-io/tessera/internal/serializer"
	"github.com/tessera-io/tessera/internal/transport"
)

// RunResult captures one scenario execution end to end.
type RunResult struct {
	// Original is the object tree built from the scenario.
	Original *node.Object

	// Decomposed is the decomposition outcome.
	Decomposed *serializer.Result

	// Store is the in-memory transport the run wrote to and read from.
	Store *transport.Memory

	// Rebuilt is the tree recomposed from the root record through the
	// store.
	Rebuilt *node.Object
}

// Run builds the scenario's tree, decomposes it into a fresh in-memory
// transport, and recomposes it back through the same transport.
func Run(ctx context.Context, scenario *Scenario) (*RunResult, error) {
	original, err := scenario.BuildTree()
	if err != nil {
		return nil, err
	}

	store := transport.NewMemory()
	decomposer := serializer.NewDecomposer([]transport.WriteSink{store}, nil)
	decomposed, err := decomposer.Decompose(ctx, original)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: decompose: %w", scenario.Name, err)
	}

	rebuilt, err := serializer.NewRecomposer(store).Recompose(ctx, decomposed.Encoded)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: recompose: %w", scenario.Name, err)
	}

	return &RunResult{
		Original:   original,
		Decomposed: decomposed,
		Store:      store,
		Rebuilt:    rebuilt,
	}, nil
}

// Check validates the scenario's expectations against a run result.
// Returns every violation rather than stopping at the first.
func (s *Scenario) Check(result *RunResult) []error {
	var errs []error

	if got := result.Store.Len(); got != s.Expect.Saved {
		errs = append(errs, fmt.Errorf("saved records: got %d, want %d", got, s.Expect.Saved))
	}
	if got := result.Rebuilt.TotalChildren(); got != s.Expect.TotalChildren {
		errs = append(errs, fmt.Errorf("total children hint: got %d, want %d", got, s.Expect.TotalChildren))
	}
	if s.Expect.RootID != "" && result.Decomposed.ID != s.Expect.RootID {
		errs = append(errs, fmt.Errorf("root id: got %s, want %s", result.Decomposed.ID, s.Expect.RootID))
	}
	if err := Equivalent(result.Original, result.Rebuilt); err != nil {
		errs = append(errs, fmt.Errorf("round trip: %w", err))
	}

	return errs
}
