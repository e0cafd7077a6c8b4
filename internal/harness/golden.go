package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares the root record's
// canonical encoding against a golden file stored as
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Because the encoding is canonical, the golden bytes pin both the wire
// format and the content hash embedded in it.
func RunWithGolden(t *testing.T, scenario *Scenario) (*RunResult, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, result.Decomposed.Encoded)

	return result, nil
}
