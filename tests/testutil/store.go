package testutil

import (
	"testing"

	"github.com/nhle/portfolio-term/internal/portfolio"
)

// NewTestStore creates an in-memory SQLite portfolio store with all
// migrations applied. It automatically closes the store when the test
// completes.
func NewTestStore(t *testing.T) *portfolio.SQLStore {
	t.Helper()

	s, err := portfolio.OpenStore(portfolio.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
