package portfolio

import (
	"context"
	"fmt"

	"github.com/nhle/portfolio-term/internal/api"
	"github.com/nhle/portfolio-term/internal/model"
)

// HTTPSource fetches the snapshot from the backend's data endpoint.
type HTTPSource struct {
	client *api.Client
}

// NewHTTPSource creates a source backed by client.
func NewHTTPSource(client *api.Client) *HTTPSource {
	return &HTTPSource{client: client}
}

// Load performs GET /api/data. Any non-2xx answer is an error.
func (s *HTTPSource) Load(ctx context.Context) (*model.PortfolioData, error) {
	var data model.PortfolioData
	if err := s.client.Get(ctx, api.DataPath, &data); err != nil {
		return nil, fmt.Errorf("fetching portfolio data: %w", err)
	}
	return &data, nil
}
