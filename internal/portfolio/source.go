// Package portfolio loads the portfolio snapshot the terminal answers
// from. The snapshot can come from the backend API, a local YAML/JSON
// document or a SQL database.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nhle/portfolio-term/internal/api"
	"github.com/nhle/portfolio-term/internal/model"
)

// ErrNotFound is returned when a source holds no portfolio.
var ErrNotFound = errors.New("portfolio not found")

// Source produces a portfolio snapshot.
type Source interface {
	Load(ctx context.Context) (*model.PortfolioData, error)
}

// Load fetches a snapshot from src and validates it.
func Load(ctx context.Context, src Source) (*model.PortfolioData, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNotFound
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}

// Open builds the source selected by cfg.Data. The returned source may
// also implement io.Closer.
func Open(cfg *model.AppConfig, opts ...api.Option) (Source, error) {
	switch cfg.Data.Source {
	case "api":
		if cfg.API.BaseURL == "" {
			return nil, fmt.Errorf("data source %q needs api.base_url", cfg.Data.Source)
		}
		timeout := time.Duration(cfg.API.TimeoutSec) * time.Second
		return NewHTTPSource(api.NewClient(cfg.API.BaseURL, timeout, opts...)), nil
	case "file":
		return NewFileSource(cfg.Data.File), nil
	case "sql":
		return OpenStore(cfg.Data.Driver, cfg.Data.DSN)
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}
