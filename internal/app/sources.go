package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/portfolio-term/internal/model"
	"github.com/nhle/portfolio-term/internal/portfolio"
)

// loadTimeout bounds the initial portfolio fetch.
const loadTimeout = 30 * time.Second

var errNoSource = errors.New("no portfolio source configured")

// loadFailureNotice explains a failed portfolio load on screen.
func loadFailureNotice(err error) string {
	if errors.Is(err, errNoSource) {
		return "No portfolio data source is configured. Quit and run `portfolio-term setup` to choose one."
	}
	return "Couldn't load portfolio data (" + err.Error() + "). Run `portfolio-term setup` to check the data source."
}

// portfolioLoadedMsg is sent when the portfolio fetch finishes.
type portfolioLoadedMsg struct {
	data *model.PortfolioData
	err  error
}

// loadPortfolio returns a command that fetches and validates the snapshot.
// A failure leaves the terminal in its loading state with a setup hint.
func (m *Model) loadPortfolio() tea.Cmd {
	src := m.source
	return func() tea.Msg {
		if src == nil {
			return portfolioLoadedMsg{err: errNoSource}
		}
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		data, err := portfolio.Load(ctx, src)
		return portfolioLoadedMsg{data: data, err: err}
	}
}
