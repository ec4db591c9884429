package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nhle/portfolio-term/internal/model"
)

// FileSource reads the snapshot from a YAML or JSON document. The format is
// chosen by extension; anything but .json is parsed as YAML.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and decodes the document.
func (s *FileSource) Load(ctx context.Context) (*model.PortfolioData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(s.path)
}

// ReadFile decodes the portfolio document at path.
func ReadFile(path string) (*model.PortfolioData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var data model.PortfolioData
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(raw, &data)
	} else {
		err = yaml.Unmarshal(raw, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &data, nil
}
