package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// PersonalInfo is the contact block of the portfolio owner.
type PersonalInfo struct {
	Name     string `json:"name" yaml:"name" db:"name" validate:"required"`
	Location string `json:"location" yaml:"location" db:"location"`
	Phone    string `json:"phone" yaml:"phone" db:"phone"`
	Email    string `json:"email" yaml:"email" db:"email" validate:"omitempty,email"`
	LinkedIn string `json:"linkedin" yaml:"linkedin" db:"linkedin"`
	GitHub   string `json:"github" yaml:"github" db:"github"`
}

// SkillGroup is one category of skills with its items in display order.
type SkillGroup struct {
	Category string   `json:"category" yaml:"category" validate:"required"`
	Items    []string `json:"items" yaml:"items"`
}

// Skills is an ordered mapping from category to skill names. On the wire it
// is a JSON/YAML object; key order is preserved when decoding.
type Skills []SkillGroup

// ExperienceEntry is a single position in the work history.
type ExperienceEntry struct {
	Company    string   `json:"company" yaml:"company" validate:"required"`
	Role       string   `json:"role" yaml:"role"`
	Period     string   `json:"period" yaml:"period"`
	Location   string   `json:"location" yaml:"location"`
	Highlights []string `json:"highlights" yaml:"highlights"`
}

// ProjectEntry is a showcased project.
type ProjectEntry struct {
	Name       string   `json:"name" yaml:"name" validate:"required"`
	Tech       []string `json:"tech" yaml:"tech"`
	Highlights []string `json:"highlights" yaml:"highlights"`
}

// Education is the single education record.
type Education struct {
	Degree      string `json:"degree" yaml:"degree" db:"degree"`
	Institution string `json:"institution" yaml:"institution" db:"institution"`
	Location    string `json:"location" yaml:"location" db:"location"`
	Period      string `json:"period" yaml:"period" db:"period"`
}

// PortfolioData is the immutable snapshot loaded once per session. A nil
// *PortfolioData means the snapshot has not been loaded (yet).
type PortfolioData struct {
	Personal       PersonalInfo      `json:"personal" yaml:"personal"`
	Summary        string            `json:"summary" yaml:"summary"`
	Skills         Skills            `json:"skills" yaml:"skills" validate:"dive"`
	Experience     []ExperienceEntry `json:"experience" yaml:"experience" validate:"dive"`
	Projects       []ProjectEntry    `json:"projects" yaml:"projects" validate:"dive"`
	Education      Education         `json:"education" yaml:"education"`
	Certifications []string          `json:"certifications" yaml:"certifications"`
}

var validate = validator.New()

// Validate checks the structural requirements of a loaded snapshot.
func (p *PortfolioData) Validate() error {
	if p == nil {
		return fmt.Errorf("portfolio data is nil")
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid portfolio data: %w", err)
	}
	return nil
}

// MarshalJSON encodes the groups as a JSON object in group order.
func (s Skills) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Category)
		if err != nil {
			return nil, err
		}
		items := g.Items
		if items == nil {
			items = []string{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the document.
func (s *Skills) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decoding skills: %w", err)
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decoding skills: expected object, got %v", tok)
	}

	var groups Skills
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decoding skills key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decoding skills: unexpected key %v", keyTok)
		}
		var items []string
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("decoding skills %q: %w", key, err)
		}
		groups = append(groups, SkillGroup{Category: key, Items: items})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decoding skills: %w", err)
	}

	*s = groups
	return nil
}

// UnmarshalYAML decodes a YAML mapping, keeping the key order of the document.
func (s *Skills) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("decoding skills: expected mapping at line %d", node.Line)
	}

	groups := make(Skills, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var items []string
		if err := node.Content[i+1].Decode(&items); err != nil {
			return fmt.Errorf("decoding skills %q: %w", node.Content[i].Value, err)
		}
		groups = append(groups, SkillGroup{
			Category: node.Content[i].Value,
			Items:    items,
		})
	}

	*s = groups
	return nil
}

// MarshalYAML encodes the groups as an ordered YAML mapping.
func (s Skills) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, g := range s {
		var val yaml.Node
		if err := val.Encode(g.Items); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: g.Category},
			&val,
		)
	}
	return node, nil
}
