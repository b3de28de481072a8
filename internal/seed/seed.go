// Package seed loads the demo directory and reference data.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/shift-swap-service/internal/domain"
)

//go:embed demo.yaml
var demoYAML []byte

// Data is the content of a seed file.
type Data struct {
	Stores []domain.Store `yaml:"stores" validate:"dive"`
	Users  []domain.User  `yaml:"users" validate:"dive"`
	Shifts []domain.Shift `yaml:"shifts" validate:"dive"`
}

// Load reads the seed file at path, or the embedded demo data when path is
// empty.
func Load(path string) (*Data, error) {
	raw := demoYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}
	return Parse(raw)
}

// Parse decodes and validates seed YAML.
func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Validate checks field constraints and that ids and emails are unique.
func (d *Data) Validate() error {
	if err := validator.New().Struct(d); err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}

	stores := make(map[string]struct{}, len(d.Stores))
	for _, s := range d.Stores {
		if _, dup := stores[s.ID]; dup {
			return fmt.Errorf("invalid seed: duplicate store id %q", s.ID)
		}
		stores[s.ID] = struct{}{}
	}

	ids := make(map[string]struct{}, len(d.Users))
	emails := make(map[string]struct{}, len(d.Users))
	for _, u := range d.Users {
		if _, dup := ids[u.ID]; dup {
			return fmt.Errorf("invalid seed: duplicate user id %q", u.ID)
		}
		if _, dup := emails[u.Email]; dup {
			return fmt.Errorf("invalid seed: duplicate email %q", u.Email)
		}
		ids[u.ID] = struct{}{}
		emails[u.Email] = struct{}{}
	}

	shifts := make(map[string]struct{}, len(d.Shifts))
	for _, s := range d.Shifts {
		if _, dup := shifts[s.ID]; dup {
			return fmt.Errorf("invalid seed: duplicate shift id %q", s.ID)
		}
		shifts[s.ID] = struct{}{}
	}
	return nil
}

// Store returns the store with the given id.
func (d *Data) Store(id string) (domain.Store, bool) {
	for _, s := range d.Stores {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Store{}, false
}
