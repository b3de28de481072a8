package domain

// Store is a physical retail location.
type Store struct {
	ID      string `json:"id" yaml:"id" validate:"required"`
	Name    string `json:"name" yaml:"name" validate:"required"`
	Address string `json:"address" yaml:"address"`
}
