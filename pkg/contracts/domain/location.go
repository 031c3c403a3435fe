package domain

// Location is one known swim-school site from the caller's location
// registry. Code is the short scheduling code some reports use in place
// of the display name.
type Location struct {
	ID   int64  `json:"id" yaml:"id" validate:"required"`
	Name string `json:"name" yaml:"name" validate:"required"`
	Code string `json:"code,omitempty" yaml:"code"`
}
