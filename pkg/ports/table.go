package ports

import "context"

// NumberTable is a named table of numeric entries shared with an external
// service, such as the vision camera configuration table.
type NumberTable interface {
	Name() string

	// SetNumber writes a value for key.
	SetNumber(ctx context.Context, key string, value float64) error

	// Number reads the value for key.
	// Returns domain.ErrEntryNotFound if the key was never written.
	Number(ctx context.Context, key string) (float64, error)
}
