package pagemark

import "github.com/bookforge/pagemark/extract"

// Options holds configuration for an analysis pass.
type Options struct {
	// MaxPages limits analysis to the first N pages. Zero means all pages.
	MaxPages int

	// Extract configures block extraction.
	Extract extract.Config
}

// DefaultOptions returns the default analysis options.
func DefaultOptions() Options {
	return Options{
		MaxPages: 0, // all pages
		Extract:  extract.DefaultConfig(),
	}
}
