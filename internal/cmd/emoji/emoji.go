// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols.
const (
	// Success marks configured credentials and applied changes.
	Success = "✓"

	// Error marks missing credentials and failed operations.
	Error = "✗"

	// Warning marks credentials that exist but cannot be used.
	Warning = "!"

	// Unknown represents unknown or indeterminate states.
	Unknown = "?"
)

// Change symbols.
const (
	// Add marks a reference added to the target.
	Add = "+"

	// Remove marks a reference removed from the target.
	Remove = "-"

	// Skip marks a user left unchanged.
	Skip = "="
)
