// Package table converts command results into rows for table output.
package table

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// orDash renders empty cells as "-".
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
