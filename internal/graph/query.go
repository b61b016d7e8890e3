package graph

import (
	"net/url"
	"strings"
)

// quote renders s as an OData string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// eq builds an OData equality filter.
func eq(field, value string) string {
	return field + " eq " + quote(value)
}

// encodeQuery encodes values with spaces as %20, which Graph requires inside
// $filter expressions.
func encodeQuery(values url.Values) string {
	return strings.ReplaceAll(values.Encode(), "+", "%20")
}
