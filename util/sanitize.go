package util

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var xssPolicy = bluemonday.StrictPolicy()

// XSSSanitize strips HTML from free-text input and returns the unescaped text
func XSSSanitize(val string) string {
	return html.UnescapeString(xssPolicy.Sanitize(val))
}
