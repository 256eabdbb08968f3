package usecase

import (
	"fmt"
	"regexp"
)

// ContentParser extracts a candidate order id from free-text bank transfer
// descriptions. Banks mangle descriptions freely (case folding, surrounding
// text, dropped prefixes), so the grammar is deliberately tolerant: an
// optional vendor prefix, the order marker token, then the id itself. The
// marker is matched case-insensitively; the captured id keeps its case.
type ContentParser struct {
	re *regexp.Regexp
}

// NewContentParser compiles the parser for the given vendor prefix and order
// marker. The prefix may be empty, the marker may not.
func NewContentParser(vendorPrefix, orderMarker string) (*ContentParser, error) {
	if orderMarker == "" {
		return nil, fmt.Errorf("order marker must not be empty")
	}

	pattern := `(?i)`
	if vendorPrefix != "" {
		pattern += `(?:` + regexp.QuoteMeta(vendorPrefix) + `\s+)?`
	}
	pattern += regexp.QuoteMeta(orderMarker) + `([0-9A-Za-z]+)`

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile content pattern: %w", err)
	}
	return &ContentParser{re: re}, nil
}

// ExtractOrderID returns the leftmost well-formed candidate and true, or
// false when the text carries no candidate. Malformed or empty text is a
// normal outcome, not an error.
func (p *ContentParser) ExtractOrderID(content string) (string, bool) {
	match := p.re.FindStringSubmatch(content)
	if match == nil || match[1] == "" {
		return "", false
	}
	return match[1], true
}
