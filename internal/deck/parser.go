package deck

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidFormat   = errors.New("failed to parse deck entry format")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrEmptyCardName   = errors.New("empty card name")
)

type ErrorCode string

const (
	CodeInvalidFormat   ErrorCode = "format_error"
	CodeInvalidQuantity ErrorCode = "invalid_quantity"
	CodeEmptyCardName   ErrorCode = "empty_card_name"
)

// CodeOf returns the reason code for one of the line parser errors.
func CodeOf(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		return CodeInvalidQuantity
	case errors.Is(err, ErrEmptyCardName):
		return CodeEmptyCardName
	default:
		return CodeInvalidFormat
	}
}

// Unicode White_Space, same set as strings.TrimSpace uses.
const (
	ws    = `[\t\n\v\f\r\x{85}\p{Z}]`
	nonWs = `[^\t\n\v\f\r\x{85}\p{Z}]`
)

// lineRegex matches "<quantity>x <name>[ (<set>) <number>][ [<category>, ...]]" over the whole line.
// Group 1: quantity, group 2: name, group 3: set code, group 4: collector number, group 5: categories.
var lineRegex = regexp.MustCompile(
	`^(\p{Nd}+)x` + ws + `+(.+?)` +
		`(?:` + ws + `+\(([^)]+)\)` + ws + `+(` + nonWs + `+))?` +
		`(?:` + ws + `+\[([^\]]+)\])?$`,
)

// ParsedLine The typed fields of one deck list line, not yet resolved against the catalog.
type ParsedLine struct {
	Quantity        int
	Name            string
	SetCode         string
	CollectorNumber string
	Categories      []string
}

// IsSkipped reports whether a line is ignored entirely: blank or a "#" or "//" comment.
func IsSkipped(line string) bool {
	l := strings.TrimSpace(line)

	return l == "" || strings.HasPrefix(l, "#") || strings.HasPrefix(l, "//")
}

// ParseLine parses a single, non-skipped deck list line.
// The returned error is one of ErrInvalidFormat, ErrInvalidQuantity or ErrEmptyCardName.
func ParseLine(line string) (ParsedLine, error) {
	line = strings.TrimSpace(line)

	m := lineRegex.FindStringSubmatch(line)
	if m == nil {
		return ParsedLine{}, ErrInvalidFormat
	}

	q, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil || q == 0 {
		return ParsedLine{}, ErrInvalidQuantity
	}

	name := strings.TrimSpace(m[2])
	if name == "" {
		return ParsedLine{}, ErrEmptyCardName
	}

	return ParsedLine{
		Quantity:        int(q),
		Name:            name,
		SetCode:         m[3],
		CollectorNumber: m[4],
		Categories:      splitCategories(m[5]),
	}, nil
}

// splitCategories keeps empty pieces, "A,,B" becomes ["A", "", "B"].
func splitCategories(raw string) []string {
	if raw == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	categories := make([]string, 0, len(parts))
	for _, p := range parts {
		categories = append(categories, strings.TrimSpace(p))
	}

	return categories
}
