package options

import (
	"errors"
	"fmt"
	"strings"
)

// Format selects how a decoded reading is written to stdout.
type Format string

// Output formats accepted by --format.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for output formats other than text and json.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates the --format flag value. An empty value selects text.
func ParseFormat(input string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(input))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w %q (want %s or %s)", ErrUnknownFormat, input, FormatText, FormatJSON)
	}
}
