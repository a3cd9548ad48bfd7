// Package export writes the inventory to destinations other than the session
// storage file.
package export

import (
	"fmt"
	"strings"

	"github.com/arcanaland/cardkeeper/internal/store"
)

// Format is an export destination format
type Format string

const (
	FormatText   Format = "txt"
	FormatSQLite Format = "sqlite"
)

// ParseFormat validates a format name given on the command line.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatSQLite:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported export format '%s' (supported: txt, sqlite)", name)
	}
}

// Text writes the storage representation of s to path, replacing any
// previous content.
func Text(s *store.Store, path string) error {
	return s.Save(store.File(path))
}
