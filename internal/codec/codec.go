// Package codec converts players to and from the storage line format.
//
// A line holds the player key, name and card count followed by title, team
// and year for each card. Every field is wrapped in double quotes and
// followed by a semicolon:
//
//	"k1";"Bob";"1";"Rookie";"Expos";"1998";
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arcanaland/cardkeeper/internal/card"
	"github.com/arcanaland/cardkeeper/internal/player"
)

const (
	// Separator ends every field of a line
	Separator = ";"
	quote     = `"`

	headerFields = 3
	cardFields   = 3
)

// MalformedRecordError reports a storage line that does not fit the schema.
type MalformedRecordError struct {
	Line string
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %q: %v", e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Encode serializes a player and its cards, in their current order, to one line
// without the trailing newline.
func Encode(p *player.Player) string {
	var b strings.Builder
	writeField(&b, p.Key())
	writeField(&b, p.Name())
	writeField(&b, strconv.Itoa(p.CardCount()))
	for _, c := range p.Cards() {
		writeField(&b, c.Title())
		writeField(&b, c.Team())
		writeField(&b, strconv.Itoa(c.Year()))
	}
	return b.String()
}

func writeField(b *strings.Builder, value string) {
	b.WriteString(quote)
	b.WriteString(value)
	b.WriteString(quote)
	b.WriteString(Separator)
}

// Fields splits a line into its raw, untrimmed fields.
func Fields(line string) []string {
	return strings.Split(line, Separator)
}

// Clean strips every double quote and the surrounding whitespace from a raw
// field.
func Clean(field string) string {
	return strings.TrimSpace(strings.ReplaceAll(field, quote, ""))
}

// Decode parses one non-empty line. Fields past the last card are ignored.
func Decode(line string) (*player.Player, error) {
	fields := Fields(line)
	malformed := func(err error) error {
		return &MalformedRecordError{Line: line, Err: err}
	}

	if len(fields) < headerFields {
		return nil, malformed(fmt.Errorf("expected at least %d fields, got %d", headerFields, len(fields)))
	}

	count, err := parseCount("card_count", fields[2])
	if err != nil {
		return nil, malformed(err)
	}
	// Bound the count by the fields present before multiplying so a huge
	// count cannot overflow.
	if count > (len(fields)-headerFields)/cardFields {
		return nil, malformed(fmt.Errorf("%d cards need %d fields per card, got %d fields", count, cardFields, len(fields)))
	}

	p, err := player.New(Clean(fields[0]), Clean(fields[1]))
	if err != nil {
		return nil, malformed(err)
	}

	for i := 0; i < count; i++ {
		base := headerFields + cardFields*i
		year, err := parseCount("year", fields[base+2])
		if err != nil {
			return nil, malformed(fmt.Errorf("card %d: %w", i+1, err))
		}
		c, err := card.New(Clean(fields[base]), Clean(fields[base+1]), year)
		if err != nil {
			return nil, malformed(fmt.Errorf("card %d: %w", i+1, err))
		}
		p.AddCard(c)
	}

	return p, nil
}

// parseCount reads a non-negative integer field
func parseCount(name, raw string) (int, error) {
	value := Clean(raw)
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer", name, value)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s %d is negative", name, n)
	}
	return n, nil
}
