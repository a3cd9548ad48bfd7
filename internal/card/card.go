package card

import (
	"cmp"
	"fmt"
	"strings"
)

// reserved holds the characters the storage format cannot carry inside a field.
const reserved = ";\"\r\n"

// ValidationError reports a field value rejected at construction or mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter '%s' because '%s'", e.Field, e.Reason)
}

// Card represents one baseball card owned by a player
type Card struct {
	title string // Card title
	team  string // Team the player was on for this card
	year  int    // Release year
}

// New creates a validated card
func New(title, team string, year int) (Card, error) {
	var c Card
	if err := c.SetTitle(title); err != nil {
		return Card{}, err
	}
	if err := c.SetTeam(team); err != nil {
		return Card{}, err
	}
	if err := c.SetYear(year); err != nil {
		return Card{}, err
	}
	return c, nil
}

func (c Card) Title() string { return c.title }
func (c Card) Team() string { return c.team }
func (c Card) Year() int { return c.year }

// SetTitle replaces the title. The card is left unchanged on error.
func (c *Card) SetTitle(title string) error {
	if err := CheckText("title", title); err != nil {
		return err
	}
	c.title = title
	return nil
}

// SetTeam replaces the team name. The card is left unchanged on error.
func (c *Card) SetTeam(team string) error {
	if err := CheckText("team", team); err != nil {
		return err
	}
	c.team = team
	return nil
}

// SetYear replaces the release year. The card is left unchanged on error.
func (c *Card) SetYear(year int) error {
	if year < 0 {
		return &ValidationError{Field: "year", Reason: "cannot set a year lower than 0"}
	}
	c.year = year
	return nil
}

// CompareByYear orders cards by ascending release year. Equal years compare as 0.
func CompareByYear(a, b Card) int {
	return cmp.Compare(a.year, b.year)
}

// CheckText validates a text field shared by cards and players: it must be
// non-empty and must not contain a storage separator, a quote or a line break.
func CheckText(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "cannot be null or empty"}
	}
	if strings.ContainsAny(value, reserved) {
		return &ValidationError{Field: field, Reason: `cannot contain ';', '"' or line breaks`}
	}
	return nil
}
