package player

import (
	"slices"

	"github.com/arcanaland/cardkeeper/internal/card"
)

// Player is a collector entry: a unique key, a display name and the cards owned.
type Player struct {
	key   string
	name  string
	cards []card.Card // kept sorted by card.CompareByYear
}

// New creates a player without cards
func New(key, name string) (*Player, error) {
	if err := card.CheckText("key", key); err != nil {
		return nil, err
	}
	p := &Player{key: key}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Player) Key() string { return p.key }
func (p *Player) Name() string { return p.name }

// SetName replaces the display name. Callers holding the player inside a
// store should go through Store.Rename so the collection order is kept.
func (p *Player) SetName(name string) error {
	if err := card.CheckText("name", name); err != nil {
		return err
	}
	p.name = name
	return nil
}

// CardCount returns the number of cards owned
func (p *Player) CardCount() int {
	return len(p.cards)
}

// Cards returns a copy of the cards in year order
func (p *Player) Cards() []card.Card {
	return slices.Clone(p.cards)
}

// AddCard adds a card and restores year order.
func (p *Player) AddCard(c card.Card) {
	p.cards = append(p.cards, c)
	slices.SortStableFunc(p.cards, card.CompareByYear)
}

// Equal reports whether both players carry the same key, name and cards.
func (p *Player) Equal(other *Player) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.key == other.key && p.name == other.name && slices.Equal(p.cards, other.cards)
}

// CompareNames is the collection's name ordering. Names are compared rune by
// rune over their shared prefix only; names that agree on that prefix compare
// as equal even when their lengths differ.
func CompareNames(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	for i := 0; i < min(len(ra), len(rb)); i++ {
		if rb[i] < ra[i] {
			return 1
		} else if rb[i] > ra[i] {
			return -1
		}
	}
	return 0
}

// CompareByName orders players with CompareNames.
func CompareByName(a, b *Player) int {
	return CompareNames(a.name, b.name)
}
