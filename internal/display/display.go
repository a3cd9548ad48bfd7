package display

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/arcanaland/cardkeeper/internal/card"
	"github.com/arcanaland/cardkeeper/internal/player"
)

const defaultWidth = 80

// Printer renders players on a console
type Printer struct {
	w        io.Writer
	label    *colorize.Color
	value    *colorize.Color
	swatches bool
	width    int
}

// NewPrinter creates a printer writing to w. Colors and team swatches are only
// emitted when useColor is set.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	label := colorize.New(colorize.FgCyan)
	value := colorize.New(colorize.FgHiWhite)
	if useColor {
		label.EnableColor()
		value.EnableColor()
	} else {
		label.DisableColor()
		value.DisableColor()
	}

	return &Printer{
		w:        w,
		label:    label,
		value:    value,
		swatches: useColor,
		width:    terminalWidth(w),
	}
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w if it is a terminal
func terminalWidth(w io.Writer) int {
	if !IsTerminal(w) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(w.(*os.File).Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// PlayerDetails prints the block shown when a single player is looked up.
func (p *Printer) PlayerDetails(pl *player.Player) {
	p.line("Voici l'information sauvegardé de: ", pl.Name())
	p.cards(pl)
}

// PlayerEntry prints one player of the full listing.
func (p *Printer) PlayerEntry(pl *player.Player) {
	p.line("Joueur : ", pl.Key())
	p.line("Voici l'information sauvegardé de : ", pl.Name())
	p.cards(pl)
	fmt.Fprint(p.w, "\n\n")
}

func (p *Printer) cards(pl *player.Player) {
	fmt.Fprintf(p.w, "Le joueur a %d cartes enregistrées\n", pl.CardCount())
	for i, c := range pl.Cards() {
		fmt.Fprintf(p.w, "Carte %d :\n", i+1)
		p.title(c)
		fmt.Fprintln(p.w, p.label.Sprint("Équipe : ")+p.value.Sprint(c.Team())+p.teamSwatch(c.Team()))
		p.line("Année de parution :  ", fmt.Sprint(c.Year()))
	}
}

func (p *Printer) line(label, value string) {
	fmt.Fprintln(p.w, p.label.Sprint(label)+p.value.Sprint(value))
}

// title prints the card title wrapped to the terminal width, continuation
// lines aligned under the first one.
func (p *Printer) title(c card.Card) {
	const label = "Titre : "
	indent := strings.Repeat(" ", len([]rune(label)))
	for i, l := range wrapText(c.Title(), p.width-len(indent)) {
		if i == 0 {
			p.line(label, l)
			continue
		}
		fmt.Fprintln(p.w, indent+p.value.Sprint(l))
	}
}

// teamSwatch returns a two-cell color block whose hue is derived from the team
// name, so cards from the same team share a color.
func (p *Printer) teamSwatch(team string) string {
	if !p.swatches {
		return ""
	}
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(team)))
	hue := float64(h.Sum32() % 360)
	r, g, b := colorful.Hsv(hue, 0.65, 0.9).RGB255()
	return fmt.Sprintf(" \x1b[48;2;%d;%d;%dm  \x1b[0m", r, g, b)
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	// Ensure width is reasonable
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{text}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}
