package codec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardkeeper/internal/card"
	"github.com/arcanaland/cardkeeper/internal/player"
)

func newPlayer(t *testing.T, key, name string, years ...int) *player.Player {
	t.Helper()
	p, err := player.New(key, name)
	require.NoError(t, err)
	for i, y := range years {
		c, err := card.New(fmt.Sprintf("Card %d", i+1), "Expos", y)
		require.NoError(t, err)
		p.AddCard(c)
	}
	return p
}

func TestEncode(t *testing.T) {
	p := newPlayer(t, "k1", "Bob", 2001, 1998)
	assert.Equal(t, `"k1";"Bob";"2";"Card 2";"Expos";"1998";"Card 1";"Expos";"2001";`, Encode(p))

	empty := newPlayer(t, "k2", "Amy")
	assert.Equal(t, `"k2";"Amy";"0";`, Encode(empty))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, years := range [][]int{nil, {1998}, {2005, 1998, 2001}} {
		t.Run(fmt.Sprintf("%d cards", len(years)), func(t *testing.T) {
			p := newPlayer(t, "k1", "Bob", years...)
			decoded, err := Decode(Encode(p))
			require.NoError(t, err)
			assert.True(t, p.Equal(decoded))
		})
	}
}

func TestDecodeToleratesHandEdits(t *testing.T) {
	p, err := Decode(` "k1" ; Bob ;2; "Rookie";"Expos" ; 2001 ;"Debut";"Expos";"1998"`)
	require.NoError(t, err)

	assert.Equal(t, "k1", p.Key())
	assert.Equal(t, "Bob", p.Name())
	require.Equal(t, 2, p.CardCount())
	cards := p.Cards()
	assert.Equal(t, "Debut", cards[0].Title())
	assert.Equal(t, 1998, cards[0].Year())
	assert.Equal(t, "Rookie", cards[1].Title())
	assert.Equal(t, 2001, cards[1].Year())
}

func TestDecodeIgnoresExtraFields(t *testing.T) {
	p, err := Decode(`"k1";"Bob";"0";"leftover";`)
	require.NoError(t, err)
	assert.Zero(t, p.CardCount())
}

func TestDecodeMalformed(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"too few header fields", `"k1";"Bob"`},
		{"missing cards", `"k1";"Bob";"2"`},
		{"card count not a number", `"k1";"Bob";"two";`},
		{"negative card count", `"k1";"Bob";"-1";`},
		{"card count overflows field math", `"k1";"Bob";"3074457345618258603"`},
		{"card count larger than fields", `"k1";"Bob";"2";"Rookie";"Expos";"1998";`},
		{"year not a number", `"k1";"Bob";"1";"Rookie";"Expos";"soon";`},
		{"negative year", `"k1";"Bob";"1";"Rookie";"Expos";"-1998";`},
		{"empty key", `"";"Bob";"0";`},
		{"empty name", `"k1";"";"0";`},
		{"empty title", `"k1";"Bob";"1";"";"Expos";"1998";`},
		{"empty team", `"k1";"Bob";"1";"Rookie";"  ";"1998";`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { _, err = Decode(tc.line) })
			var merr *MalformedRecordError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tc.line, merr.Line)
		})
	}
}

func TestDecodeWrapsValidationError(t *testing.T) {
	_, err := Decode(`"k1";"Bob";"1";"";"Expos";"1998";`)
	var verr *card.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "Bob", Clean(`  "Bob" `))
	assert.Equal(t, "Bob", Clean(`Bob`))
	assert.Equal(t, "", Clean(`""`))
}
