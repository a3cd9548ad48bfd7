package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardkeeper/internal/codec"
	"github.com/arcanaland/cardkeeper/internal/export"
	"github.com/arcanaland/cardkeeper/internal/store"
)

type harness struct {
	path   string
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newHarness(t *testing.T, content string) *harness {
	t.Helper()
	h := &harness{path: filepath.Join(t.TempDir(), "inventory.txt")}
	if content != "" {
		require.NoError(t, os.WriteFile(h.path, []byte(content), 0644))
	}
	return h
}

func (h *harness) open(t *testing.T, input ...string) *Session {
	t.Helper()
	s, err := Open(Options{
		StoragePath:     h.path,
		CreateIfMissing: true,
		In:              strings.NewReader(strings.Join(input, "\n") + "\n"),
		Out:             &h.out,
		ErrOut:          &h.errOut,
	})
	require.NoError(t, err)
	return s
}

func (h *harness) stored(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(h.path)
	require.NoError(t, err)
	return string(data)
}

func TestOpenCreatesMissingStorage(t *testing.T) {
	h := newHarness(t, "")
	s := h.open(t)

	assert.Zero(t, s.Store().Len())
	_, err := os.Stat(h.path)
	assert.NoError(t, err)
}

func TestOpenMissingStorageWithoutCreate(t *testing.T) {
	_, err := Open(Options{StoragePath: filepath.Join(t.TempDir(), "nope.txt")})
	var rerr *store.StorageReadError
	assert.ErrorAs(t, err, &rerr)
}

func TestOpenRejectsEmptyStorageName(t *testing.T) {
	_, err := Open(Options{})
	assert.Error(t, err)
}

func TestOpenMalformedStorage(t *testing.T) {
	h := newHarness(t, `"k1";"Bob";"2"`+"\n")
	_, err := Open(Options{StoragePath: h.path})

	var rerr *store.StorageReadError
	require.ErrorAs(t, err, &rerr)
	var merr *codec.MalformedRecordError
	assert.ErrorAs(t, err, &merr)
}

func TestAddPlayerThenExit(t *testing.T) {
	h := newHarness(t, "")
	s := h.open(t,
		"1", "k1", "Bob", "2",
		"Rookie", "Expos", "2001",
		"Debut", "Expos", "1998",
		"",
		"0",
	)
	require.NoError(t, s.Run())

	assert.Equal(t, `"k1";"Bob";"2";"Debut";"Expos";"1998";"Rookie";"Expos";"2001";`+"\n", h.stored(t))
	assert.Contains(t, h.out.String(), "Entrez l’équipe de la carte 2 :")
	assert.Contains(t, h.out.String(), "Entrez l’année de parution de la carte 2 :")
	assert.Contains(t, h.out.String(), "L'enregistrement du joueur a réussi.")
	assert.Contains(t, h.out.String(), "Le fichier inventory.txt a été créé avec succès.")
	assert.Contains(t, h.out.String(), "Merci d'avoir utilisé le système de gestion d'inventaire de cartes.")
}

func TestEndOfInputSaves(t *testing.T) {
	h := newHarness(t, "")
	s, err := Open(Options{
		StoragePath:     h.path,
		CreateIfMissing: true,
		In:              strings.NewReader("1\nk1\nBob\n0"),
		Out:             &h.out,
	})
	require.NoError(t, err)
	require.NoError(t, s.Run())

	assert.Equal(t, `"k1";"Bob";"0";`+"\n", h.stored(t))
}

func TestInvalidMenuChoice(t *testing.T) {
	h := newHarness(t, "")
	s := h.open(t, "abc", "", "0")
	require.NoError(t, s.Run())

	assert.Contains(t, h.errOut.String(), "Invalid Format!")
}

func TestAddPlayerDuplicateKey(t *testing.T) {
	h := newHarness(t, `"k1";"Bob";"0";`+"\n")
	s := h.open(t, "1", "k1", "Other", "", "0")
	require.NoError(t, s.Run())

	assert.Contains(t, h.errOut.String(), "player with key 'k1' already exists")
	assert.Equal(t, `"k1";"Bob";"0";`+"\n", h.stored(t))
}

func TestAddCardRejectsNegativeYear(t *testing.T) {
	h := newHarness(t, "")
	s := h.open(t, "1", "k1", "Bob", "1", "Rookie", "Expos", "-4", "", "0")
	require.NoError(t, s.Run())

	assert.Contains(t, h.errOut.String(), "invalid parameter 'year'")
	assert.Equal(t, `"k1";"Bob";"0";`+"\n", h.stored(t))
}

func TestShowPlayer(t *testing.T) {
	h := newHarness(t, `"k1";"Bob";"1";"Rookie";"Expos";"2001";`+"\n")
	s := h.open(t, "2", "k1", "", "2", "nobody", "", "0")
	require.NoError(t, s.Run())

	out := h.out.String()
	assert.Contains(t, out, "Voici l'information sauvegardé de: Bob")
	assert.Contains(t, out, "Le joueur a 1 cartes enregistrées")
	assert.Contains(t, out, "Titre : Rookie")
	assert.Contains(t, out, "Équipe : Expos")
	assert.Contains(t, out, "Année de parution :  2001")
	assert.Contains(t, out, "Le joueur n'existe pas")
}

func TestUpdatePlayer(t *testing.T) {
	h := newHarness(t, `"k1";"Zed";"1";"Rookie";"Expos";"2001";`+"\n"+`"k2";"Mo";"0";`+"\n")
	s := h.open(t, "3", "k1", "Abe", "1", "Debut", "Expos", "1998", "", "0")
	require.NoError(t, s.Run())

	assert.Equal(t,
		`"k1";"Abe";"2";"Debut";"Expos";"1998";"Rookie";"Expos";"2001";`+"\n"+`"k2";"Mo";"0";`+"\n",
		h.stored(t))
}

func TestDeletePlayer(t *testing.T) {
	h := newHarness(t, `"k1";"Bob";"0";`+"\n"+`"k2";"Amy";"0";`+"\n")
	s := h.open(t,
		"4", "k1", "N", "",
		"4", "k1", "o", "",
		"0",
	)
	require.NoError(t, s.Run())

	out := h.out.String()
	assert.Contains(t, out, "L'information du joueur Bob n'a pas été efface du système.")
	assert.Contains(t, out, "L'information du joueur Bob a été efface du système.")
	assert.Equal(t, `"k2";"Amy";"0";`+"\n", h.stored(t))
}

func TestListPlayersOnScreen(t *testing.T) {
	h := newHarness(t, `"k1";"Zed";"0";`+"\n"+`"k2";"Amy";"0";`+"\n")
	s := h.open(t, "5", "E", "", "0")
	require.NoError(t, s.Run())

	out := h.out.String()
	amy := strings.Index(out, "Joueur : k2")
	zed := strings.Index(out, "Joueur : k1")
	require.NotEqual(t, -1, amy)
	require.NotEqual(t, -1, zed)
	assert.Less(t, amy, zed)
}

func TestListPlayersToFile(t *testing.T) {
	h := newHarness(t, `"k1";"Zed";"0";`+"\n")
	dest := filepath.Join(t.TempDir(), "listing.txt")
	s := h.open(t, "5", "F", dest, "", "0")
	require.NoError(t, s.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, `"k1";"Zed";"0";`+"\n", string(data))
	assert.Contains(t, h.out.String(), "Liste des joueurs à l'endroit suivant : "+dest)
}

func TestListPlayersInvalidChoice(t *testing.T) {
	h := newHarness(t, "")
	s := h.open(t, "5", "X", "", "0")
	require.NoError(t, s.Run())

	assert.Contains(t, h.out.String(), "Choix invalide, veuillez entrée E ou F")
}

func TestSaveOption(t *testing.T) {
	h := newHarness(t, "")
	s := h.open(t, "1", "k1", "Bob", "0", "", "6")

	// Input ends right after the save option, which also exits and saves.
	require.NoError(t, s.Run())
	assert.Equal(t, `"k1";"Bob";"0";`+"\n", h.stored(t))
	assert.Equal(t, 2, strings.Count(h.out.String(), "a été créé avec succès."))
}

func TestExportSQLite(t *testing.T) {
	h := newHarness(t, `"k1";"Zed";"1";"Rookie";"Expos";"2001";`+"\n")
	s := h.open(t)

	dest := filepath.Join(t.TempDir(), "inventory.db")
	require.NoError(t, s.Export(context.Background(), dest, export.FormatSQLite))
	_, err := os.Stat(dest)
	assert.NoError(t, err)
}
