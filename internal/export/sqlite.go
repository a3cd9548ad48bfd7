package export

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/arcanaland/cardkeeper/internal/player"
)

const schema = `
DROP TABLE IF EXISTS cards;
DROP TABLE IF EXISTS players;
CREATE TABLE players (
	player_key TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	position   INTEGER NOT NULL
);
CREATE TABLE cards (
	player_key TEXT NOT NULL REFERENCES players(player_key),
	position   INTEGER NOT NULL,
	title      TEXT NOT NULL,
	team       TEXT NOT NULL,
	year       INTEGER NOT NULL,
	PRIMARY KEY (player_key, position)
);
`

// SQLite writes players and their cards into a SQLite database at path. Any
// previous export in that database is replaced in a single transaction.
func SQLite(ctx context.Context, path string, players []*player.Player) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("export path is required")
	}
	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	insertPlayer, err := tx.PrepareContext(ctx, `INSERT INTO players (player_key, name, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare player insert: %w", err)
	}
	defer insertPlayer.Close()

	insertCard, err := tx.PrepareContext(ctx, `INSERT INTO cards (player_key, position, title, team, year) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare card insert: %w", err)
	}
	defer insertCard.Close()

	for i, p := range players {
		if _, err := insertPlayer.ExecContext(ctx, p.Key(), p.Name(), i); err != nil {
			return fmt.Errorf("insert player %s: %w", p.Key(), err)
		}
		for j, c := range p.Cards() {
			if _, err := insertCard.ExecContext(ctx, p.Key(), j, c.Title(), c.Team(), c.Year()); err != nil {
				return fmt.Errorf("insert card %d of player %s: %w", j+1, p.Key(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}
