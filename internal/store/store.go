package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/arcanaland/cardkeeper/internal/codec"
	"github.com/arcanaland/cardkeeper/internal/player"
)

// Store is the in-memory collection of players, kept sorted with
// player.CompareByName.
type Store struct {
	players []*player.Player
	logger  *slog.Logger
}

// New creates an empty store. A nil logger discards everything.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{logger: logger}
}

// Len returns the number of players
func (s *Store) Len() int {
	return len(s.players)
}

// Players returns the players in collection order. The slice is a copy; the
// players are not.
func (s *Store) Players() []*player.Player {
	return slices.Clone(s.players)
}

// Load reads every non-blank line from src and adds the decoded players.
// Nothing is added unless the whole source decodes.
func (s *Store) Load(src Source) error {
	s.logger.Debug("Loading players and cards from storage.", "storage", src.Name())

	loaded, err := s.readAll(src)
	if err != nil {
		s.logger.Error("Failed to read storage.", "storage", src.Name(), "error", err)
		return &StorageReadError{Name: src.Name(), Err: err}
	}

	s.players = append(s.players, loaded...)
	s.sort()
	s.logger.Debug("Storage loaded.", "storage", src.Name(), "players", len(loaded))
	return nil
}

func (s *Store) readAll(src Source) (loaded []*player.Player, err error) {
	r, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	seen := make(map[string]bool, len(s.players))
	for _, p := range s.players {
		seen[p.Key()] = true
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.logger.Debug("Read line.", "line", line)

		p, err := codec.Decode(line)
		if err != nil {
			return nil, err
		}
		if seen[p.Key()] {
			return nil, &DuplicateKeyError{Key: p.Key()}
		}
		seen[p.Key()] = true
		loaded = append(loaded, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return loaded, nil
}

// Insert adds a player and restores name order.
func (s *Store) Insert(p *player.Player) error {
	if p == nil {
		return errors.New("player cannot be nil")
	}
	if _, err := s.FindByKey(p.Key()); err == nil {
		return &DuplicateKeyError{Key: p.Key()}
	}
	s.players = append(s.players, p)
	s.sort()
	return nil
}

// FindByKey returns the first player with the given key, or ErrNotFound.
func (s *Store) FindByKey(key string) (*player.Player, error) {
	i := s.indexOf(key)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return s.players[i], nil
}

// RemoveByKey deletes a player, keeping the order of the others.
func (s *Store) RemoveByKey(key string) error {
	i := s.indexOf(key)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	s.players = slices.Delete(s.players, i, i+1)
	return nil
}

// Rename changes a player's display name and restores name order.
func (s *Store) Rename(key, name string) error {
	p, err := s.FindByKey(key)
	if err != nil {
		return err
	}
	if err := p.SetName(name); err != nil {
		return err
	}
	s.sort()
	return nil
}

// Save replaces the content of dst with one line per player, in collection
// order. The store is never modified by Save.
func (s *Store) Save(dst Sink) error {
	s.logger.Debug("Saving inventory.", "storage", dst.Name(), "players", len(s.players))
	if err := s.writeAll(dst); err != nil {
		s.logger.Error("Failed to save inventory to storage.", "storage", dst.Name(), "error", err)
		return &StorageWriteError{Name: dst.Name(), Err: err}
	}
	return nil
}

func (s *Store) writeAll(dst Sink) error {
	w, err := dst.Create()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, p := range s.players {
		if _, err := bw.WriteString(codec.Encode(p) + "\n"); err != nil {
			return discard(w, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return discard(w, err)
	}
	return w.Close()
}

// discard releases a sink writer after a failed write.
func discard(w io.WriteCloser, cause error) error {
	var err error
	if a, ok := w.(aborter); ok {
		err = a.Abort()
	} else {
		err = w.Close()
	}
	if err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (s *Store) indexOf(key string) int {
	return slices.IndexFunc(s.players, func(p *player.Player) bool {
		return p.Key() == key
	})
}

func (s *Store) sort() {
	slices.SortStableFunc(s.players, player.CompareByName)
}
