// Package session drives one inventory session: it loads the storage file,
// runs the interactive menu against the store and saves on exit.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/arcanaland/cardkeeper/internal/display"
	"github.com/arcanaland/cardkeeper/internal/export"
	"github.com/arcanaland/cardkeeper/internal/store"
)

// errInputClosed is returned by prompts once the console input is exhausted.
var errInputClosed = errors.New("input closed")

// Options configures a session. Every collaborator is injected.
type Options struct {
	StoragePath string
	// CreateIfMissing creates an empty storage file instead of failing when
	// StoragePath does not exist.
	CreateIfMissing bool

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
	Logger *slog.Logger
	Color  bool
}

// Session owns the store for the duration of one run.
type Session struct {
	store   *store.Store
	storage store.File

	in      *bufio.Reader
	out     io.Writer
	errOut  io.Writer
	logger  *slog.Logger
	printer *display.Printer
}

// Open resolves the storage file and loads its content.
func Open(opts Options) (*Session, error) {
	if opts.StoragePath == "" {
		return nil, fmt.Errorf("invalid storage file name '%s'", opts.StoragePath)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.In == nil {
		opts.In = strings.NewReader("")
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.ErrOut == nil {
		opts.ErrOut = io.Discard
	}

	s := &Session{
		store:   store.New(opts.Logger),
		storage: store.File(opts.StoragePath),
		in:      bufio.NewReader(opts.In),
		out:     opts.Out,
		errOut:  opts.ErrOut,
		logger:  opts.Logger,
		printer: display.NewPrinter(opts.Out, opts.Color),
	}

	exists, err := s.storage.Exists()
	if err != nil {
		return nil, &store.StorageReadError{Name: s.storage.Name(), Err: err}
	}
	if !exists {
		if !opts.CreateIfMissing {
			return nil, &store.StorageReadError{Name: s.storage.Name(), Err: fmt.Errorf("storage file does not exist")}
		}
		s.logger.Debug("Creating storage file.", "storage", s.storage.Name())
		if err := s.storage.Touch(); err != nil {
			return nil, &store.StorageWriteError{Name: s.storage.Name(), Err: fmt.Errorf("failed to create storage file: %w", err)}
		}
		return s, nil
	}

	if err := s.store.Load(s.storage); err != nil {
		return nil, err
	}
	return s, nil
}

// Store returns the collection the session mutates
func (s *Session) Store() *store.Store {
	return s.store
}

// StorageName returns the storage file path
func (s *Session) StorageName() string {
	return s.storage.Name()
}

// Save flushes the collection to the storage file.
func (s *Session) Save() error {
	return s.store.Save(s.storage)
}

// Export writes the collection to an alternate destination. The session
// storage file is not touched.
func (s *Session) Export(ctx context.Context, dest string, format export.Format) error {
	s.logger.Debug("Exporting inventory.", "destination", dest, "format", format)
	switch format {
	case export.FormatText:
		return export.Text(s.store, dest)
	case export.FormatSQLite:
		if err := export.SQLite(ctx, dest, s.store.Players()); err != nil {
			return &store.StorageWriteError{Name: dest, Err: err}
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format '%s'", format)
	}
}

// Run shows the menu until the user picks 0 or the input ends, then saves.
func (s *Session) Run() error {
	for {
		s.printMenu()
		choice, err := s.prompt("")
		if errors.Is(err, errInputClosed) {
			return s.exit()
		}
		if err != nil {
			return err
		}

		option, err := parseInt(choice)
		if err != nil {
			s.invalidFormat()
		} else if option == 0 {
			return s.exit()
		} else if err := s.dispatch(option); errors.Is(err, errInputClosed) {
			return s.exit()
		} else if err != nil {
			return err
		}

		if err := s.pause(); errors.Is(err, errInputClosed) {
			return s.exit()
		}
	}
}

func (s *Session) exit() error {
	if err := s.save(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Merci d'avoir utilisé le système de gestion d'inventaire de cartes.")
	return nil
}

func (s *Session) save() error {
	if err := s.Save(); err != nil {
		fmt.Fprintln(s.errOut, err)
		return err
	}
	fmt.Fprintf(s.out, "Le fichier %s a été créé avec succès.\n", filepath.Base(s.storage.Name()))
	return nil
}

// prompt prints a question, when given, and reads one line of input.
func (s *Session) prompt(question string) (string, error) {
	if question != "" {
		fmt.Fprintln(s.out, question)
	}
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errInputClosed
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) pause() error {
	_, err := s.prompt("Veillez entre une touche pour continuer...")
	return err
}

func (s *Session) invalidFormat() {
	fmt.Fprintln(s.errOut, "Invalid Format!")
}

// report prints an error raised by the store or the record constructors and
// lets the menu continue.
func (s *Session) report(err error) {
	s.logger.Debug("Operation failed.", "error", err)
	fmt.Fprintln(s.errOut, err)
}
