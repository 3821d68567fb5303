package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gallery/internal/client/config"
	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/models"
	"github.com/dmitrijs2005/gallery/internal/repositories/gallery"
	"github.com/dmitrijs2005/gallery/internal/repositories/repomanager"
)

var _ execIface = (*App)(nil)

var errAlbumNotOpen = errors.New("no album is open, use open-album first")

type App struct {
	config *config.Config
	store  gallery.DataAccess
	logger logging.Logger
	in     *bufio.Scanner
	out    io.Writer
	color  bool

	// album is the snapshot of the open album; albumName is empty when none is open.
	album     models.Album
	albumName string
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, "text", c.LogLevel)

	backend, err := repomanager.ParseBackend(c.Backend)
	if err != nil {
		return nil, err
	}
	store, err := repomanager.New(repomanager.Settings{Backend: backend, DSN: c.DatabaseDSN}, logger)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	color := useColor(c.Color, int(os.Stdout.Fd()))
	return newApp(c, store, logger, os.Stdin, os.Stdout, color), nil
}

func newApp(c *config.Config, store gallery.DataAccess, logger logging.Logger, in io.Reader, out io.Writer, color bool) *App {
	return &App{
		config: c,
		store:  store,
		logger: logger,
		in:     bufio.NewScanner(in),
		out:    out,
		color:  color,
	}
}

// Run opens the backend and runs the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	if err := a.store.Open(ctx); err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	defer func() {
		if err := a.store.Close(); err != nil {
			a.logger.Error(ctx, "failed to close backend", "error", err)
		}
	}()

	a.say(yellow, "Welcome to Gallery! (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.in)
	return nil
}

func (a *App) getStatus() string {
	if a.albumName == "" {
		return ""
	}
	return fmt.Sprintf("[%s]", a.albumName)
}

func (a *App) isAlbumOpen() bool {
	return a.albumName != ""
}

// refreshOpenAlbum re-reads the open album from the backend.
func (a *App) refreshOpenAlbum(ctx context.Context) error {
	if !a.isAlbumOpen() {
		return errAlbumNotOpen
	}
	album, err := a.store.OpenAlbum(ctx, a.albumName)
	if err != nil {
		return err
	}
	a.album = album
	return nil
}

func (a *App) forgetOpenAlbum() {
	a.album = models.Album{}
	a.albumName = ""
}

// ask reads a non-empty line after printing prompt.
func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.in, a.paint(magenta, prompt), a.out)
}

func (a *App) askID(prompt string) (int64, error) {
	return GetID(a.in, a.paint(magenta, prompt), a.out)
}

// askPicture reads a picture name and looks it up in the open album snapshot.
func (a *App) askPicture() (models.Picture, error) {
	name, err := a.ask("Enter picture name: ")
	if err != nil {
		return models.Picture{}, err
	}
	picture, ok := a.album.Picture(name)
	if !ok {
		return models.Picture{}, fmt.Errorf("there is no picture with name <%s>", name)
	}
	return picture, nil
}

func (a *App) say(color, format string, args ...any) {
	fmt.Fprintln(a.out, a.paint(color, fmt.Sprintf(format, args...)))
}

func (a *App) printError(err error) {
	a.say(red, "Error: %v", err)
}
