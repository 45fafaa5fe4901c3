package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	bookinadapter "readtrack/internal/modules/book/adapter/in"
	bookoutadapter "readtrack/internal/modules/book/adapter/out"
	bookout "readtrack/internal/modules/book/port/out"
	bookservice "readtrack/internal/modules/book/service"
	bookusecase "readtrack/internal/modules/book/usecase"
	progressoutadapter "readtrack/internal/modules/progress/adapter/out"
	progressout "readtrack/internal/modules/progress/port/out"
	progressservice "readtrack/internal/modules/progress/service"
	progressusecase "readtrack/internal/modules/progress/usecase"
	readerinadapter "readtrack/internal/modules/reader/adapter/in"
	readeroutadapter "readtrack/internal/modules/reader/adapter/out"
	readerservice "readtrack/internal/modules/reader/service"
	readerusecase "readtrack/internal/modules/reader/usecase"
	"readtrack/internal/platform/clock"
	"readtrack/internal/platform/config"
	"readtrack/internal/platform/logging"
	uiapp "readtrack/internal/ui/app"
)

const watchDebounce = 200 * time.Millisecond

type App struct {
	Config    config.Config
	Logger    *slog.Logger
	BookCLI   bookinadapter.CLIHandler
	ReaderCLI readerinadapter.CLIHandler
	ReaderTUI readerinadapter.TUIHandler

	closers []func() error
}

// New wires every module from cfg. Callers must Close the returned App.
func New(cfg config.Config) (*App, error) {
	logger, closeLog, err := logging.New(logging.Options{
		File:   cfg.Log.File,
		Format: cfg.Log.Format,
		Level:  cfg.Log.Level,
	})
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, closers: []func() error{closeLog}}

	kv, err := newKVStore(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if c, ok := kv.(io.Closer); ok {
		app.closers = append(app.closers, c.Close)
	}
	logger.Info("progress store opened", slog.String("store", cfg.Store), slog.String("path", cfg.StorePath()))

	fetcher := bookoutadapter.NewRoutingFetcher(
		bookoutadapter.NewFileFetcher(),
		bookoutadapter.NewPDFFetcher(),
		bookoutadapter.NewHTTPFetcher(cfg.FetchTimeout),
	)
	var watcher bookout.ChangeWatcher
	if cfg.Watch {
		watcher = bookoutadapter.NewFSNotifyWatcher(watchDebounce, logger)
	}
	bookUC := bookusecase.NewInteractor(bookservice.NewBookService(
		fetcher,
		watcher,
		logger,
	))

	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		kv,
		logger,
	))

	readerUC := readerusecase.NewInteractor(readerservice.NewReaderService(
		readeroutadapter.NewBookLoaderAdapter(bookUC),
		readeroutadapter.NewProgressAdapter(progressUC),
		readeroutadapter.NewConfigCatalog(cfg.Books),
		readeroutadapter.NewFileNoteSink(cfg.ExportDir),
		readeroutadapter.NewOSExternalLauncher(),
		clock.SystemClock{},
		cfg.Policy,
		logger,
	))

	app.BookCLI = bookinadapter.NewCLIHandler(bookUC)
	app.ReaderCLI = readerinadapter.NewCLIHandler(readerUC)
	app.ReaderTUI = readerinadapter.NewTUIHandler(readerUC)
	return app, nil
}

func newKVStore(cfg config.Config) (progressout.KVStore, error) {
	var (
		kv  progressout.KVStore
		err error
	)
	switch cfg.Store {
	case config.StoreMemory:
		return progressoutadapter.NewMemoryKVStore(), nil
	case config.StoreBadger:
		kv, err = progressoutadapter.NewBadgerKVStore(cfg.StorePath())
	case config.StoreJSON:
		kv, err = progressoutadapter.NewJSONFileKVStore(cfg.StorePath())
	default:
		kv, err = progressoutadapter.NewSQLiteKVStore(cfg.StorePath())
	}
	if err != nil {
		return nil, fmt.Errorf("open %s progress store: %w", cfg.Store, err)
	}
	return kv, nil
}

// Close releases the store and the log file, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App, book string) error {
	if book == "" {
		book = app.Config.DefaultBook
	}
	model := uiapp.NewModel(app.ReaderTUI, book, app.Config.Watch)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
