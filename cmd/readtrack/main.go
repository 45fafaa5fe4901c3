package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"readtrack/internal/bootstrap"
	readerdto "readtrack/internal/modules/reader/dto"
	"readtrack/internal/platform/config"
	apperrors "readtrack/internal/platform/errors"
)

type rootOptions struct {
	configPath string
	store      string
	dataDir    string
	policy     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "readtrack",
		Short:         "Terminal reading tracker with per-line progress and notes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/readtrack/config.yaml)")
	root.PersistentFlags().StringVar(&opts.store, "store", "", "progress store: sqlite|badger|json|memory")
	root.PersistentFlags().StringVar(&opts.dataDir, "data", "", "data directory")
	root.PersistentFlags().StringVar(&opts.policy, "policy", "", "chapter policy: header-blocks|numbered")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newBooksCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newChaptersCmd(opts))
	root.AddCommand(newReadCmd(opts))
	root.AddCommand(newNoteCmd(opts))
	root.AddCommand(newLastCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newVideoCmd(opts))
	root.AddCommand(newParseCmd(opts))
	return root
}

func loadApp(opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.Load(opts.configPath, config.Overrides{
		DataDir: opts.dataDir,
		Store:   opts.store,
		Policy:  opts.policy,
	})
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// withApp loads the app, runs fn and closes the app whatever fn returns.
func withApp(opts *rootOptions, fn func(app *bootstrap.App) error) (err error) {
	app, err := loadApp(opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(app)
}

func requireBook(book string) error {
	if strings.TrimSpace(book) == "" {
		return fmt.Errorf("--book is required")
	}
	return nil
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	var book string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal reader",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(app, book)
			})
		},
	}
	cmd.Flags().StringVar(&book, "book", "", "book name or location to open")
	return cmd
}

func newBooksCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List configured books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				entries := app.ReaderCLI.Books(context.Background())
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no books configured")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{e.Name, e.Location})
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintln(out, renderTable(out, []string{"NAME", "LOCATION"}, rows, nil))
				return nil
			})
		},
	}
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var book string
	cmd := &cobra.Command{
		Use:   "show --book <name|location>",
		Short: "Show book metadata, stats and progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireBook(book); err != nil {
				return err
			}
			return withApp(opts, func(app *bootstrap.App) error {
				s, err := app.ReaderCLI.Show(context.Background(), book)
				if err != nil {
					return err
				}
				lastRead := s.LastRead
				if !s.LastReadAt.IsZero() {
					lastRead += " (" + s.LastReadAt.Local().Format(time.DateTime) + ")"
				}
				rows := [][]string{
					{"id", s.BookID},
					{"title", s.Title},
					{"author", s.Author},
					{"description", s.Description},
					{"location", s.Location},
					{"chapters", strconv.Itoa(s.TotalChapters)},
					{"avg lines", strconv.Itoa(s.AverageLines)},
					{"read", fmt.Sprintf("%d%%", s.PercentRead)},
					{"last read", lastRead},
					{"video", s.EmbedURL},
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintln(out, renderTable(out, []string{"FIELD", "VALUE"}, rows, nil))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&book, "book", "", "book name or location")
	return cmd
}

func newChaptersCmd(opts *rootOptions) *cobra.Command {
	var book string
	cmd := &cobra.Command{
		Use:   "chapters --book <name|location>",
		Short: "List chapters with read counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireBook(book); err != nil {
				return err
			}
			return withApp(opts, func(app *bootstrap.App) error {
				session, err := app.ReaderCLI.Chapters(context.Background(), book)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(session.Chapters))
				for _, c := range session.Chapters {
					rows = append(rows, chapterRow(c))
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintln(out, renderTable(out,
					[]string{"CHAPTER", "READ", "LINES", "%", "NOTES"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&book, "book", "", "book name or location")
	return cmd
}

func chapterRow(c readerdto.ChapterOutput) []string {
	mark := "🔴"
	if c.FullyRead {
		mark = "✅"
	}
	return []string{
		mark + " " + c.Title,
		strconv.Itoa(c.ReadCount),
		strconv.Itoa(len(c.Lines)),
		strconv.Itoa(c.Percent),
		strconv.Itoa(c.NoteCount),
	}
}

func newReadCmd(opts *rootOptions) *cobra.Command {
	var book, chapter string
	var line int
	var all bool
	cmd := &cobra.Command{
		Use:   "read --book <b> --chapter <title> (--line <n> | --all)",
		Short: "Toggle a line read, or mark a whole chapter read/unread",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireBook(book); err != nil {
				return err
			}
			if strings.TrimSpace(chapter) == "" {
				return fmt.Errorf("--chapter is required")
			}
			if !all && line < 0 {
				return fmt.Errorf("either --line or --all is required")
			}
			return withApp(opts, func(app *bootstrap.App) error {
				var (
					out readerdto.ChapterOutput
					err error
				)
				if all {
					out, err = app.ReaderCLI.ToggleAll(context.Background(), book, chapter)
				} else {
					out, err = app.ReaderCLI.ToggleLine(context.Background(), book, chapter, line)
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d / %d read (%d%%)\n", out.Title, out.ReadCount, len(out.Lines), out.Percent)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&book, "book", "", "book name or location")
	cmd.Flags().StringVar(&chapter, "chapter", "", "chapter title")
	cmd.Flags().IntVar(&line, "line", -1, "zero-based line index")
	cmd.Flags().BoolVar(&all, "all", false, "mark every line read, or unmark all when the chapter is fully read")
	cmd.MarkFlagsMutuallyExclusive("line", "all")
	return cmd
}

func newNoteCmd(opts *rootOptions) *cobra.Command {
	var book, chapter, text string
	var line int
	cmd := &cobra.Command{
		Use:   "note --book <b> --chapter <title> --line <n> --text <note>",
		Short: "Set the note on a read line (empty text clears it)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireBook(book); err != nil {
				return err
			}
			if strings.TrimSpace(chapter) == "" || line < 0 {
				return fmt.Errorf("--chapter and --line are required")
			}
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.ReaderCLI.SetNote(context.Background(), book, chapter, line, text)
				if errors.Is(err, apperrors.ErrNoteRequiresRead) {
					return fmt.Errorf("%w (run `readtrack read --line %d` first)", err, line)
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d notes\n", out.Title, out.NoteCount)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&book, "book", "", "book name or location")
	cmd.Flags().StringVar(&chapter, "chapter", "", "chapter title")
	cmd.Flags().IntVar(&line, "line", -1, "zero-based line index")
	cmd.Flags().StringVar(&text, "text", "", "note text")
	return cmd
}

func newLastCmd(opts *rootOptions) *cobra.Command {
	var book string
	cmd := &cobra.Command{
		Use:   "last --book <name|location>",
		Short: "Print the last-read identifier",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireBook(book); err != nil {
				return err
			}
			return withApp(opts, func(app *bootstrap.App) error {
				id, err := app.ReaderCLI.LastRead(context.Background(), book)
				if err != nil {
					return err
				}
				if id == "" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing read yet")
					return nil
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&book, "book", "", "book name or location")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var book, dir, format string
	var stdout bool
	cmd := &cobra.Command{
		Use:   "export --book <name|location>",
		Short: "Export notes to a file, or to stdout with --stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireBook(book); err != nil {
				return err
			}
			return withApp(opts, func(app *bootstrap.App) error {
				if stdout {
					return app.ReaderCLI.ExportTo(context.Background(), book, cmd.OutOrStdout())
				}
				out, err := app.ReaderCLI.Export(context.Background(), book, dir, format)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported notes to %s\n", out.Path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&book, "book", "", "book name or location")
	cmd.Flags().StringVar(&dir, "out", "", "output directory (default export_dir from config)")
	cmd.Flags().StringVar(&format, "format", "text", "export format: text|markdown")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the plain text export to stdout")
	cmd.MarkFlagsMutuallyExclusive("stdout", "out")
	return cmd
}

func newVideoCmd(opts *rootOptions) *cobra.Command {
	var book string
	cmd := &cobra.Command{
		Use:   "video --book <name|location>",
		Short: "Open the book's companion video in the browser",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireBook(book); err != nil {
				return err
			}
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.ReaderCLI.OpenVideo(context.Background(), book)
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("book has no video")
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "opened %s\n", out.URL)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&book, "book", "", "book name or location")
	return cmd
}

func newParseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <location>",
		Short: "Parse a book without touching progress and print its chapters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.BookCLI.Load(context.Background(), args[0], app.Config.Policy)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "id: %s\ntitle: %s\nauthor: %s\nchapters: %d\navg lines: %d\n",
					out.ID, out.Title, out.Author, out.TotalChapters, out.AverageLines)
				rows := make([][]string, 0, len(out.Chapters))
				for i, c := range out.Chapters {
					rows = append(rows, []string{strconv.Itoa(i + 1), c.Title, strconv.Itoa(len(c.Lines))})
				}
				_, _ = fmt.Fprintln(w, renderTable(w, []string{"#", "CHAPTER", "LINES"}, rows,
					[]columnAlignment{alignRight, alignLeft, alignRight}))
				return nil
			})
		},
	}
}
