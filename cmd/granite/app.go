package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/gerunddev/granite/internal/config"
	"github.com/gerunddev/granite/internal/diff"
	"github.com/gerunddev/granite/internal/document"
	"github.com/gerunddev/granite/internal/logger"
	"github.com/gerunddev/granite/internal/markdown"
	"github.com/gerunddev/granite/internal/notes"
)

// app is the state shared by every command: configuration, the file logger
// and a parser for the configured flavour.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	parser  *markdown.Parser
	cleanup func()
}

// globalFlags holds the persistent flags of the root command
type globalFlags struct {
	configPath string
	verbose    bool
	stderr     io.Writer // verbose log output, os.Stderr when nil
}

func newApp(flags globalFlags) (*app, error) {
	if flags.configPath != "" {
		config.ConfigPath = func() string { return flags.configPath }
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Level()
	var extra []io.Writer
	if flags.verbose {
		level = charmlog.DebugLevel
		stderr := flags.stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		extra = append(extra, stderr)
	}
	log, cleanup, err := logger.NewFileLogger(cfg.LogFile, level, extra...)
	if err != nil {
		// Logging is best effort; commands still run without a log file
		log, cleanup = logger.Discard(), func() {}
		if flags.verbose {
			log = logger.NewMultiLogger(level, extra...)
		}
	}
	log.ConfigLoaded(config.ConfigPath(), cfg.Level())

	return &app{
		cfg:     cfg,
		log:     log,
		parser:  markdown.NewParser(cfg.Extensions.Options()),
		cleanup: cleanup,
	}, nil
}

// resolve finds a note by path, falling back to the notes directory for
// relative paths that do not exist in the working directory.
func (a *app) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	candidate := filepath.Join(a.cfg.NotesDir, path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
}

// open loads and parses a note
func (a *app) open(path string) (*notes.Note, *document.Document, error) {
	note, err := notes.Load(a.resolve(path))
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	doc, err := document.ParseWith(a.parser, note.Content)
	if err != nil {
		a.log.FileError(note.Path, err)
		return nil, nil, fmt.Errorf("failed to parse %s: %w", note.Path, err)
	}
	a.log.DocumentParsed(note.Path, len(note.Content), len(doc.Blocks), time.Since(start))
	return note, doc, nil
}

// write saves edited content, or prints the diff when dryRun is set
func (a *app) write(w io.Writer, note *notes.Note, content string, dryRun bool) error {
	if content == note.Content {
		a.log.Skipped(note.Path, "no changes")
		return nil
	}
	if dryRun {
		fmt.Fprint(w, diff.Generate(filepath.Base(note.Path), note.Content, content, diff.Options{
			Width:  a.cfg.DiffWidth,
			Render: a.cfg.RenderDiff,
		}))
		return nil
	}
	if err := note.Save(content); err != nil {
		if errors.Is(err, notes.ErrModified) {
			a.log.Skipped(note.Path, "modified since it was read")
		} else {
			a.log.FileError(note.Path, err)
		}
		return err
	}
	a.log.FileSaved(note.Path, len(content))
	return nil
}
