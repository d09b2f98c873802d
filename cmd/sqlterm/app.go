package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"sqlterm/internal/config"
	"sqlterm/internal/dataview"
	"sqlterm/internal/datatable"
	"sqlterm/internal/history"
	"sqlterm/internal/logging"
	"sqlterm/internal/sqlquery"
	"sqlterm/internal/state"
)

var appLog = logging.Component("app")

// App wires together a loaded table, a configuration, and a history store
// into either the one-shot --classic execution path or an interactive
// Loop. It mirrors the teacher's application struct in shape (construct
// the dependent services, cross-wire them, run) without Wails's
// runtime/event-emitter plumbing, which has no analogue in a terminal
// program.
type App struct {
	Config  config.Config
	Table   *datatable.Table
	History *history.Store
	RunID   string
}

// NewApp builds an App. RunID tags every history entry written during this
// process invocation (SPEC_FULL.md §4.8's run-id field), generated once per
// run rather than per query.
func NewApp(cfg config.Config, table *datatable.Table, hist *history.Store) *App {
	return &App{Config: cfg, Table: table, History: hist, RunID: uuid.NewString()}
}

// RunClassic executes one query non-interactively and writes an aligned
// plain-text table to out (spec.md §6's --classic mode, the one fully
// real, toolchain-verifiable rendering surface sqlterm owns: there is no
// terminal-rendering library anywhere in the example pack this project
// draws its dependencies from, and spec.md §1 explicitly puts terminal
// rendering primitives out of scope).
func (a *App) RunClassic(out io.Writer, queryText string) error {
	if queryText == "" {
		queryText = fmt.Sprintf("SELECT * FROM %s", a.Table.Name())
	}

	result, err := sqlquery.Execute(a.Table, queryText, a.Config.DefaultCaseInsensitive)
	if err != nil {
		return asDispatchError(err)
	}
	view := dataview.New(a.Table, result.Rows, result.DisplayColumns)

	if err := renderClassic(out, view); err != nil {
		return err
	}

	a.History.Append(history.Entry{Query: queryText, Timestamp: time.Now(), Success: true, RunID: a.RunID})
	if err := a.History.Save(); err != nil {
		appLog.Warn().Err(err).Msg("could not persist history")
	}
	return nil
}

// NewInteractiveLoop builds the Loop backing sqlterm's interactive mode,
// with one buffer already open in Command mode (spec.md §4.6: a session
// starts with an empty query prompt, not a pre-run SELECT *).
func (a *App) NewInteractiveLoop(ctx context.Context) *Loop {
	container := state.NewContainer(a.Table.Name())
	container.Active().CaseInsensitive = a.Config.DefaultCaseInsensitive
	container.Active().CompactMode = a.Config.DefaultCompactMode
	debounce := time.Duration(a.Config.DebounceMillis) * time.Millisecond
	return NewLoop(container, a.Table, a.History, a.RunID, debounce, a.Config.CacheSizeLimitMB)
}

// Close persists the history store; callers defer this on every exit path
// so q (ActionQuit), Ctrl+C (ActionForceQuit) and a graceful end-of-input
// all save (spec.md §4.8): only an external process overwriting the file
// bypasses sqlterm's own write path.
func (a *App) Close() error {
	return a.History.Save()
}
