package autosave

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// DefaultDelay is the quiet period after the last edit before a save fires.
const DefaultDelay = 2 * time.Second

// Saver persists a draft. An empty id creates a note. *core.Store implements it.
type Saver interface {
	Save(ctx context.Context, id string, d core.Draft) (core.Note, error)
}

// Config holds the configuration of an AutoSaver.
type Config struct {
	Delay  time.Duration
	Logger *slog.Logger
	// OnSave is called after every successful save.
	OnSave func(core.Note)
	// OnError is called when a background save fails.
	OnError func(error)
}

// AutoSaver debounces edits of a single note into saves.
// The first save of a new note creates it; later saves update the same note.
type AutoSaver struct {
	ctx       context.Context
	saver     Saver
	config    Config
	debouncer *Debouncer

	saveMu sync.Mutex // serializes saves

	mu    sync.Mutex
	id    string
	draft core.Draft
	gen   uint64 // bumped by Edit; a save only adopts an id for its own session
}

// New creates an AutoSaver. ctx bounds the saves fired in the background.
func New(ctx context.Context, saver Saver, config Config) *AutoSaver {
	if config.Delay <= 0 {
		config.Delay = DefaultDelay
	}
	return &AutoSaver{
		ctx:       ctx,
		saver:     saver,
		config:    config,
		debouncer: NewDebouncer(config.Delay),
	}
}

// Edit sets the note being edited (empty id for a new note) and drops any
// pending save of the previous one.
func (a *AutoSaver) Edit(id string, d core.Draft) {
	a.debouncer.Cancel()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.id = id
	a.draft = d
	a.gen++
}

// Changed records the latest draft and restarts the quiet period.
func (a *AutoSaver) Changed(d core.Draft) {
	a.mu.Lock()
	a.draft = d
	a.mu.Unlock()

	if !a.debouncer.Schedule(a.fire) && a.config.Logger != nil {
		a.config.Logger.Debug("autosave stopped, change not scheduled")
	}
}

// Pending reports whether a save is scheduled.
func (a *AutoSaver) Pending() bool {
	return a.debouncer.Pending()
}

// ID returns the id of the note being edited; empty until a new note has
// been saved once.
func (a *AutoSaver) ID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.id
}

// Flush saves immediately if a save is pending. A background save already
// running is waited for, so ID is current when Flush returns. It reports
// whether Flush itself attempted a save.
func (a *AutoSaver) Flush(ctx context.Context) (core.Note, bool, error) {
	pending := a.debouncer.Cancel()

	a.saveMu.Lock()
	defer a.saveMu.Unlock()
	if !pending {
		return core.Note{}, false, nil
	}
	n, err := a.saveLocked(ctx)
	return n, true, err
}

// Close stops the AutoSaver, discarding a pending save and waiting for a
// running one. Call Flush first to keep the last edits.
func (a *AutoSaver) Close() {
	if !a.debouncer.Stop(5*time.Second) && a.config.Logger != nil {
		a.config.Logger.Warn("autosave did not stop in time")
	}
}

func (a *AutoSaver) fire() {
	if _, err := a.save(a.ctx); err != nil && a.config.OnError != nil {
		a.config.OnError(err)
	}
}

func (a *AutoSaver) save(ctx context.Context) (core.Note, error) {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()
	return a.saveLocked(ctx)
}

// saveLocked must be called with saveMu held.
func (a *AutoSaver) saveLocked(ctx context.Context) (core.Note, error) {
	a.mu.Lock()
	id, d, gen := a.id, a.draft, a.gen
	a.mu.Unlock()

	n, err := a.saver.Save(ctx, id, d)

	// A failed write still leaves the note in memory; adopt its id so the
	// next save updates it instead of creating a twin.
	if n.ID != "" {
		a.mu.Lock()
		if a.gen == gen && a.id == id {
			a.id = n.ID
		}
		a.mu.Unlock()
	}

	if err != nil {
		if a.config.Logger != nil {
			level := slog.LevelError
			if errors.Is(err, core.ErrValidation) {
				level = slog.LevelWarn
			}
			a.config.Logger.Log(ctx, level, "autosave failed", "id", id, "error", err)
		}
		return n, err
	}

	if a.config.Logger != nil {
		a.config.Logger.Debug("autosaved", "id", n.ID)
	}
	if a.config.OnSave != nil {
		a.config.OnSave(n)
	}
	return n, nil
}
