package game

import "fmt"

// Default controller options.
const (
	DefaultHistoryLimit = 5
	DefaultWinTile      = 2048
)

// Options tunes a Controller.
type Options struct {
	// HistoryLimit caps the undo stack. Zero disables undo.
	HistoryLimit int
	// WinTile is the tile value that wins the game. Zero or less disables
	// the win check.
	WinTile int
	// FourProbability is the chance that a spawned tile is a 4.
	FourProbability float64
}

// DefaultOptions returns the classic 2048 rules.
func DefaultOptions() Options {
	return Options{
		HistoryLimit:    DefaultHistoryLimit,
		WinTile:         DefaultWinTile,
		FourProbability: DefaultFourProbability,
	}
}

// EventKind identifies what changed in an Event.
type EventKind int

const (
	EventRestored EventKind = iota
	EventMoved
	EventUndone
	EventNewGame
	EventContinued
	EventWon
	EventGameOver
	EventBestScore
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventRestored:
		return "restored"
	case EventMoved:
		return "moved"
	case EventUndone:
		return "undone"
	case EventNewGame:
		return "new_game"
	case EventContinued:
		return "continued"
	case EventWon:
		return "won"
	case EventGameOver:
		return "game_over"
	case EventBestScore:
		return "best_score"
	default:
		return "unknown"
	}
}

// Event is delivered to observers after the controller commits a change.
type Event struct {
	Kind  EventKind
	State State
	Best  int
}

// Observer receives controller events. Observe runs on the caller's
// goroutine and must not block.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// Loader supplies a previously saved session.
type Loader interface {
	// LoadState returns the saved state and true, or false if none is usable.
	LoadState() (State, bool)
	// LoadBest returns the saved best score, 0 if none.
	LoadBest() int
}

// Controller owns one game session: the current state, a bounded undo
// history and the best score. It is not safe for concurrent use.
type Controller struct {
	opts      Options
	rnd       Random
	state     State
	history   []State
	best      int
	observers []Observer
}

// NewController creates a controller with a freshly initialized board.
func NewController(rnd Random, opts Options) *Controller {
	if opts.HistoryLimit < 0 {
		opts.HistoryLimit = 0
	}
	if opts.FourProbability < 0 || opts.FourProbability > 1 {
		opts.FourProbability = DefaultFourProbability
	}

	c := &Controller{
		opts: opts,
		rnd:  rnd,
	}
	c.state = c.freshState()
	return c
}

// Subscribe registers an observer for subsequent events.
func (c *Controller) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
}

// Options returns the controller options.
func (c *Controller) Options() Options {
	return c.opts
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Status returns the derived controller state.
func (c *Controller) Status() Status {
	return c.state.Status()
}

// Best returns the best score seen by this controller.
func (c *Controller) Best() int {
	return c.best
}

// CanUndo reports whether a snapshot is available.
func (c *Controller) CanUndo() bool {
	return len(c.history) > 0
}

// HistoryLen returns the number of undo snapshots.
func (c *Controller) HistoryLen() int {
	return len(c.history)
}

// Initialize resumes the session offered by l. A missing or invalid saved
// state starts a fresh game. A nil loader always starts fresh.
func (c *Controller) Initialize(l Loader) State {
	c.history = nil
	c.best = 0

	restored := false
	if l != nil {
		c.best = max(l.LoadBest(), 0)
		if saved, ok := l.LoadState(); ok && saved.Validate() == nil {
			c.state = saved
			restored = true
		}
	}
	if !restored {
		c.state = c.freshState()
	}
	c.best = max(c.best, c.state.Score)

	c.emit(EventRestored)
	return c.state
}

// Move applies one move. A move is rejected without any change when the
// game is won and not continued, when the game is over, or when the board
// would not change. Only an invalid direction returns an error.
func (c *Controller) Move(dir Direction) (State, error) {
	if !dir.Valid() {
		return c.state, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}
	if !c.state.AcceptsMoves() {
		return c.state, nil
	}

	out, err := Resolve(c.state.Grid, dir)
	if err != nil {
		return c.state, err
	}
	if !out.Moved {
		return c.state, nil
	}

	c.pushHistory(c.state)

	next := c.state
	next.Grid = SpawnTile(out.Grid, c.rnd, c.opts.FourProbability)
	next.Score += out.ScoreIncrease

	kinds := []EventKind{EventMoved}

	if next.Score > c.best {
		c.best = next.Score
		kinds = append(kinds, EventBestScore)
	}

	// Win fires once per game; later moves keep Won set without re-firing.
	if !next.Won && c.opts.WinTile > 0 && next.Grid.Contains(c.opts.WinTile) {
		next.Won = true
		kinds = append(kinds, EventWon)
	}

	if !HasAvailableMoves(next.Grid) {
		next.GameOver = true
		kinds = append(kinds, EventGameOver)
	}

	c.state = next
	c.emit(kinds...)
	return c.state, nil
}

// MoveNamed parses a direction name and applies it.
func (c *Controller) MoveNamed(name string) (State, error) {
	dir, err := ParseDirection(name)
	if err != nil {
		return c.state, err
	}
	return c.Move(dir)
}

// Undo restores the most recent snapshot verbatim. No-op without history.
func (c *Controller) Undo() State {
	if len(c.history) == 0 {
		return c.state
	}

	last := len(c.history) - 1
	c.state = c.history[last]
	c.history = c.history[:last]

	c.emit(EventUndone)
	return c.state
}

// NewGame discards the current game and history and starts over.
// The best score is kept.
func (c *Controller) NewGame() State {
	c.history = nil
	c.state = c.freshState()

	c.emit(EventNewGame)
	return c.state
}

// ContinueAfterWin lets a won game accept moves again.
// It does nothing unless the game is won and not yet continued.
func (c *Controller) ContinueAfterWin() State {
	if c.state.Status() != StatusWon {
		return c.state
	}

	c.state.Continued = true
	c.emit(EventContinued)
	return c.state
}

func (c *Controller) freshState() State {
	return State{Grid: InitializeGrid(c.rnd, c.opts.FourProbability)}
}

// pushHistory appends s, evicting the oldest snapshot beyond the limit.
func (c *Controller) pushHistory(s State) {
	limit := c.opts.HistoryLimit
	if limit == 0 {
		return
	}
	if len(c.history) >= limit {
		n := copy(c.history, c.history[len(c.history)-limit+1:])
		c.history = c.history[:n]
	}
	c.history = append(c.history, s)
}

func (c *Controller) emit(kinds ...EventKind) {
	for _, k := range kinds {
		e := Event{Kind: k, State: c.state, Best: c.best}
		for _, o := range c.observers {
			o.Observe(e)
		}
	}
}
