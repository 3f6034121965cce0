package persist

import (
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/t2048/internal/game"
)

// Result describes a finished game.
type Result struct {
	RunID   string
	Score   int
	MaxTile int
	Won     bool
	EndedAt time.Time
}

// ResultSaver records finished games.
type ResultSaver interface {
	SaveResult(Result) error
}

// Options configures a Persister.
type Options struct {
	StateKey string
	BestKey  string
	// Results, if set, receives one Result per finished run.
	Results ResultSaver
	Logger  *log.Logger
	// Now overrides the clock used for timestamps.
	Now func() time.Time
}

type opKind int

const (
	opSetState opKind = iota
	opDeleteState
	opSetBest
	opSaveResult
)

func (k opKind) String() string {
	switch k {
	case opSetState:
		return "set_state"
	case opDeleteState:
		return "delete_state"
	case opSetBest:
		return "set_best"
	case opSaveResult:
		return "save_result"
	default:
		return "unknown"
	}
}

type op struct {
	kind   opKind
	value  string
	result Result
}

// Persister mirrors controller events into a KV store.
type Persister struct {
	kv      KV
	results ResultSaver
	logger  *log.Logger
	now     func() time.Time

	stateKey string
	bestKey  string

	// Touched only from the controller's goroutine.
	runID    string
	recorded bool
	restored bool

	mu     sync.Mutex
	queue  []op
	closed bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

var _ game.Loader = (*Persister)(nil)
var _ game.Observer = (*Persister)(nil)

// New starts a Persister writing to kv. Call Close to flush and stop it.
func New(kv KV, opts Options) *Persister {
	if opts.StateKey == "" {
		opts.StateKey = DefaultStateKey
	}
	if opts.BestKey == "" {
		opts.BestKey = DefaultBestKey
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	p := &Persister{
		kv:       kv,
		results:  opts.Results,
		logger:   opts.Logger,
		now:      opts.Now,
		stateKey: opts.StateKey,
		bestKey:  opts.BestKey,
		runID:    uuid.NewString(),
		wake:     make(chan struct{}, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go p.run()
	return p
}

// RunID identifies the game currently being persisted.
func (p *Persister) RunID() string {
	return p.runID
}

// LoadState reads the saved game. Missing, unreadable or malformed data
// reports false.
func (p *Persister) LoadState() (game.State, bool) {
	p.restored = false
	value, ok, err := p.kv.Get(p.stateKey)
	if err != nil {
		p.logger.Warn("cannot read saved game", "key", p.stateKey, "err", err)
		return game.State{}, false
	}
	if !ok {
		return game.State{}, false
	}

	s, rec, err := DecodeState(value)
	if err != nil {
		p.logger.Debug("ignoring saved game", "key", p.stateKey, "err", err)
		return game.State{}, false
	}

	if rec.RunID != "" {
		p.runID = rec.RunID
	}
	p.recorded = s.GameOver
	p.restored = true
	return s, true
}

// Restored reports whether the last LoadState found a usable saved game.
func (p *Persister) Restored() bool {
	return p.restored
}

// LoadBest reads the saved best score, 0 if missing or malformed.
func (p *Persister) LoadBest() int {
	value, ok, err := p.kv.Get(p.bestKey)
	if err != nil {
		p.logger.Warn("cannot read best score", "key", p.bestKey, "err", err)
		return 0
	}
	if !ok {
		return 0
	}
	return DecodeBest(value)
}

// Observe queues the writes for a controller event.
func (p *Persister) Observe(e game.Event) {
	switch e.Kind {
	case game.EventNewGame:
		p.runID = uuid.NewString()
		p.recorded = false
		p.enqueue(op{kind: opDeleteState})
		p.saveState(e.State)

	case game.EventBestScore:
		p.enqueue(op{kind: opSetBest, value: strconv.Itoa(e.Best)})

	case game.EventGameOver:
		if p.recorded || p.results == nil {
			return
		}
		p.recorded = true
		p.enqueue(op{kind: opSaveResult, result: Result{
			RunID:   p.runID,
			Score:   e.State.Score,
			MaxTile: e.State.Grid.MaxTile(),
			Won:     e.State.Won,
			EndedAt: p.now(),
		}})

	case game.EventWon:
		// The accompanying EventMoved already carries the state.

	case game.EventUndone:
		// Undoing out of game over reopens the run; its next ending
		// replaces the recorded result.
		if !e.State.GameOver {
			p.recorded = false
		}
		p.saveState(e.State)

	default:
		p.saveState(e.State)
	}
}

// Close writes everything still queued and stops the worker.
func (p *Persister) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	close(p.quit)
	<-p.done
	return nil
}

func (p *Persister) saveState(s game.State) {
	value, err := EncodeState(s, p.runID, p.now())
	if err != nil {
		p.logger.Error("cannot encode game", "err", err)
		return
	}
	p.enqueue(op{kind: opSetState, value: value})
}

func (p *Persister) enqueue(o op) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.logger.Debug("persister closed, dropping write", "op", o.kind)
		return
	}
	p.queue = append(p.queue, o)
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.drain()
		case <-p.quit:
			p.drain()
			return
		}
	}
}

// drain applies queued writes. Only the newest state and best score in a
// batch are written.
func (p *Persister) drain() {
	p.mu.Lock()
	ops := p.queue
	p.queue = nil
	p.mu.Unlock()

	lastState, lastBest := -1, -1
	for i, o := range ops {
		switch o.kind {
		case opSetState:
			lastState = i
		case opSetBest:
			lastBest = i
		}
	}

	for i, o := range ops {
		if (o.kind == opSetState && i != lastState) || (o.kind == opSetBest && i != lastBest) {
			continue
		}
		if err := p.apply(o); err != nil {
			p.logger.Warn("persist write failed", "op", o.kind, "err", err)
		}
	}
}

func (p *Persister) apply(o op) error {
	switch o.kind {
	case opSetState:
		return p.kv.Set(p.stateKey, o.value)
	case opDeleteState:
		return p.kv.Delete(p.stateKey)
	case opSetBest:
		return p.kv.Set(p.bestKey, o.value)
	case opSaveResult:
		return p.results.SaveResult(o.result)
	default:
		return errors.New("unknown op")
	}
}
