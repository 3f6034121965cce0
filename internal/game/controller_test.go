package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeLoader struct {
	state State
	ok    bool
	best  int
}

func (f fakeLoader) LoadState() (State, bool) { return f.state, f.ok }
func (f fakeLoader) LoadBest() int            { return f.best }

type eventLog struct {
	events []Event
}

func (l *eventLog) Observe(e Event) { l.events = append(l.events, e) }

func (l *eventLog) kinds() []EventKind {
	kinds := make([]EventKind, len(l.events))
	for i, e := range l.events {
		kinds[i] = e.Kind
	}
	return kinds
}

func (l *eventLog) count(k EventKind) int {
	n := 0
	for _, e := range l.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// newTestController restores grid as the current state. The returned script
// starts empty; every draw yields 0, so spawns land on the first empty cell
// as a 2.
func newTestController(t *testing.T, s State, opts Options) (*Controller, *scriptedRandom, *eventLog) {
	t.Helper()

	rnd := script()
	c := NewController(rnd, opts)
	if got := c.Initialize(fakeLoader{state: s, ok: true}); got != s {
		t.Fatalf("Initialize did not restore the state:\n%s", got.Grid)
	}

	events := &eventLog{}
	c.Subscribe(events)
	return c, rnd, events
}

func TestMoveRejectedWhenBoardUnchanged(t *testing.T) {
	start := State{Grid: Grid{
		{2, 4, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
		{16, 2, 0, 0},
	}, Score: 12}
	c, rnd, events := newTestController(t, start, DefaultOptions())
	rnd.values = []float64{0.5, 0.5}

	got, err := c.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}

	if diff := cmp.Diff(start, got); diff != "" {
		t.Errorf("rejected move changed state (-want +got):\n%s", diff)
	}
	if c.HistoryLen() != 0 {
		t.Errorf("HistoryLen = %d, want 0", c.HistoryLen())
	}
	if rnd.pos != 0 {
		t.Errorf("rejected move consumed %d random draws", rnd.pos)
	}
	if len(events.events) != 0 {
		t.Errorf("rejected move emitted %v", events.kinds())
	}
}

func TestMoveCommitsAndSpawns(t *testing.T) {
	start := State{Grid: Grid{{2, 0, 2, 4}}}
	c, _, events := newTestController(t, start, DefaultOptions())

	got, err := c.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}

	want := State{
		Grid:  Grid{{4, 4, 2, 0}},
		Score: 4,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if c.HistoryLen() != 1 {
		t.Errorf("HistoryLen = %d, want 1", c.HistoryLen())
	}
	if c.Best() != 4 {
		t.Errorf("Best = %d, want 4", c.Best())
	}
	if diff := cmp.Diff([]EventKind{EventMoved, EventBestScore}, events.kinds()); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestUndoRestoresPreviousState(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	c := NewController(rng, DefaultOptions())
	c.Initialize(nil)

	for range 30 {
		before := c.State()
		dir := Directions[rng.Intn(len(Directions))]
		after, err := c.Move(dir)
		if err != nil {
			t.Fatal(err)
		}
		if after == before {
			continue
		}

		restored := c.Undo()
		if diff := cmp.Diff(before, restored); diff != "" {
			t.Fatalf("undo after %s did not restore state (-want +got):\n%s", dir, diff)
		}

		// Replay the move so the game progresses.
		if _, err := c.Move(dir); err != nil {
			t.Fatal(err)
		}
	}
}

func TestUndoEmptyHistoryIsNoop(t *testing.T) {
	start := State{Grid: Grid{{2, 0, 0, 0}}}
	c, _, events := newTestController(t, start, DefaultOptions())

	if got := c.Undo(); got != start {
		t.Errorf("Undo with empty history changed state:\n%s", got.Grid)
	}
	if len(events.events) != 0 {
		t.Errorf("no-op undo emitted %v", events.kinds())
	}
}

func TestHistoryIsBounded(t *testing.T) {
	opts := DefaultOptions()
	opts.HistoryLimit = 2
	c, _, _ := newTestController(t, State{Grid: Grid{{2, 0, 0, 0}}}, opts)

	var states []State
	for _, dir := range []Direction{DirRight, DirLeft, DirRight, DirLeft} {
		prev := c.State()
		got, err := c.Move(dir)
		if err != nil {
			t.Fatal(err)
		}
		if got == prev {
			t.Fatalf("move %s was rejected:\n%s", dir, prev.Grid)
		}
		states = append(states, got)
	}

	if c.HistoryLen() != 2 {
		t.Fatalf("HistoryLen = %d, want 2", c.HistoryLen())
	}

	// History now holds the states after moves 2 and 3.
	if got := c.Undo(); got != states[2] {
		t.Errorf("first undo =\n%swant\n%s", got.Grid, states[2].Grid)
	}
	if got := c.Undo(); got != states[1] {
		t.Errorf("second undo =\n%swant\n%s", got.Grid, states[1].Grid)
	}
	if c.CanUndo() {
		t.Error("history should be exhausted")
	}
	if got := c.Undo(); got != states[1] {
		t.Error("undo past the limit changed state")
	}
}

func TestHistoryDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.HistoryLimit = 0
	c, _, _ := newTestController(t, State{Grid: Grid{{2, 0, 0, 0}}}, opts)

	if _, err := c.Move(DirRight); err != nil {
		t.Fatal(err)
	}
	if c.CanUndo() {
		t.Error("undo should be unavailable with a zero history limit")
	}
}

func TestWinFiresOnce(t *testing.T) {
	start := State{Grid: Grid{{1024, 1024, 0, 0}}, Score: 5000}
	c, _, events := newTestController(t, start, DefaultOptions())

	got, err := c.Move(DirLeft)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Won || got.Status() != StatusWon {
		t.Fatalf("after merging 1024s: won=%v status=%s", got.Won, got.Status())
	}
	if got.Score != 7048 {
		t.Errorf("Score = %d, want 7048", got.Score)
	}

	// Blocked until the player chooses to continue.
	blocked, _ := c.Move(DirRight)
	if blocked != got {
		t.Error("move while won should be rejected")
	}

	cont := c.ContinueAfterWin()
	if cont.Status() != StatusContinuing || !cont.Won {
		t.Fatalf("after continue: status=%s won=%v", cont.Status(), cont.Won)
	}

	next, err := c.Move(DirRight)
	if err != nil {
		t.Fatal(err)
	}
	if next == cont {
		t.Fatal("move after continue should be accepted")
	}
	if !next.Won {
		t.Error("Won should stay set after continuing")
	}
	if n := events.count(EventWon); n != 1 {
		t.Errorf("EventWon fired %d times, want 1", n)
	}
	if n := events.count(EventContinued); n != 1 {
		t.Errorf("EventContinued fired %d times, want 1", n)
	}
}

func TestContinueAfterWinOnlyFromWon(t *testing.T) {
	start := State{Grid: Grid{{2, 0, 0, 0}}}
	c, _, events := newTestController(t, start, DefaultOptions())

	if got := c.ContinueAfterWin(); got != start {
		t.Error("continue while playing changed state")
	}
	if len(events.events) != 0 {
		t.Errorf("continue while playing emitted %v", events.kinds())
	}
}

func TestWinCheckDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.WinTile = 0
	c, _, events := newTestController(t, State{Grid: Grid{{1024, 1024, 0, 0}}}, opts)

	got, err := c.Move(DirLeft)
	if err != nil {
		t.Fatal(err)
	}
	if got.Won || events.count(EventWon) != 0 {
		t.Error("win should not fire when the win tile is disabled")
	}
}

// stuckAfterLeft moves left into a position with no legal moves once a 2
// spawns in the last empty cell.
var stuckAfterLeft = State{Grid: Grid{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{2, 4, 2, 4},
	{0, 4, 2, 4},
}}

func TestLossDetection(t *testing.T) {
	c, _, events := newTestController(t, stuckAfterLeft, DefaultOptions())

	got, err := c.Move(DirLeft)
	if err != nil {
		t.Fatal(err)
	}

	wantGrid := Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	if got.Grid != wantGrid {
		t.Fatalf("grid =\n%swant\n%s", got.Grid, wantGrid)
	}
	if HasAvailableMoves(got.Grid) {
		t.Error("HasAvailableMoves = true on a stuck board")
	}
	if !got.GameOver || got.Status() != StatusGameOver {
		t.Errorf("gameOver=%v status=%s, want game over", got.GameOver, got.Status())
	}
	if events.count(EventGameOver) != 1 {
		t.Errorf("EventGameOver fired %d times, want 1", events.count(EventGameOver))
	}

	for _, dir := range Directions {
		if after, _ := c.Move(dir); after != got {
			t.Errorf("move %s accepted after game over", dir)
		}
	}

	// Undo restores the flags verbatim.
	if prev := c.Undo(); prev != stuckAfterLeft {
		t.Errorf("undo after game over =\n%s", prev.Grid)
	}
	if c.Status() != StatusPlaying {
		t.Errorf("status after undo = %s, want playing", c.Status())
	}
}

func TestWonAndGameOverTogether(t *testing.T) {
	start := stuckAfterLeft
	start.Won = true
	start.Continued = true
	c, _, _ := newTestController(t, start, DefaultOptions())

	got, err := c.Move(DirLeft)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Won || !got.GameOver {
		t.Errorf("won=%v gameOver=%v, want both", got.Won, got.GameOver)
	}
	if got.Status() != StatusGameOver {
		t.Errorf("status = %s, want game over", got.Status())
	}
}

func TestNewGame(t *testing.T) {
	c, _, events := newTestController(t, State{Grid: Grid{{2, 2, 0, 0}}, Score: 100}, DefaultOptions())
	if _, err := c.Move(DirLeft); err != nil {
		t.Fatal(err)
	}
	best := c.Best()

	got := c.NewGame()

	if got.Score != 0 || got.Won || got.GameOver || got.Continued {
		t.Errorf("new game state not reset: %+v", got)
	}
	if n := Size*Size - len(got.Grid.EmptyCells()); n != 2 {
		t.Errorf("new game has %d tiles, want 2", n)
	}
	if c.CanUndo() {
		t.Error("history should be cleared")
	}
	if c.Best() != best {
		t.Errorf("Best = %d, want %d kept", c.Best(), best)
	}
	if events.kinds()[len(events.events)-1] != EventNewGame {
		t.Errorf("last event = %v, want new_game", events.kinds())
	}
}

func TestMoveInvalidDirection(t *testing.T) {
	start := State{Grid: Grid{{2, 0, 0, 0}}}
	c, _, events := newTestController(t, start, DefaultOptions())

	got, err := c.Move(Direction(42))
	if !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("err = %v, want ErrInvalidDirection", err)
	}
	if got != start || len(events.events) != 0 {
		t.Error("invalid direction changed state")
	}

	if _, err := c.MoveNamed("sideways"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("MoveNamed err = %v, want ErrInvalidDirection", err)
	}
	if _, err := c.MoveNamed("right"); err != nil {
		t.Errorf("MoveNamed(right): %v", err)
	}
}

func TestInitialize(t *testing.T) {
	saved := State{Grid: Grid{{2, 4, 8, 0}}, Score: 36}

	tests := []struct {
		name      string
		loader    Loader
		restored  bool
		wantBest  int
		wantScore int
	}{
		{name: "nil loader", loader: nil, wantBest: 0},
		{name: "nothing saved", loader: fakeLoader{best: 500}, wantBest: 500},
		{name: "valid state", loader: fakeLoader{state: saved, ok: true, best: 20}, restored: true, wantBest: 36, wantScore: 36},
		{
			name:     "corrupt grid",
			loader:   fakeLoader{state: State{Grid: Grid{{3, 0, 0, 0}}}, ok: true, best: 10},
			wantBest: 10,
		},
		{
			name:     "negative score",
			loader:   fakeLoader{state: State{Grid: Grid{{2}}, Score: -4}, ok: true},
			wantBest: 0,
		},
		{name: "negative best", loader: fakeLoader{best: -9}, wantBest: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(rand.New(rand.NewSource(1)), DefaultOptions())
			events := &eventLog{}
			c.Subscribe(events)

			got := c.Initialize(tt.loader)

			if tt.restored {
				if got != saved {
					t.Errorf("state not restored: %+v", got)
				}
			} else if n := Size*Size - len(got.Grid.EmptyCells()); n != 2 || got.Score != 0 {
				t.Errorf("expected a fresh game, got score %d with %d tiles", got.Score, n)
			}
			if c.Best() != tt.wantBest {
				t.Errorf("Best = %d, want %d", c.Best(), tt.wantBest)
			}
			if diff := cmp.Diff([]EventKind{EventRestored}, events.kinds()); diff != "" {
				t.Errorf("events (-want +got):\n%s", diff)
			}
		})
	}
}

// Random play keeps every invariant the engine promises.
func TestRandomPlayInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(2048))
	c := NewController(rng, DefaultOptions())
	c.Initialize(nil)

	prevScore := c.State().Score
	for i := range 5000 {
		var st State
		switch op := rng.Intn(20); {
		case op == 0:
			st = c.Undo()
			prevScore = st.Score
		case c.Status() == StatusWon:
			st = c.ContinueAfterWin()
		case c.Status() == StatusGameOver:
			st = c.NewGame()
			prevScore = 0
		default:
			var err error
			st, err = c.Move(Directions[rng.Intn(len(Directions))])
			if err != nil {
				t.Fatal(err)
			}
			if st.Score < prevScore {
				t.Fatalf("step %d: score dropped %d -> %d", i, prevScore, st.Score)
			}
			prevScore = st.Score
		}

		if err := st.Validate(); err != nil {
			t.Fatalf("step %d: %v\n%s", i, err, st.Grid)
		}
		if c.Best() < st.Score {
			t.Fatalf("step %d: best %d below score %d", i, c.Best(), st.Score)
		}
		if c.HistoryLen() > DefaultHistoryLimit {
			t.Fatalf("step %d: history grew to %d", i, c.HistoryLen())
		}
		if st.GameOver != !HasAvailableMoves(st.Grid) {
			t.Fatalf("step %d: gameOver=%v disagrees with board", i, st.GameOver)
		}
	}
}
