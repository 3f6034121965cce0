package game

import "fmt"

// Status is the controller state derived from a State's flags.
type Status int

const (
	// StatusPlaying accepts moves.
	StatusPlaying Status = iota
	// StatusWon means the win tile was reached and the player has not chosen
	// to continue. Moves are rejected.
	StatusWon
	// StatusContinuing accepts moves after a win.
	StatusContinuing
	// StatusGameOver means no legal move remains. Moves are rejected.
	StatusGameOver
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusContinuing:
		return "continuing"
	case StatusGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// State is a complete game snapshot. States are values; the controller's
// history holds copies.
type State struct {
	Grid     Grid `json:"grid"`
	Score    int  `json:"score"`
	GameOver bool `json:"gameOver"`
	Won      bool `json:"won"`
	// Continued is set when the player keeps playing after a win.
	Continued bool `json:"continued,omitempty"`
}

// Status derives the controller state. GameOver takes precedence, so a
// player who continued past a win and then got stuck is over.
func (s State) Status() Status {
	switch {
	case s.GameOver:
		return StatusGameOver
	case s.Won && !s.Continued:
		return StatusWon
	case s.Won:
		return StatusContinuing
	default:
		return StatusPlaying
	}
}

// AcceptsMoves reports whether Move may change this state.
func (s State) AcceptsMoves() bool {
	st := s.Status()
	return st == StatusPlaying || st == StatusContinuing
}

// Validate checks a restored state against the board invariants.
func (s State) Validate() error {
	if s.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrCorruptState, s.Score)
	}
	return s.Grid.Validate()
}
