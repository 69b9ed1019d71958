package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Redeal() *GameState
	IsComplete() bool
	FoundationProgress() int

	// Pile accessors (snapshots, never live slices)
	FoundationPiles() [][]Card
	OpenPiles() [][]Card
	CascadePiles() [][]Card
	NumOpen() int
	NumCascade() int

	// Move operations
	Move(from, to PileRef) bool
	CanMove(from, to PileRef) bool
	AutoMove(from PileRef) bool
	PossibleDestinations(from PileRef) []PileRef

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *GameConfig
	rng    *rand.Rand
}

// NewEngine creates a new game engine with the provided configuration,
// shuffling with a time-seeded source.
func NewEngine(config *GameConfig) (*GameEngine, error) {
	return NewEngineWithRand(config, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewEngineWithRand creates a new game engine with an injected randomness
// source. A nil rng disables shuffling, which tests rely on for
// deterministic deals.
func NewEngineWithRand(config *GameConfig, rng *rand.Rand) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	return &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config, rng),
		rng:    rng,
	}, nil
}

// NewEngineWithDefaults creates a new game engine with the default
// configuration (classic Freecell)
func NewEngineWithDefaults() *GameEngine {
	engine := &GameEngine{
		config: nil, // Will use defaults in InitGameStateFromConfig
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	engine.state = InitGameStateFromConfig(nil, engine.rng)
	return engine
}

// GetState returns a deep copy of the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state.Clone()
}

// SetState sets the game state (used for persistence loading). The engine
// keeps its own copy.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	e.state = state.Clone()
	return nil
}

// Redeal shuffles and deals a fresh game of the same configuration.
// Cumulative history and totals survive; the current-deal segment resets.
func (e *GameEngine) Redeal() *GameState {
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves

	e.state = InitGameStateFromConfig(e.config, e.rng)

	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal
	e.state.CurrentMoves = []MoveHistoryEntry{}
	e.state.CurrentMovesCount = 0
	if e.config != nil && e.config.Messages.Redeal != "" {
		e.state.Message = e.config.Messages.Redeal
	}

	return e.state.Clone()
}

// IsComplete reports whether all four foundations hold their full suit
func (e *GameEngine) IsComplete() bool {
	return e.state.Completed
}

// FoundationProgress returns the number of cards on the foundations
func (e *GameEngine) FoundationProgress() int {
	return CountCards(e.state.Foundation)
}

// FoundationPiles returns a copy of the foundation piles
func (e *GameEngine) FoundationPiles() [][]Card {
	return clonePiles(e.state.Foundation)
}

// OpenPiles returns a copy of the free cell piles
func (e *GameEngine) OpenPiles() [][]Card {
	return clonePiles(e.state.Open)
}

// CascadePiles returns a copy of the cascade piles
func (e *GameEngine) CascadePiles() [][]Card {
	return clonePiles(e.state.Cascade)
}

// NumOpen returns the configured free cell count
func (e *GameEngine) NumOpen() int {
	return e.state.NumOpen
}

// NumCascade returns the configured cascade count
func (e *GameEngine) NumCascade() int {
	return e.state.NumCascade
}

// Move attempts the move named by the two pile references. It is the
// validated path: legality is checked before any mutation, the message is
// updated from the config, and a history entry is recorded either way.
func (e *GameEngine) Move(from, to PileRef) bool {
	if e.config == nil {
		return false
	}

	success := !e.state.Completed && e.state.IsValidMove(from, to)
	cards := 0
	if success {
		cards = 1
		if from.Kind == CascadePile && to.Kind == CascadePile {
			cards = len(e.state.Cascade[from.Pile]) - from.Card
		}
		e.state.ExecuteMove(from, to)
	}
	e.state.AddMoveToHistory(from, to, cards, false, success)

	if success {
		if e.config.Messages.MoveOK != "" {
			e.state.Message = fmt.Sprintf(e.config.Messages.MoveOK, cards)
		}
		e.checkCompleted()
	} else {
		e.state.Message = e.config.Messages.InvalidMove
	}
	return success
}

// CanMove checks move legality without mutating state or history
func (e *GameEngine) CanMove(from, to PileRef) bool {
	if e.state.Completed {
		return false
	}
	return e.state.IsValidMove(from, to)
}

// AutoMove tries the automatic safe move for the named source pile:
// foundation first, then a free cell (cascade sources only). A history
// entry is recorded either way.
func (e *GameEngine) AutoMove(from PileRef) bool {
	if e.config == nil {
		return false
	}

	var to PileRef
	success := false
	if !e.state.Completed {
		to, success = e.state.AttemptAutoMove(from)
	}

	cards := 0
	if success {
		cards = 1
	}
	e.state.AddMoveToHistory(from, to, cards, true, success)

	if success {
		switch to.Kind {
		case FoundationPile:
			pile := e.state.Foundation[to.Pile]
			if e.config.Messages.AutoFoundation != "" {
				e.state.Message = fmt.Sprintf(e.config.Messages.AutoFoundation, pile[len(pile)-1])
			}
		case OpenPile:
			if e.config.Messages.AutoOpen != "" {
				e.state.Message = fmt.Sprintf(e.config.Messages.AutoOpen, e.state.Open[to.Pile][0])
			}
		}
		e.checkCompleted()
	} else if e.config.Messages.NoAutoMove != "" {
		e.state.Message = e.config.Messages.NoAutoMove
	}
	return success
}

// PossibleDestinations returns every pile reference the given source could
// legally move to in the current state
func (e *GameEngine) PossibleDestinations(from PileRef) []PileRef {
	var possible []PileRef
	for i := range e.state.Foundation {
		to := PileRef{Kind: FoundationPile, Pile: i}
		if e.CanMove(from, to) {
			possible = append(possible, to)
		}
	}
	for i := range e.state.Open {
		to := PileRef{Kind: OpenPile, Pile: i}
		if e.CanMove(from, to) {
			possible = append(possible, to)
		}
	}
	for i := range e.state.Cascade {
		to := PileRef{Kind: CascadePile, Pile: i}
		if e.CanMove(from, to) {
			possible = append(possible, to)
		}
	}
	return possible
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and deals a fresh game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = InitGameStateFromConfig(config, e.rng)
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return append([]MoveHistoryEntry{}, e.state.MoveHistory...)
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	entry := e.state.MoveHistory[len(e.state.MoveHistory)-1]
	return &entry
}

// checkCompleted marks the deal complete once every card has reached the
// foundations
func (e *GameEngine) checkCompleted() {
	if CountCards(e.state.Foundation) != DeckSize {
		return
	}
	e.state.Completed = true
	if e.config != nil && e.config.Messages.Completed != "" {
		e.state.Message = fmt.Sprintf(e.config.Messages.Completed, e.state.CurrentMovesCount)
	}
}
