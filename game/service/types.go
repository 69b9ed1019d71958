package service

import (
	"time"

	"github.com/tablegames/freecell/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveRequest names a single move in a bulk call
type MoveRequest struct {
	From engine.PileRef `json:"from"`
	To   engine.PileRef `json:"to"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success   bool              `json:"success"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
	Step      *StepInfo         `json:"step,omitempty"`

	// For auto moves: the destination the engine chose
	Destination *engine.PileRef `json:"destination,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // Machine-friendly code: invalid_move|completed
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartFoundation int `json:"start_foundation"` // cards on foundations before this call
	EndFoundation   int `json:"end_foundation"`   // cards on foundations after this call

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Final status aids
	Completed bool   `json:"completed"`
	Message   string `json:"message,omitempty"`
	Mobility  string `json:"mobility,omitempty"`
}

// StepInfo is a compact record for each executed move in the bulk call
type StepInfo struct {
	Idx              int            `json:"idx"`
	From             engine.PileRef `json:"from"`
	To               engine.PileRef `json:"to"`
	Cards            int            `json:"cards"`
	FoundationBefore int            `json:"foundation_before"`
	FoundationAfter  int            `json:"foundation_after"`
	Success          bool           `json:"success"`
	Auto             bool           `json:"auto,omitempty"`
	Completed        bool           `json:"completed,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "auto_move", "foundation", "completed", "redeal"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Pile      *engine.PileRef `json:"pile,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	NumOpen     int    `json:"num_open"`
	NumCascade  int    `json:"num_cascade"`
}
