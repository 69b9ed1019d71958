package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tablegames/freecell/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Determine the config identifier to return - prefer the input configName if provided,
	// otherwise look up the config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID, // Return the config_id, not the display name
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name), // Return config_id consistently
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name), // Return config_id consistently
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, from, to engine.PileRef, redeal bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Get session
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	// Update last accessed time
	s.sessions.UpdateLastAccessed(sessionID)

	// Collect events
	events := []GameEvent{}

	// Handle redeal if requested
	if redeal {
		sess.Engine.Redeal()
		events = append(events, GameEvent{
			Type:      "redeal",
			Message:   "Fresh deal started",
			Timestamp: time.Now(),
		})
	}

	// Execute move
	foundationBefore := sess.Engine.FoundationProgress()
	success := sess.Engine.Move(from, to)
	state := sess.Engine.GetState()

	// Build result
	result := &MoveResult{
		Success:   success,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}

	if success {
		last := sess.Engine.GetLastMove()
		cards := 0
		if last != nil {
			cards = last.Cards
		}
		moveEvents := s.extractMoveEvents(sess, from, to, cards, false)
		result.Events = append(result.Events, moveEvents...)

		result.Step = &StepInfo{
			Idx:              1,
			From:             from,
			To:               to,
			Cards:            cards,
			FoundationBefore: foundationBefore,
			FoundationAfter:  sess.Engine.FoundationProgress(),
			Success:          true,
			Completed:        state.Completed,
		}
	}

	// Enrich state with decision aids
	state.Mobility = mobilityCode(engine.AnalyzeMobility(state))

	// Auto-save session after move
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after move: %v\n", sessionID, err)
	}

	return result, nil
}

// BulkMove executes multiple moves in sequence
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []MoveRequest, redeal bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	// Update last accessed
	s.sessions.UpdateLastAccessed(sessionID)

	// Initialize result and capture start snapshot
	state := sess.Engine.GetState()

	result := &BulkMoveResult{
		RequestedMoves:  len(moves),
		Events:          make([]GameEvent, 0),
		Success:         true,
		StartFoundation: engine.CountCards(state.Foundation),
		Completed:       state.Completed,
		Message:         state.Message,
	}

	// Handle redeal
	if redeal {
		sess.Engine.Redeal()
		result.Events = append(result.Events, GameEvent{
			Type:      "redeal",
			Message:   "Fresh deal started",
			Timestamp: time.Now(),
		})
		result.StartFoundation = 0
	}

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	// Execute moves
	for i, move := range moves {
		if sess.Engine.IsComplete() {
			result.StoppedReason = "game already completed"
			result.StopReasonCode = "completed"
			result.StoppedOnMove = result.MovesExecuted + 1
			break
		}

		foundationBefore := sess.Engine.FoundationProgress()
		success := sess.Engine.Move(move.From, move.To)

		if !success {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d rejected: %s -> %s", i+1, move.From, move.To)
			result.StopReasonCode = "invalid_move"
			result.StoppedOnMove = i + 1
			break
		}

		result.MovesExecuted++

		last := sess.Engine.GetLastMove()
		cards := 0
		if last != nil {
			cards = last.Cards
		}

		// Collect events for this move
		events := s.extractMoveEvents(sess, move.From, move.To, cards, false)
		result.Events = append(result.Events, events...)

		// Build step info for this executed move
		step := StepInfo{
			Idx:              i + 1,
			From:             move.From,
			To:               move.To,
			Cards:            cards,
			FoundationBefore: foundationBefore,
			FoundationAfter:  sess.Engine.FoundationProgress(),
			Success:          true,
			Completed:        sess.Engine.IsComplete(),
		}
		result.Steps = append(result.Steps, step)
	}

	result.GameState = sess.Engine.GetState()

	// Finalize snapshots
	endState := result.GameState
	result.EndFoundation = engine.CountCards(endState.Foundation)
	result.Completed = endState.Completed
	result.Message = endState.Message
	if result.Completed && result.StopReasonCode == "" {
		result.StopReasonCode = "completed"
	}

	// Decision aids
	result.Mobility = mobilityCode(engine.AnalyzeMobility(endState))
	endState.Mobility = result.Mobility

	// Auto-save session after bulk moves
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after bulk moves: %v\n", sessionID, err)
	}

	return result, nil
}

// AutoMove tries the automatic safe move for a source pile: foundation
// first, then a free cell for cascade sources
func (s *gameServiceImpl) AutoMove(ctx context.Context, sessionID string, from engine.PileRef) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	foundationBefore := sess.Engine.FoundationProgress()
	success := sess.Engine.AutoMove(from)
	state := sess.Engine.GetState()

	result := &MoveResult{
		Success:   success,
		GameState: state,
		Message:   state.Message,
		Events:    []GameEvent{},
	}

	if success {
		last := sess.Engine.GetLastMove()
		result.Destination = &last.To
		result.Events = s.extractMoveEvents(sess, from, last.To, last.Cards, true)
		result.Step = &StepInfo{
			Idx:              1,
			From:             from,
			To:               last.To,
			Cards:            last.Cards,
			FoundationBefore: foundationBefore,
			FoundationAfter:  sess.Engine.FoundationProgress(),
			Success:          true,
			Auto:             true,
			Completed:        state.Completed,
		}
	}

	state.Mobility = mobilityCode(engine.AnalyzeMobility(state))

	// Auto-save session after the move
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after auto move: %v\n", sessionID, err)
	}

	return result, nil
}

// Redeal deals a fresh game for a session, preserving cumulative history
func (s *gameServiceImpl) Redeal(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Redeal()
	// Enrich state with decision aids
	state.Mobility = mobilityCode(engine.AnalyzeMobility(state))

	// Auto-save session after redeal
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after redeal: %v\n", sessionID, err)
	}

	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.GetState()
	// Enrich state with decision aids
	state.Mobility = mobilityCode(engine.AnalyzeMobility(state))
	return state, nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of moves
	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			moves = history[start:end]
		}
	}

	// Ensure moves is not nil
	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// extractMoveEvents generates events from an executed move
func (s *gameServiceImpl) extractMoveEvents(sess *Session, from, to engine.PileRef, cards int, auto bool) []GameEvent {
	events := []GameEvent{}
	state := sess.Engine.GetState()

	// Basic move event
	eventType := "move"
	if auto {
		eventType = "auto_move"
	}
	events = append(events, GameEvent{
		Type:      eventType,
		Message:   fmt.Sprintf("Moved %d card(s) from %s to %s", cards, from, to),
		Timestamp: time.Now(),
		Pile:      &to,
	})

	// Foundation progress event
	if to.Kind == engine.FoundationPile {
		events = append(events, GameEvent{
			Type:      "foundation",
			Message:   fmt.Sprintf("Foundation progress: %d/%d", engine.CountCards(state.Foundation), engine.DeckSize),
			Timestamp: time.Now(),
			Pile:      &to,
		})
	}

	// Completion event
	if state.Completed {
		events = append(events, GameEvent{
			Type:      "completed",
			Message:   state.Message,
			Timestamp: time.Now(),
		})
	}

	return events
}

// mobilityCode reduces a mobility analysis line to its machine-friendly prefix
func mobilityCode(text string) string {
	t := strings.ToUpper(text)
	switch {
	case strings.HasPrefix(t, "LOCKED"):
		return "LOCKED"
	case strings.HasPrefix(t, "TIGHT"):
		return "TIGHT"
	case strings.HasPrefix(t, "CAUTION"):
		return "CAUTION"
	case strings.HasPrefix(t, "OPEN"):
		return "OPEN"
	case strings.HasPrefix(t, "WORKABLE"):
		return "WORKABLE"
	default:
		return "UNKNOWN"
	}
}
