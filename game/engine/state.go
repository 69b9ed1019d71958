package engine

import "time"

// Clone returns a deep copy of the game state. Accessors hand out clones so
// callers can never mutate the engine's live piles.
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	out := *gs
	out.Foundation = clonePiles(gs.Foundation)
	out.Open = clonePiles(gs.Open)
	out.Cascade = clonePiles(gs.Cascade)
	out.MoveHistory = append([]MoveHistoryEntry{}, gs.MoveHistory...)
	out.CurrentMoves = append([]MoveHistoryEntry{}, gs.CurrentMoves...)
	return &out
}

func clonePiles(piles [][]Card) [][]Card {
	out := make([][]Card, len(piles))
	for i, pile := range piles {
		out[i] = append([]Card{}, pile...)
	}
	return out
}

// AddMoveToHistory appends a move attempt to the game's move history
func (gs *GameState) AddMoveToHistory(from, to PileRef, cards int, auto, success bool) {
	entry := MoveHistoryEntry{
		From:       from,
		To:         to,
		Cards:      cards,
		Auto:       auto,
		Timestamp:  time.Now().Unix(),
		Success:    success,
		MoveNumber: gs.TotalMoves + 1,
	}
	// Append to cumulative history (never cleared by redeal) and increment
	// total, then mirror into the current-deal segment.
	gs.MoveHistory = append(gs.MoveHistory, entry)
	gs.TotalMoves++

	gs.CurrentMoves = append(gs.CurrentMoves, entry)
	gs.CurrentMovesCount++
}
