// Package engine provides the core rules logic for Freecell solitaire.
//
// The engine package implements the game mechanics including:
//   - Card and pile modeling (foundations, free cells, cascades)
//   - Deck construction, shuffling, and the round-robin deal
//   - Move legality checking and move execution
//   - The automatic "safe move" heuristic (foundation first, then a free cell)
//   - Game state management and configuration loading
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState holds the three pile collections,
// while GameConfig defines the pile counts and messages loaded from JSON
// files. PileRef is a discriminated locator naming a pile (and, for cascade
// sources, the first card of the run being moved).
//
// Usage:
//
//	config, err := engine.LoadConfigByName("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move the top card of the first cascade onto the first free cell
//	from := engine.PileRef{Kind: engine.CascadePile, Pile: 0, Card: 6}
//	to := engine.PileRef{Kind: engine.OpenPile, Pile: 0}
//	success := gameEngine.Move(from, to)
//	state := gameEngine.GetState()
//
// Game Rules:
//
// Cards are dealt round-robin into cascade piles. Cascade cards stack in
// descending rank with alternating colors; runs built that way move as a
// unit, limited by the supermove capacity granted by empty free cells and
// empty cascades. Foundations accumulate one suit each, ascending from the
// Ace. Free cells hold a single card. The deal is complete when all four
// foundations hold their full suit.
package engine
