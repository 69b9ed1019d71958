package engine

import "fmt"

// CountCards returns the total number of cards across a pile collection
func CountCards(piles [][]Card) int {
	count := 0
	for _, pile := range piles {
		count += len(pile)
	}
	return count
}

// CountEmptyPiles returns the number of piles holding no cards
func CountEmptyPiles(piles [][]Card) int {
	count := 0
	for _, pile := range piles {
		if len(pile) == 0 {
			count++
		}
	}
	return count
}

// FoundationEligibleTops returns the number of cascade piles whose top card
// could be sent to a foundation right now
func FoundationEligibleTops(state *GameState) int {
	count := 0
	for i, pile := range state.Cascade {
		if len(pile) == 0 {
			continue
		}
		top := PileRef{Kind: CascadePile, Pile: i, Card: len(pile) - 1}
		if _, ok := state.ValidFoundation(top); ok {
			count++
		}
	}
	return count
}

// ExposedAces returns the number of aces sitting on top of cascade piles
func ExposedAces(state *GameState) int {
	count := 0
	for _, pile := range state.Cascade {
		if len(pile) > 0 && pile[len(pile)-1].Rank == RankAce {
			count++
		}
	}
	return count
}

// LongestExposedBuild returns the length of the longest valid build ending
// at a cascade top across all cascade piles
func LongestExposedBuild(state *GameState) int {
	longest := 0
	for p, pile := range state.Cascade {
		for start := len(pile) - 1; start >= 0; start-- {
			if !state.IsBuild(p, start) {
				break
			}
			if run := len(pile) - start; run > longest {
				longest = run
			}
		}
	}
	return longest
}

// AnalyzeMobility classifies how much maneuvering room the current state
// offers, based on free cells and empty cascades
func AnalyzeMobility(state *GameState) string {
	freeCells := CountEmptyPiles(state.Open)
	emptyCascades := CountEmptyPiles(state.Cascade)

	switch {
	case freeCells == 0 && emptyCascades == 0:
		return "LOCKED: No free cells or empty cascades!"
	case freeCells == 0:
		return "TIGHT: No free cells remaining"
	case freeCells == 1 && emptyCascades == 0:
		return "CAUTION: One free cell left, no empty cascades"
	case emptyCascades > 0:
		return fmt.Sprintf("OPEN: %d free cells and %d empty cascades available", freeCells, emptyCascades)
	default:
		return fmt.Sprintf("WORKABLE: %d free cells available", freeCells)
	}
}
