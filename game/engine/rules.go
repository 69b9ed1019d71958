package engine

// IsStackable reports whether over can be placed on under in a cascade:
// exactly one rank below and the opposite color.
func IsStackable(under, over Card) bool {
	return over.Rank == under.Rank-1 && over.Color() != under.Color()
}

// foundationAccepts reports whether a foundation pile can take c: an empty
// foundation takes any Ace, a started one takes the next rank of its suit.
func foundationAccepts(pile []Card, c Card) bool {
	if len(pile) == 0 {
		return c.Rank == RankAce
	}
	top := pile[len(pile)-1]
	return top.Suit == c.Suit && top.Rank == c.Rank-1
}

// IsBuild reports whether the run from cardIndex to the top of the given
// cascade pile is a valid build: strictly descending rank with alternating
// colors. A single top card is trivially a build.
func (gs *GameState) IsBuild(pile, cardIndex int) bool {
	if pile < 0 || pile >= len(gs.Cascade) {
		return false
	}
	cards := gs.Cascade[pile]
	if cardIndex < 0 || cardIndex >= len(cards) {
		return false
	}
	for i := cardIndex; i < len(cards)-1; i++ {
		if !IsStackable(cards[i], cards[i+1]) {
			return false
		}
	}
	return true
}

// NumCanMove computes the maximum run length relocatable in one logical move
// to the given cascade pile: (empty free cells + 1) * 2^(empty cascades).
// If the destination is itself empty it does not count toward the empty
// cascade multiplier, since moving into it consumes that slot.
func (gs *GameState) NumCanMove(destPile int) int {
	emptyOpen := 0
	for _, p := range gs.Open {
		if len(p) == 0 {
			emptyOpen++
		}
	}
	emptyCascade := 0
	for i, p := range gs.Cascade {
		if len(p) != 0 || i == destPile {
			continue
		}
		emptyCascade++
	}
	return (emptyOpen + 1) << emptyCascade
}

// ValidFoundation scans the foundations in index order and returns the index
// of the first pile that accepts the card named by from (a cascade card or
// the sole card of a free cell). The second return is false when no
// foundation matches or the reference names no card.
func (gs *GameState) ValidFoundation(from PileRef) (int, bool) {
	card, ok := gs.cardAt(from)
	if !ok {
		return 0, false
	}
	for i, pile := range gs.Foundation {
		if foundationAccepts(pile, card) {
			return i, true
		}
	}
	return 0, false
}

// FirstAvailableOpen returns the index of the first empty free cell, or
// false when every free cell is occupied.
func (gs *GameState) FirstAvailableOpen() (int, bool) {
	for i, pile := range gs.Open {
		if len(pile) == 0 {
			return i, true
		}
	}
	return 0, false
}

// IsValidMove is a pure predicate deciding whether the move named by the two
// pile references is legal. It never mutates state. Foundations are
// write-only destinations and are rejected as sources, as is any move whose
// references are out of range or that names the same pile twice.
func (gs *GameState) IsValidMove(from, to PileRef) bool {
	if !gs.validRef(from) || !gs.validRef(to) {
		return false
	}
	if from.Kind == to.Kind && from.Pile == to.Pile {
		return false
	}
	if from.Kind == FoundationPile {
		return false
	}

	switch {
	case from.Kind == CascadePile && to.Kind == OpenPile:
		src := gs.Cascade[from.Pile]
		if _, ok := gs.FirstAvailableOpen(); !ok {
			return false
		}
		// Single-card move only: the run start must be the top card.
		return len(src) > 0 && from.Card == len(src)-1 && len(gs.Open[to.Pile]) == 0

	case from.Kind == CascadePile && to.Kind == CascadePile:
		src := gs.Cascade[from.Pile]
		if from.Card < 0 || from.Card >= len(src) {
			return false
		}
		if !gs.IsBuild(from.Pile, from.Card) {
			return false
		}
		dst := gs.Cascade[to.Pile]
		if len(dst) == 0 {
			// Any valid build may land on an empty cascade regardless of
			// supermove capacity.
			return true
		}
		if len(src)-from.Card > gs.NumCanMove(to.Pile) {
			return false
		}
		return IsStackable(dst[len(dst)-1], src[from.Card])

	case from.Kind == CascadePile && to.Kind == FoundationPile:
		card, ok := gs.cardAt(from)
		return ok && foundationAccepts(gs.Foundation[to.Pile], card)

	case from.Kind == OpenPile && to.Kind == CascadePile:
		if len(gs.Open[from.Pile]) == 0 {
			return false
		}
		dst := gs.Cascade[to.Pile]
		if len(dst) == 0 {
			return true
		}
		return IsStackable(dst[len(dst)-1], gs.Open[from.Pile][0])

	case from.Kind == OpenPile && to.Kind == OpenPile:
		return len(gs.Open[from.Pile]) > 0 && len(gs.Open[to.Pile]) == 0

	case from.Kind == OpenPile && to.Kind == FoundationPile:
		card, ok := gs.cardAt(from)
		return ok && foundationAccepts(gs.Foundation[to.Pile], card)
	}

	return false
}

// ExecuteMove performs the pile mutation for a move. It does not re-check
// legality: callers must validate with IsValidMove first (the Engine's Move
// method is the validated path). A cascade-to-cascade move detaches the
// whole run from the source card index; every other source pops one card.
func (gs *GameState) ExecuteMove(from, to PileRef) {
	if from.Kind == CascadePile && to.Kind == CascadePile {
		src := gs.Cascade[from.Pile]
		gs.Cascade[to.Pile] = append(gs.Cascade[to.Pile], src[from.Card:]...)
		gs.Cascade[from.Pile] = src[:from.Card]
		return
	}

	var card Card
	switch from.Kind {
	case CascadePile:
		src := gs.Cascade[from.Pile]
		card = src[len(src)-1]
		gs.Cascade[from.Pile] = src[:len(src)-1]
	case OpenPile:
		card = gs.Open[from.Pile][0]
		gs.Open[from.Pile] = []Card{}
	}

	switch to.Kind {
	case FoundationPile:
		gs.Foundation[to.Pile] = append(gs.Foundation[to.Pile], card)
	case OpenPile:
		gs.Open[to.Pile] = append(gs.Open[to.Pile], card)
	case CascadePile:
		gs.Cascade[to.Pile] = append(gs.Cascade[to.Pile], card)
	}
}

// AttemptAutoMove tries to relocate the top card of the named pile without
// full rule re-validation: a cascade source goes to a matching foundation
// first, then to the first empty free cell; a free cell source only goes to
// a foundation. It returns the destination used and whether a move was
// made; state mutates only on success.
func (gs *GameState) AttemptAutoMove(from PileRef) (PileRef, bool) {
	if !gs.validRef(from) {
		return PileRef{}, false
	}

	switch from.Kind {
	case CascadePile:
		src := gs.Cascade[from.Pile]
		if len(src) == 0 {
			return PileRef{}, false
		}
		top := PileRef{Kind: CascadePile, Pile: from.Pile, Card: len(src) - 1}
		if f, ok := gs.ValidFoundation(top); ok {
			to := PileRef{Kind: FoundationPile, Pile: f}
			gs.ExecuteMove(top, to)
			return to, true
		}
		if o, ok := gs.FirstAvailableOpen(); ok {
			to := PileRef{Kind: OpenPile, Pile: o}
			gs.ExecuteMove(top, to)
			return to, true
		}

	case OpenPile:
		if len(gs.Open[from.Pile]) == 0 {
			return PileRef{}, false
		}
		if f, ok := gs.ValidFoundation(from); ok {
			to := PileRef{Kind: FoundationPile, Pile: f}
			gs.ExecuteMove(from, to)
			return to, true
		}
	}

	return PileRef{}, false
}

// cardAt resolves the candidate card named by a source reference: the card
// at the run-start index for cascades, the sole card for free cells.
func (gs *GameState) cardAt(from PileRef) (Card, bool) {
	switch from.Kind {
	case CascadePile:
		if from.Pile < 0 || from.Pile >= len(gs.Cascade) {
			return Card{}, false
		}
		pile := gs.Cascade[from.Pile]
		if from.Card < 0 || from.Card >= len(pile) {
			return Card{}, false
		}
		return pile[from.Card], true
	case OpenPile:
		if from.Pile < 0 || from.Pile >= len(gs.Open) {
			return Card{}, false
		}
		pile := gs.Open[from.Pile]
		if len(pile) == 0 {
			return Card{}, false
		}
		return pile[0], true
	}
	return Card{}, false
}

// validRef reports whether a reference names an existing pile.
func (gs *GameState) validRef(ref PileRef) bool {
	switch ref.Kind {
	case FoundationPile:
		return ref.Pile >= 0 && ref.Pile < len(gs.Foundation)
	case OpenPile:
		return ref.Pile >= 0 && ref.Pile < len(gs.Open)
	case CascadePile:
		return ref.Pile >= 0 && ref.Pile < len(gs.Cascade)
	}
	return false
}
