package engine

import "fmt"

// Suit identifies one of the four card suits
type Suit string

const (
	Spades   Suit = "S"
	Clubs    Suit = "C"
	Diamonds Suit = "D"
	Hearts   Suit = "H"
)

// Suits lists all suits in deck order
var Suits = []Suit{Spades, Clubs, Diamonds, Hearts}

// Color is the derived card color used by the stacking rule
type Color string

const (
	Black Color = "black"
	Red   Color = "red"
)

// Rank constants; Ace is low, King is high
const (
	RankAce  = 1
	RankKing = 13
)

const (
	// FoundationCount is fixed at one foundation per suit
	FoundationCount = 4

	// DeckSize is the standard single-deck card count
	DeckSize = 52

	// Validation constants
	MinPileCount = 1
	MaxPileCount = 52
	MaxBulkMoves = 50
)

// Card is an immutable rank/suit pair
type Card struct {
	Rank int  `json:"rank"` // 1 (Ace) .. 13 (King)
	Suit Suit `json:"suit"`
}

// Color returns black for spades/clubs and red for diamonds/hearts
func (c Card) Color() Color {
	if c.Suit == Spades || c.Suit == Clubs {
		return Black
	}
	return Red
}

var rankLabels = map[int]string{RankAce: "A", 11: "J", 12: "Q", RankKing: "K"}

// String renders a card as a compact label like "AS", "10H", or "KD"
func (c Card) String() string {
	if label, ok := rankLabels[c.Rank]; ok {
		return label + string(c.Suit)
	}
	return fmt.Sprintf("%d%s", c.Rank, c.Suit)
}

// PileKind discriminates the three pile collections
type PileKind string

const (
	FoundationPile PileKind = "foundation"
	OpenPile       PileKind = "open"
	CascadePile    PileKind = "cascade"
)

// PileRef locates a pile, and for cascade sources the first card of the
// run being moved (cards from Card to the pile's end, inclusive)
type PileRef struct {
	Kind PileKind `json:"kind"`
	Pile int      `json:"pile"`
	Card int      `json:"card,omitempty"`
}

func (r PileRef) String() string {
	if r.Kind == CascadePile {
		return fmt.Sprintf("%s[%d]@%d", r.Kind, r.Pile, r.Card)
	}
	return fmt.Sprintf("%s[%d]", r.Kind, r.Pile)
}

// GameConfig represents a game variant loaded from JSON
type GameConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	NumOpen     int    `json:"num_open"`
	NumCascade  int    `json:"num_cascade"`
	Messages    struct {
		Welcome        string `json:"welcome"`
		MoveOK         string `json:"move_ok"`
		InvalidMove    string `json:"invalid_move"`
		AutoFoundation string `json:"auto_foundation"`
		AutoOpen       string `json:"auto_open"`
		NoAutoMove     string `json:"no_auto_move"`
		Completed      string `json:"completed"`
		Redeal         string `json:"redeal"`
	} `json:"messages"`
}

// GameState holds the complete state of one Freecell deal. Piles are
// ordered bottom-to-top; every card of the deck lives in exactly one pile.
type GameState struct {
	Foundation [][]Card `json:"foundation"`
	Open       [][]Card `json:"open"`
	Cascade    [][]Card `json:"cascade"`

	NumOpen    int    `json:"num_open"`
	NumCascade int    `json:"num_cascade"`
	Message    string `json:"message"`
	Completed  bool   `json:"completed"`
	ConfigName string `json:"config_name"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last redeal. It mirrors
	// MoveHistory entries but gets cleared on redeal while MoveHistory
	// remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`

	// Computed helper view (not required for core game logic)
	Mobility string `json:"mobility,omitempty"`
}

// MoveHistoryEntry represents a single move attempt in the game history
type MoveHistoryEntry struct {
	From       PileRef `json:"from"`
	To         PileRef `json:"to"`
	Cards      int     `json:"cards"` // run length moved; 0 for a rejected move
	Auto       bool    `json:"auto"`
	Timestamp  int64   `json:"timestamp"`
	Success    bool    `json:"success"`
	MoveNumber int     `json:"move_number"`
}
