package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// ValidateGameConfig validates a game configuration for correctness
func ValidateGameConfig(config *GameConfig) error {
	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate pile counts
	if config.NumOpen < MinPileCount || config.NumOpen > MaxPileCount {
		return fmt.Errorf("config validation: num_open must be between %d and %d, got %d", MinPileCount, MaxPileCount, config.NumOpen)
	}
	if config.NumCascade < MinPileCount || config.NumCascade > MaxPileCount {
		return fmt.Errorf("config validation: num_cascade must be between %d and %d, got %d", MinPileCount, MaxPileCount, config.NumCascade)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.InvalidMove == "" {
		return fmt.Errorf("config validation: messages.invalid_move is required")
	}
	if config.Messages.Completed == "" {
		return fmt.Errorf("config validation: messages.completed is required")
	}

	// Validate format strings
	if !strings.Contains(config.Messages.Completed, "%d") {
		return fmt.Errorf("config validation: messages.completed must contain %%d for the move count")
	}
	if config.Messages.MoveOK != "" && !strings.Contains(config.Messages.MoveOK, "%d") {
		return fmt.Errorf("config validation: messages.move_ok must contain %%d for the run length")
	}
	if config.Messages.AutoFoundation != "" && !strings.Contains(config.Messages.AutoFoundation, "%s") {
		return fmt.Errorf("config validation: messages.auto_foundation must contain %%s for the card")
	}
	if config.Messages.AutoOpen != "" && !strings.Contains(config.Messages.AutoOpen, "%s") {
		return fmt.Errorf("config validation: messages.auto_open must contain %%s for the card")
	}

	return nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		// If filename starts with "configs/", replace with CONFIG_DIR
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Validate the loaded configuration
	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a game configuration by name from the configs directory
func LoadConfigByName(configName string) (*GameConfig, error) {
	// Add .json extension if not present
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	// Load and parse the config
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %v", configName, err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %v", configName, err)
	}

	// Validate the config
	if err := ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %v", configName, err)
	}

	return &config, nil
}

// InitGameStateFromConfig creates a new game state using the provided
// configuration: empty foundations and free cells, a shuffled deck dealt
// round-robin into the cascades. A nil rng skips the shuffle so tests can
// rely on a deterministic deal.
func InitGameStateFromConfig(config *GameConfig, rng *rand.Rand) *GameState {
	if config == nil {
		// Use default config if not provided
		config = &GameConfig{
			Name:        "classic",
			Description: "Standard Freecell: four free cells, eight cascades",
			NumOpen:     4,
			NumCascade:  8,
		}
		config.Messages.Welcome = "Welcome! Build the foundations from Ace to King."
		config.Messages.MoveOK = "Moved %d card(s)"
		config.Messages.InvalidMove = "That move is not legal"
		config.Messages.AutoFoundation = "Sent %s to its foundation"
		config.Messages.AutoOpen = "Parked %s in a free cell"
		config.Messages.NoAutoMove = "No automatic move available"
		config.Messages.Completed = "You won in %d moves!"
		config.Messages.Redeal = "New deal ready"
	}

	foundation := make([][]Card, FoundationCount)
	for i := range foundation {
		foundation[i] = []Card{}
	}
	open := make([][]Card, config.NumOpen)
	for i := range open {
		open[i] = []Card{}
	}
	cascade := make([][]Card, config.NumCascade)
	for i := range cascade {
		cascade[i] = []Card{}
	}

	// Deal the shuffled deck round-robin by deck position
	deck := ShuffleDeck(NewDeck(), rng)
	for i, card := range deck {
		p := i % config.NumCascade
		cascade[p] = append(cascade[p], card)
	}

	return &GameState{
		Foundation:        foundation,
		Open:              open,
		Cascade:           cascade,
		NumOpen:           config.NumOpen,
		NumCascade:        config.NumCascade,
		Message:           config.Messages.Welcome,
		Completed:         false,
		ConfigName:        config.Name,
		MoveHistory:       []MoveHistoryEntry{},
		TotalMoves:        0,
		CurrentMoves:      []MoveHistoryEntry{},
		CurrentMovesCount: 0,
	}
}
