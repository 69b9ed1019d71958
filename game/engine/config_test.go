package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTestConfig returns a valid classic configuration for tests
func createTestConfig() *GameConfig {
	config := &GameConfig{
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
	return config
}

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GameConfig)
		wantErr string
	}{
		{"valid config", func(c *GameConfig) {}, ""},
		{"missing name", func(c *GameConfig) { c.Name = "" }, "name is required"},
		{"missing description", func(c *GameConfig) { c.Description = "" }, "description is required"},
		{"zero free cells allowed lower bound", func(c *GameConfig) { c.NumOpen = 0 }, "num_open must be between"},
		{"too many cascades", func(c *GameConfig) { c.NumCascade = 53 }, "num_cascade must be between"},
		{"missing welcome", func(c *GameConfig) { c.Messages.Welcome = "" }, "messages.welcome is required"},
		{"missing invalid_move", func(c *GameConfig) { c.Messages.InvalidMove = "" }, "messages.invalid_move is required"},
		{"missing completed", func(c *GameConfig) { c.Messages.Completed = "" }, "messages.completed is required"},
		{"completed without move count verb", func(c *GameConfig) { c.Messages.Completed = "You won!" }, "must contain %d"},
		{"move_ok without run length verb", func(c *GameConfig) { c.Messages.MoveOK = "ok" }, "must contain %d"},
		{"auto_foundation without card verb", func(c *GameConfig) { c.Messages.AutoFoundation = "to foundation" }, "must contain %s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createTestConfig()
			tt.mutate(config)
			err := ValidateGameConfig(config)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected valid config, got error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func writeTestConfigFile(t *testing.T, dir, name string) string {
	t.Helper()
	data := `{
		"name": "classic",
		"description": "Standard Freecell: four free cells, eight cascades",
		"num_open": 4,
		"num_cascade": 8,
		"messages": {
			"welcome": "Welcome! Build the foundations from Ace to King.",
			"move_ok": "Moved %d card(s)",
			"invalid_move": "That move is not legal",
			"auto_foundation": "Sent %s to its foundation",
			"auto_open": "Parked %s in a free cell",
			"no_auto_move": "No automatic move available",
			"completed": "You won in %d moves!",
			"redeal": "New deal ready"
		}
	}`
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeTestConfigFile(t, dir, "classic.json")

	config, err := LoadGameConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Name != "classic" || config.NumOpen != 4 || config.NumCascade != 8 {
		t.Errorf("Loaded config = %+v, want classic 4/8", config)
	}
	if config.Messages.Welcome == "" {
		t.Error("Expected welcome message to be loaded")
	}

	if _, err := LoadGameConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	badPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badPath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write bad config: %v", err)
	}
	if _, err := LoadGameConfig(badPath); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestLoadGameConfig_ConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	writeTestConfigFile(t, dir, "classic.json")
	t.Setenv("CONFIG_DIR", dir)

	config, err := LoadGameConfig("configs/classic.json")
	if err != nil {
		t.Fatalf("Failed to load config via CONFIG_DIR: %v", err)
	}
	if config.Name != "classic" {
		t.Errorf("Loaded config name = %q, want classic", config.Name)
	}
}

func TestLoadConfigByName(t *testing.T) {
	dir := t.TempDir()
	configsDir := filepath.Join(dir, "configs")
	if err := os.Mkdir(configsDir, 0755); err != nil {
		t.Fatalf("Failed to create configs dir: %v", err)
	}
	writeTestConfigFile(t, configsDir, "classic.json")
	t.Chdir(dir)

	// The .json suffix is optional
	config, err := LoadConfigByName("classic")
	if err != nil {
		t.Fatalf("Failed to load config by name: %v", err)
	}
	if config.NumCascade != 8 {
		t.Errorf("NumCascade = %d, want 8", config.NumCascade)
	}

	if _, err := LoadConfigByName("classic.json"); err != nil {
		t.Errorf("Failed to load config with explicit suffix: %v", err)
	}

	if _, err := LoadConfigByName("nonexistent"); err == nil {
		t.Error("Expected error for unknown config name")
	} else if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Error = %q, want it to mention not found", err.Error())
	}
}

func TestInitGameStateFromConfig(t *testing.T) {
	state := InitGameStateFromConfig(createTestConfig(), nil)

	if len(state.Foundation) != FoundationCount {
		t.Errorf("Expected %d foundations, got %d", FoundationCount, len(state.Foundation))
	}
	if len(state.Open) != 4 || len(state.Cascade) != 8 {
		t.Errorf("Expected 4 free cells and 8 cascades, got %d and %d", len(state.Open), len(state.Cascade))
	}
	for i, pile := range state.Foundation {
		if len(pile) != 0 {
			t.Errorf("Foundation %d not empty after deal: %v", i, pile)
		}
	}
	for i, pile := range state.Open {
		if len(pile) != 0 {
			t.Errorf("Free cell %d not empty after deal: %v", i, pile)
		}
	}

	if got := CountCards(state.Cascade); got != DeckSize {
		t.Errorf("Expected %d cards in the cascades, got %d", DeckSize, got)
	}

	// Round-robin deal: pile sizes differ by at most one, longer piles first
	min, max := len(state.Cascade[0]), len(state.Cascade[0])
	for _, pile := range state.Cascade {
		if len(pile) < min {
			min = len(pile)
		}
		if len(pile) > max {
			max = len(pile)
		}
	}
	if max-min > 1 {
		t.Errorf("Cascade sizes differ by more than one: min %d, max %d", min, max)
	}
	for i := 0; i < 4; i++ {
		if len(state.Cascade[i]) != 7 {
			t.Errorf("Cascade %d has %d cards, want 7", i, len(state.Cascade[i]))
		}
	}
	for i := 4; i < 8; i++ {
		if len(state.Cascade[i]) != 6 {
			t.Errorf("Cascade %d has %d cards, want 6", i, len(state.Cascade[i]))
		}
	}

	// Nil rng deals the ordered deck: deck position i lands on pile i mod 8
	if state.Cascade[0][0] != (Card{RankAce, Spades}) {
		t.Errorf("Cascade 0 bottom = %v, want AS", state.Cascade[0][0])
	}
	if state.Cascade[1][0] != (Card{2, Spades}) {
		t.Errorf("Cascade 1 bottom = %v, want 2S", state.Cascade[1][0])
	}

	if state.ConfigName != "classic" {
		t.Errorf("ConfigName = %q, want classic", state.ConfigName)
	}
	if state.Message == "" {
		t.Error("Expected the welcome message to be set")
	}
	if state.Completed {
		t.Error("Fresh deal marked completed")
	}
	if state.MoveHistory == nil || state.CurrentMoves == nil {
		t.Error("History slices must be initialized, not nil")
	}
}

func TestInitGameStateFromConfig_NilConfigUsesDefaults(t *testing.T) {
	state := InitGameStateFromConfig(nil, nil)

	if len(state.Open) != 4 || len(state.Cascade) != 8 {
		t.Errorf("Expected default 4/8 layout, got %d/%d", len(state.Open), len(state.Cascade))
	}
	if state.ConfigName != "classic" {
		t.Errorf("ConfigName = %q, want classic", state.ConfigName)
	}
}

func TestInitGameStateFromConfig_VariantLayouts(t *testing.T) {
	config := createTestConfig()
	config.Name = "spread"
	config.NumOpen = 6
	config.NumCascade = 10

	state := InitGameStateFromConfig(config, nil)
	if len(state.Open) != 6 || len(state.Cascade) != 10 {
		t.Fatalf("Expected 6/10 layout, got %d/%d", len(state.Open), len(state.Cascade))
	}
	// 52 = 5*10 + 2: two piles of six, eight of five
	if len(state.Cascade[0]) != 6 || len(state.Cascade[1]) != 6 || len(state.Cascade[2]) != 5 {
		t.Errorf("Unexpected deal sizes: %d, %d, %d", len(state.Cascade[0]), len(state.Cascade[1]), len(state.Cascade[2]))
	}
	if got := CountCards(state.Cascade); got != DeckSize {
		t.Errorf("Expected %d cards dealt, got %d", DeckSize, got)
	}
}
