// Package config provides configuration management for the Freecell game.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Table layout (number of free cells and cascade piles)
//   - Game messages for various events
//   - Victory condition text
//
// Available Configurations:
//
// The package supports multiple difficulty levels and table layouts:
//   - classic: Standard Freecell with four free cells and eight cascades
//   - relaxed: Six free cells for an easier game
//   - challenge: Two free cells and six cascades
//   - spread: Six free cells spread over ten cascades
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("relaxed")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Pile count bounds for free cells and cascades
//   - Required message templates
//   - Format verbs in templated messages
package config
