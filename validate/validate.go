// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Pile counts (free cells and cascades within sane bounds)
//   - Required message keys and their format verbs
//   - Dealability: how the 52-card deck distributes across the cascades
//   - Playability: opening move capacity for the configured pile counts
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config mirrors the JSON schema for a game configuration.
type Config struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	NumOpen     int               `json:"num_open"`
	NumCascade  int               `json:"num_cascade"`
	Messages    map[string]string `json:"messages"`
}

const deckSize = 52

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// It performs structural checks, message presence and verb checks, and
// deal distribution analysis.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing config name")
	}

	// Validate pile counts
	if config.NumOpen < 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("num_open must be at least 1, got %d", config.NumOpen))
	}
	if config.NumOpen > deckSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("num_open cannot exceed %d, got %d", deckSize, config.NumOpen))
	}
	if config.NumCascade < 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("num_cascade must be at least 1, got %d", config.NumCascade))
	}
	if config.NumCascade > deckSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("num_cascade cannot exceed %d, got %d", deckSize, config.NumCascade))
	}

	// Validate messages and their format verbs
	requiredMessages := map[string]string{
		"welcome":         "",
		"move_ok":         "%d",
		"invalid_move":    "",
		"auto_foundation": "%s",
		"auto_open":       "%s",
		"no_auto_move":    "",
		"completed":       "%d",
		"redeal":          "",
	}
	for msg, verb := range requiredMessages {
		text, exists := config.Messages[msg]
		if !exists {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", msg))
			continue
		}
		if verb != "" && !strings.Contains(text, verb) {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Message %s must contain %s verb", msg, verb))
		}
	}

	// Deal distribution analysis
	if result.Valid {
		dealResult := validateDeal(config.NumOpen, config.NumCascade)
		if !dealResult.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, dealResult.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Free cells: %d", config.NumOpen))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Cascades: %d", config.NumCascade))
	}

	return result
}

// validateDeal checks how the deck distributes across the cascades and that
// the configuration leaves a playable opening position. It reports the deal
// shape and the opening supermove capacity.
func validateDeal(numOpen, numCascade int) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if numCascade < 1 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot analyze deal: no cascades")
		return result
	}

	base := deckSize / numCascade
	extra := deckSize % numCascade

	// Every cascade must receive at least one card; otherwise the play area
	// starts with permanently empty columns, which trivializes the deal.
	if base == 0 {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Deal failure: %d cascades for %d cards leaves %d cascades empty at the start",
				numCascade, deckSize, numCascade-deckSize))
		return result
	}

	// Opening capacity: no cells or cascades are empty right after the deal,
	// so the largest movable run is numOpen+1.
	openingCapacity := numOpen + 1

	if extra == 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("✓ Deal: %d cascades with %d cards each", numCascade, base))
	} else {
		result.Errors = append(result.Errors,
			fmt.Sprintf("✓ Deal: %d cascades with %d cards, %d cascades with %d cards",
				extra, base+1, numCascade-extra, base))
	}
	result.Errors = append(result.Errors,
		fmt.Sprintf("✓ Opening capacity: %d card(s) per move", openingCapacity))

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
