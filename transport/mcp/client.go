package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tablegames/freecell/game/engine"
	"github.com/tablegames/freecell/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Freecell",
		"2.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Freecell - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Move all 52 cards to the four foundations, each built up by suit from Ace to King.

AVAILABLE TOOLS:
- game_state: Get current game state
- move: Single move between piles - requires intent explanation
- bulk_move: Multiple moves at once - requires intent explanation
- auto_move: Auto-place a card (foundation first, then free cell)
- redeal: Shuffle and deal a fresh game
- move_history: View past moves
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available configurations
- game_instructions: Get comprehensive game instructions and rules
- describe_pile: Get detailed info about a specific pile (helps verify tops and legal targets)

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// pileRefSchema is the shared JSON schema fragment for pile references
func pileRefSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"kind": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"foundation", "open", "cascade"},
				"description": "Pile collection",
			},
			"pile": map[string]interface{}{
				"type":        "integer",
				"description": "Pile index within the collection (0-based)",
			},
			"card": map[string]interface{}{
				"type":        "integer",
				"description": "For cascade sources: index of the first card of the run being moved (0-based from pile bottom)",
			},
		},
		"required": []string{"kind", "pile"},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move a card or run between piles",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"from": pileRefSchema("Source pile reference"),
				"to":   pileRefSchema("Destination pile reference"),
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"redeal": map[string]interface{}{
					"type":        "boolean",
					"description": "Redeal before moving",
				},
			},
			Required: []string{"session_id", "from", "to"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute multiple moves in sequence",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"from": pileRefSchema("Source pile reference"),
							"to":   pileRefSchema("Destination pile reference"),
						},
						"required": []string{"from", "to"},
					},
					"description": "Array of moves",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
				"redeal": map[string]interface{}{
					"type":        "boolean",
					"description": "Redeal before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "auto_move",
		Description: "Automatically place the top card of a pile: foundation if it fits, otherwise the first free cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"from": pileRefSchema("Source pile reference (open or cascade)"),
			},
			Required: []string{"session_id", "from"},
		},
	}, c.handleAutoMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "redeal",
		Description: "Shuffle and deal a fresh game, keeping cumulative history",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRedeal)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_pile",
		Description: "Get detailed information about a specific pile: its cards, its top card, and what it currently accepts. Useful for verifying a move before making it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"kind": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"foundation", "open", "cascade"},
					"description": "Pile collection",
				},
				"pile": map[string]interface{}{
					"type":        "integer",
					"description": "Pile index within the collection (0-based)",
				},
			},
			Required: []string{"session_id", "kind", "pile"},
		},
	}, c.handleDescribePile)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// parsePileRef converts a raw MCP argument into a PileRef
func parsePileRef(raw interface{}) (engine.PileRef, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return engine.PileRef{}, fmt.Errorf("pile reference must be an object with kind and pile")
	}

	kind, _ := m["kind"].(string)
	switch engine.PileKind(kind) {
	case engine.FoundationPile, engine.OpenPile, engine.CascadePile:
	default:
		return engine.PileRef{}, fmt.Errorf("unknown pile kind %q", kind)
	}

	ref := engine.PileRef{Kind: engine.PileKind(kind)}
	if pile, ok := m["pile"].(float64); ok {
		ref.Pile = int(pile)
	}
	if card, ok := m["card"].(float64); ok {
		ref.Card = int(card)
	}
	return ref, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configName, _ := args["config_name"].(string)

	body := map[string]string{}
	if configName != "" {
		body["config_name"] = configName
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	intent, _ := args["intent"].(string)
	redeal, _ := args["redeal"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	from, err := parsePileRef(args["from"])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("from: %v", err)), nil
	}
	to, err := parsePileRef(args["to"])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("to: %v", err)), nil
	}

	body := map[string]interface{}{
		"from":   from,
		"to":     to,
		"redeal": redeal,
	}

	var result service.MoveResult
	err = c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]interface{})
	intent, _ := args["intent"].(string)
	redeal, _ := args["redeal"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	// Convert raw moves into move requests
	moves := make([]service.MoveRequest, 0, len(movesRaw))
	for i, m := range movesRaw {
		entry, ok := m.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("move %d must be an object with from and to", i+1)), nil
		}
		from, err := parsePileRef(entry["from"])
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("move %d from: %v", i+1, err)), nil
		}
		to, err := parsePileRef(entry["to"])
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("move %d to: %v", i+1, err)), nil
		}
		moves = append(moves, service.MoveRequest{From: from, To: to})
	}

	body := map[string]interface{}{
		"moves":  moves,
		"redeal": redeal,
	}

	var result service.BulkMoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/bulk-move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatBulkMoveResult(sessionID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleAutoMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	from, err := parsePileRef(args["from"])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("from: %v", err)), nil
	}

	body := map[string]interface{}{"from": from}

	var result service.MoveResult
	err = c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/auto-move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := ""
	if result.Destination != nil {
		response = fmt.Sprintf("Auto-moved %s -> %s\n", from, *result.Destination)
	}
	response += formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleRedeal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/redeal", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also fetch current segment from live state
	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		// If fetching session fails, still return the history
		result := formatHistory(&history)
		return mcp.NewToolResultText(result), nil
	}

	result := formatHistory(&history)
	result += "\n" + formatCurrentSegment(session.GameState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Free cells: %d, Cascades: %d\n\n",
			config.Name, config.ConfigID, config.Description, config.NumOpen, config.NumCascade)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🃏 Freecell - Complete Instructions

GAME OBJECTIVE:
Move all 52 cards to the four foundations. Each foundation is built up in a single suit from Ace to King.

PILE TYPES:
• Foundations (4): Accept cards by suit, Ace first, then 2, 3, ... King. Cards on foundations stay there.
• Free cells / open piles (usually 4): Each holds exactly ONE card of any rank or suit.
• Cascades (usually 8): The tableau. Cards stack downward in ALTERNATING COLORS (a red 9 goes on a black 10).

CARD NOTATION:
Cards render as rank+suit: AS (ace of spades), 10H (ten of hearts), KD (king of diamonds).
Suits: S and C are BLACK, D and H are RED. ⚠️ Stacking requires opposite colors, not opposite suits.

MOVE RULES:
• A single exposed card can move to a fitting foundation, an empty free cell, or a cascade
  whose top card is one rank higher and the opposite color.
• Any cascade may receive any card when it is EMPTY.
• A RUN (descending, alternating-color sequence at the top of a cascade) can move between
  cascades in one action, but only if capacity allows (see SUPERMOVES).

SUPERMOVES (CRITICAL):
The number of cards you can move at once is:
    (empty free cells + 1) × 2^(empty cascades)
When moving TO an empty cascade, that cascade does NOT count toward the multiplier.
Examples: 4 empty cells, 0 empty cascades → 5 cards. 1 empty cell, 1 empty cascade → 4 cards
(but only 2 if the destination IS that empty cascade).
⚠️ A run that is legal as a sequence can still be rejected because capacity is too small.
Free cells are your working capital - every occupied cell halves nothing but costs you +1 capacity.

🤖 AI AGENTS - CRITICAL SUCCESS STRATEGIES:

⚠️ COLOR RECOGNITION (MOST COMMON FAILURE POINT):
Before planning a stack, verify colors card by card:
1. S and C are black; D and H are red. 8D on 9S is LEGAL (red on black). 8D on 9H is NOT (red on red).
2. Common misreads: treating 10 as two characters ("1" and "0"), confusing 6S with 9S when scanning fast.
3. When a move is rejected, use describe_pile on both piles before retrying - do not guess.

🗺️ SYSTEMATIC BOARD READING:
- Locate all four aces first; everything else is secondary until they are free.
- Count how many cards bury each ace and each low card you need next.
- Identify natural runs already present in the deal - they are free moves.

🧩 EMPTY COLUMN TECHNIQUE:
- An empty cascade doubles your move capacity; two empties quadruple it.
- Empty a short cascade early when the cards on it have homes.
- Never fill an empty cascade casually - park a King or a long run there, not a stray card.

⚡ FREE CELL MANAGEMENT:
- Cells are for TRANSIT, not storage. A card parked long-term costs capacity every turn.
- Before parking, ask: where does this card eventually go, and when?
- Unload cells aggressively - auto_move will send eligible cards to foundations.

🎯 FOUNDATION PACING:
- Do not race one suit far ahead. A foundation at 9 while another sits at 2 strands
  the 3-8 of the lagging suit with no red/black partners to stack on.
- Keep foundations within roughly two ranks of each other when possible.

🔄 ITERATIVE PLAY:
1. game_state, read the full board
2. Plan a short sequence (3-6 moves) with a concrete goal (free an ace, empty a column)
3. bulk_move the sequence; it stops at the first illegal move and tells you which
4. Re-read state and refine

🚨 CRITICAL PITFALLS TO AVOID:
- ❌ Filling all free cells with no plan to unload them
- ❌ Moving a run onto an empty cascade when a King needs that space
- ❌ Forgetting the empty-destination capacity discount on supermoves
- ❌ Building a long same-color sequence that can never move as a unit
- ❌ Sending a card to the foundation that is still needed as a stacking target

API USAGE BEST PRACTICES:
- Use bulk_move for planned sequences; it reports the exact move that failed
- Use auto_move to sweep safe cards to foundations
- Use describe_pile to verify a pile before a tricky move
- redeal starts a fresh deal; cumulative history survives across deals

VICTORY CONDITION:
All 52 cards on foundations. The game reports completion and rejects further moves until redeal.

Good luck at the tableau! 🃏`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribePile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	kind, _ := args["kind"].(string)
	pileIdx := 0
	if p, ok := args["pile"].(float64); ok {
		pileIdx = int(p)
	}

	// Get the current game state to access the piles
	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var piles [][]engine.Card
	switch engine.PileKind(kind) {
	case engine.FoundationPile:
		piles = state.Foundation
	case engine.OpenPile:
		piles = state.Open
	case engine.CascadePile:
		piles = state.Cascade
	default:
		return mcp.NewToolResultError(fmt.Sprintf("Unknown pile kind %q (use foundation, open, or cascade)", kind)), nil
	}

	if pileIdx < 0 || pileIdx >= len(piles) {
		return mcp.NewToolResultError(fmt.Sprintf("Pile index %d is out of range for %s piles (0-%d)",
			pileIdx, kind, len(piles)-1)), nil
	}

	pile := piles[pileIdx]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Pile %s[%d]:\n", kind, pileIdx))
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━\n")
	if len(pile) == 0 {
		b.WriteString("Cards: (empty)\n")
	} else {
		b.WriteString(fmt.Sprintf("Cards (bottom to top): %s\n", formatCards(pile)))
		top := pile[len(pile)-1]
		b.WriteString(fmt.Sprintf("Top card: %s (%s)\n", top, top.Color()))
	}

	switch engine.PileKind(kind) {
	case engine.FoundationPile:
		if len(pile) == 0 {
			b.WriteString("Accepts: any Ace\n")
		} else if len(pile) == engine.RankKing {
			b.WriteString("Accepts: nothing (complete)\n")
		} else {
			top := pile[len(pile)-1]
			next := engine.Card{Rank: top.Rank + 1, Suit: top.Suit}
			b.WriteString(fmt.Sprintf("Accepts: %s only\n", next))
		}
	case engine.OpenPile:
		if len(pile) == 0 {
			b.WriteString("Accepts: any single card\n")
		} else {
			b.WriteString("Accepts: nothing (occupied)\n")
		}
	case engine.CascadePile:
		if len(pile) == 0 {
			b.WriteString("Accepts: any card or run (empty cascade)\n")
		} else {
			top := pile[len(pile)-1]
			needColor := engine.Red
			if top.Color() == engine.Red {
				needColor = engine.Black
			}
			b.WriteString(fmt.Sprintf("Accepts: rank %d of %s color\n", top.Rank-1, needColor))
		}
		// Report the movable run at the top of the pile
		if run := longestTopRun(pile); run > 1 {
			b.WriteString(fmt.Sprintf("Top run: %d cards (%s)\n",
				run, formatCards(pile[len(pile)-run:])))
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

// longestTopRun counts the descending alternating-color run ending at the pile top
func longestTopRun(pile []engine.Card) int {
	if len(pile) == 0 {
		return 0
	}
	run := 1
	for i := len(pile) - 1; i > 0; i-- {
		if !engine.IsStackable(pile[i-1], pile[i]) {
			break
		}
		run++
	}
	return run
}

// Formatting helpers

func formatCards(cards []engine.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	// Header (include cumulative total moves)
	result.WriteString(fmt.Sprintf("Foundation: %d/%d | Moves: %d (this deal: %d)\n\n",
		engine.CountCards(state.Foundation), engine.DeckSize,
		state.TotalMoves, state.CurrentMovesCount))

	// Decision aid (if available)
	if state.Mobility != "" {
		result.WriteString(fmt.Sprintf("Mobility: %s\n\n", state.Mobility))
	}

	// Foundations
	result.WriteString("Foundations:\n")
	for i, pile := range state.Foundation {
		if len(pile) == 0 {
			result.WriteString(fmt.Sprintf("  F%d: -\n", i))
		} else {
			result.WriteString(fmt.Sprintf("  F%d: %s (%d)\n", i, pile[len(pile)-1], len(pile)))
		}
	}

	// Free cells
	result.WriteString("Free cells: ")
	for i, pile := range state.Open {
		if i > 0 {
			result.WriteString(" ")
		}
		if len(pile) == 0 {
			result.WriteString("[  ]")
		} else {
			result.WriteString(fmt.Sprintf("[%s]", pile[0]))
		}
	}
	result.WriteString("\n")

	// Cascades
	result.WriteString("Cascades:\n")
	for i, pile := range state.Cascade {
		if len(pile) == 0 {
			result.WriteString(fmt.Sprintf("  C%d: (empty)\n", i))
		} else {
			result.WriteString(fmt.Sprintf("  C%d: %s\n", i, formatCards(pile)))
		}
	}

	// Status
	if state.Completed {
		result.WriteString("\n🎉 COMPLETED!")
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "✓ Move successful\n"
	} else {
		response = "✗ Move failed\n"
	}

	// Compact step summary (if available)
	if result.Step != nil {
		s := result.Step
		status := "✗"
		if s.Success {
			status = "✓"
		}
		response += fmt.Sprintf("Step: %s→%s cards=%d foundation=%d→%d %s\n",
			s.From, s.To, s.Cards, s.FoundationBefore, s.FoundationAfter, status)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	// Session header
	configName := ""
	if result.GameState != nil {
		configName = result.GameState.ConfigName
	}
	b.WriteString(fmt.Sprintf("Session: %s • Config: %s\n", sessionID, configName))

	// Bulk summary
	b.WriteString(fmt.Sprintf("Executed %d/%d moves • Foundation %d→%d\n",
		result.MovesExecuted, result.RequestedMoves,
		result.StartFoundation, result.EndFoundation))
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped: %s\n", result.StoppedReason))
		if result.StoppedOnMove > 0 {
			b.WriteString(fmt.Sprintf("Stopped on move: %d (%s)\n", result.StoppedOnMove, result.StopReasonCode))
		}
	}
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated to %d moves per call\n", result.Limit))
	}

	// Events (keep as-is, concise)
	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	// Per-step compact trace from this call
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			status := "✗"
			if s.Success {
				status = "✓"
			}
			b.WriteString(fmt.Sprintf("%d. %s→%s cards=%d foundation=%d→%d %s\n",
				s.Idx, s.From, s.To, s.Cards, s.FoundationBefore, s.FoundationAfter, status))
		}
	}

	if result.Mobility != "" {
		b.WriteString(fmt.Sprintf("\nMobility: %s\n", result.Mobility))
	}

	// Full state at the end (kept for compatibility)
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d) | Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		auto := ""
		if move.Auto {
			auto = " (auto)"
		}
		result += fmt.Sprintf("%d. %s→%s %s [%d card(s)]%s\n",
			move.MoveNumber, move.From, move.To, status, move.Cards, auto)
	}

	return result
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	moves := state.CurrentMoves
	total := state.CurrentMovesCount
	header := fmt.Sprintf("Current Deal Segment | Moves: %d\n\n", total)
	if len(moves) == 0 {
		return header + "(no moves in current deal)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, move := range moves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		// i is zero-based within the segment
		b.WriteString(fmt.Sprintf("%d. %s→%s %s [%d card(s)]\n", i+1, move.From, move.To, status, move.Cards))
	}
	return b.String()
}
