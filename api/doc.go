// Package api provides HTTP REST API handlers for the Freecell game server.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Configuration listing and creation
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions (sortable, limitable)
//   - GET /api/sessions/unified - Multi-session view
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current game state
//   - POST /api/sessions/{id}/move - Execute a single move
//   - POST /api/sessions/{id}/bulk-move - Execute a sequence of moves
//   - POST /api/sessions/{id}/auto-move - Auto-move a card (foundation first)
//   - POST /api/sessions/{id}/redeal - Shuffle and deal a fresh game
//   - GET /api/sessions/{id}/history - Get move history with pagination
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a new configuration
//   - GET /api/configs/{name} - Get a specific configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Piles are addressed with pile
// references:
//
//	{
//	  "from": {"kind": "cascade", "pile": 3, "card": 5},
//	  "to":   {"kind": "open", "pile": 0},
//	  "redeal": true|false  // optional redeal before the move
//	}
//
// Cascade sources include "card", the index of the first card of the run
// being moved. Foundation, open, and cascade destinations omit it.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api

//
// Enriched Responses (Move and Bulk Move)
//
// Move (POST /api/sessions/{id}/move)
//   Response:
//     - step: { idx, from, to, cards, foundation_before, foundation_after, success }
//     - game_state additions:
//         mobility: "LOCKED|TIGHT|CAUTION|OPEN|WORKABLE ..." // quick mobility read
//
// Bulk Move (POST /api/sessions/{id}/bulk-move)
//   Response:
//     - requested_moves, moves_executed
//     - stopped_reason (text), stop_reason_code (enum), stopped_on_move (1-based), truncated, limit
//     - steps: [{ idx, from, to, cards, foundation_before, foundation_after, success, auto?, completed? }]
//     - start_foundation, end_foundation
//     - completed, message, mobility
