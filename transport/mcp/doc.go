// Package mcp provides a Model Context Protocol server for the Freecell game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current game state with pile rendering
//   - move: Execute a single move between piles
//   - bulk_move: Execute multiple moves in sequence
//   - auto_move: Auto-place a card (foundation first, then free cell)
//   - redeal: Shuffle and deal a fresh game
//   - move_history: Retrieve move history with pagination
//   - create_session: Create new game session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available game configurations
//   - describe_pile: Inspect a pile's cards and what it accepts
//   - game_instructions: Full rules and strategy reference
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Architecture:
//
// The MCP client here is a thin proxy: every tool call is translated into a
// REST API request against the game server, so MCP agents and web clients
// always observe the same session state.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play Freecell deals
//   - Develop and test strategies
//   - Analyze tableau states and plan move sequences
//   - Manage multiple game sessions
//   - Learn from move history
package mcp
