// Package server implements the MCP (Model Context Protocol) server for the
// banana image-edit tools.
//
// The server speaks JSON-RPC 2.0 over stdio:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// API keys:
//   - api_key_google: Tag a key with the GKEY- prefix
//   - api_key_frank: Tag a key with the FKEY- prefix
//
// Images:
//   - image_list_collect: Merge up to three batches of image paths into one list
//   - banana_edit: Edit one to three images with a prompt through the remote API
//
// Prompts:
//   - prompt_select: Resolve a preset title and optional prompt override
//   - prompt_list: List the preset catalog
//   - node_list: Describe the available nodes
//
// # Error Handling
//
// Malformed arguments, unreadable image files and unknown tools are returned
// as JSON-RPC errors with code -32000. A failed edit is a regular result: its
// "error" and "error_kind" fields are set and "image" summarizes the blank
// placeholder.
//
// # Usage
//
//	srv := server.New(server.Options{Catalog: cat, Editor: client})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
