package server

import (
	"github.com/ironsheep/banana-tools-mcp/internal/banana"
	"github.com/ironsheep/banana-tools-mcp/internal/catalog"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imagePathsSchema describes an array of image file paths.
func imagePathsSchema(description string, minItems, maxItems int) map[string]interface{} {
	schema := map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": description,
	}
	if minItems > 0 {
		schema["minItems"] = minItems
	}
	if maxItems > 0 {
		schema["maxItems"] = maxItems
	}
	return schema
}

// GetToolDefinitions returns all available tools. The prompt selector's title
// enum and default prompt come from the catalog.
func GetToolDefinitions(cat *catalog.Catalog) []Tool {
	return []Tool{
		// API keys
		{
			Name:        "api_key_google",
			Description: "Tag a Google API key for the image edit tool. Returns the key prefixed with GKEY-.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key_input": map[string]interface{}{
						"type":        "string",
						"description": "Google API key",
						"default":     "",
					},
				},
				"required": []string{"key_input"},
			},
		},
		{
			Name:        "api_key_frank",
			Description: "Tag a FrankAI API key for the image edit tool. Returns the key prefixed with FKEY-.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key_input": map[string]interface{}{
						"type":        "string",
						"description": "FrankAI API key",
						"default":     "",
					},
				},
				"required": []string{"key_input"},
			},
		},

		// Images
		{
			Name:        "image_list_collect",
			Description: "Collect images from up to three inputs into one ordered list. Each input is a batch of image paths; the result lists every image with its dimensions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_1": imagePathsSchema("Required batch of image paths", 1, 0),
					"image_2": imagePathsSchema("Optional batch of image paths", 0, 0),
					"image_3": imagePathsSchema("Optional batch of image paths", 0, 0),
				},
				"required": []string{"image_1"},
			},
		},
		{
			Name:        "banana_edit",
			Description: "Edit one to three images with a text prompt using the remote image API. Failures are reported in the result's error field together with a blank placeholder image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"images": imagePathsSchema("Absolute paths of the input images (PNG or JPEG)", 1, banana.MaxImages),
					"key": map[string]interface{}{
						"type":        "string",
						"description": "Tagged API key from api_key_google or api_key_frank",
					},
					"prompt": map[string]interface{}{
						"type":        "string",
						"description": "Edit instruction, typically from prompt_select",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to write the result PNG. When omitted the image is returned as base64.",
					},
				},
				"required": []string{"images", "key", "prompt"},
			},
		},

		// Prompts
		{
			Name:        "prompt_select",
			Description: "Pick a preset prompt by title. An edited prompt text that matches no preset overrides the preset.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"title": map[string]interface{}{
						"type":        "string",
						"enum":        cat.Titles(),
						"description": "Preset title",
					},
					"prompt": map[string]interface{}{
						"type":        "string",
						"default":     cat.DefaultPrompt(),
						"description": "Prompt text; leave as the preset text to use the selected title's prompt",
					},
				},
				"required": []string{"title"},
			},
		},
		{
			Name:        "prompt_list",
			Description: "List the preset prompt catalog.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "node_list",
			Description: "List the available nodes with their inputs and outputs.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(s.catalog),
		},
	}
}
