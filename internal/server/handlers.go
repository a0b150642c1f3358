package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/ironsheep/banana-tools-mcp/internal/banana"
	"github.com/ironsheep/banana-tools-mcp/internal/catalog"
	"github.com/ironsheep/banana-tools-mcp/internal/imaging"
	"github.com/ironsheep/banana-tools-mcp/internal/nodes"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "banana_edit", "prompt_select").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// A failed edit is not an execution error: it is a normal result whose
// "error" field is set.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// API keys
	case "api_key_google":
		return s.handleAPIKey(args, nodes.GoogleKey)
	case "api_key_frank":
		return s.handleAPIKey(args, nodes.FrankKey)

	// Images
	case "image_list_collect":
		return s.handleImageListCollect(args)
	case "banana_edit":
		return s.handleBananaEdit(ctx, args)

	// Prompts
	case "prompt_select":
		return s.handlePromptSelect(args)
	case "prompt_list":
		return s.catalog.Entries(), nil
	case "node_list":
		return nodes.Registry(), nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments; absent arguments decode as an empty object.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === API Key Handlers ===

type apiKeyArgs struct {
	KeyInput string `json:"key_input"`
}

type apiKeyResult struct {
	Key string `json:"key"`
}

func (s *Server) handleAPIKey(args json.RawMessage, tag func(string) string) (interface{}, error) {
	var a apiKeyArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return apiKeyResult{Key: tag(a.KeyInput)}, nil
}

// === Image Handlers ===

type imageListCollectArgs struct {
	Image1 []string `json:"image_1"`
	Image2 []string `json:"image_2"`
	Image3 []string `json:"image_3"`
}

type collectedImage struct {
	Path     string `json:"path"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Channels int    `json:"channels"`
}

type imageListResult struct {
	Count  int              `json:"count"`
	Images []collectedImage `json:"images"`
}

func (s *Server) handleImageListCollect(args json.RawMessage) (interface{}, error) {
	var a imageListCollectArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Image1) == 0 {
		return nil, fmt.Errorf("image_1 requires at least one image path")
	}

	first, err := s.cache.LoadBatch(a.Image1)
	if err != nil {
		return nil, err
	}
	optional := make([]imaging.Batch, 0, 2)
	for _, paths := range [][]string{a.Image2, a.Image3} {
		if len(paths) == 0 {
			continue
		}
		batch, err := s.cache.LoadBatch(paths)
		if err != nil {
			return nil, err
		}
		optional = append(optional, batch)
	}

	images := nodes.CollectImages(first, optional...)
	paths := lo.Flatten([][]string{a.Image1, a.Image2, a.Image3})

	result := imageListResult{Count: len(images), Images: make([]collectedImage, len(images))}
	for i, img := range images {
		result.Images[i] = collectedImage{
			Path:     paths[i],
			Width:    img.Width,
			Height:   img.Height,
			Channels: img.Channels,
		}
	}
	return result, nil
}

type bananaEditArgs struct {
	Images     []string `json:"images"`
	Key        string   `json:"key"`
	Prompt     string   `json:"prompt"`
	OutputPath string   `json:"output_path"`
}

type bananaEditResult struct {
	Text        string           `json:"text"`
	Error       string           `json:"error,omitempty"`
	ErrorKind   banana.Kind      `json:"error_kind,omitempty"`
	Image       *imaging.Summary `json:"image"`
	OutputPath  string           `json:"output_path,omitempty"`
	ImageBase64 string           `json:"image_base64,omitempty"`
	MimeType    string           `json:"mime_type,omitempty"`
}

func (s *Server) handleBananaEdit(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a bananaEditArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	// Count problems are reported by the client, so only load what it would send.
	var images []*imaging.Buffer
	if len(a.Images) <= banana.MaxImages {
		batch, err := s.cache.LoadBatch(a.Images)
		if err != nil {
			return nil, err
		}
		images = batch
	} else {
		images = make([]*imaging.Buffer, len(a.Images))
		for i := range images {
			images[i] = imaging.Placeholder()
		}
	}

	res := s.editor.Edit(ctx, banana.EditRequest{Key: a.Key, Prompt: a.Prompt, Images: images})

	out := bananaEditResult{Text: res.Text, Image: imaging.Summarize(res.Image)}
	if res.Failed() {
		out.Error = res.Failure.Message
		out.ErrorKind = res.Failure.Kind
		return out, nil
	}

	if a.OutputPath != "" {
		written, err := imaging.SavePNG(a.OutputPath, res.Image)
		if err != nil {
			return nil, err
		}
		out.OutputPath = written
		return out, nil
	}

	enc, err := imaging.EncodeBase64(res.Image)
	if err != nil {
		return nil, err
	}
	out.ImageBase64 = enc.ImageBase64
	out.MimeType = enc.MimeType
	return out, nil
}

// === Prompt Handlers ===

type promptSelectArgs struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

type promptSelectResult struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handlePromptSelect(args json.RawMessage) (interface{}, error) {
	var a promptSelectArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Title == catalog.EmptyTitle {
		a.Title = ""
	}
	return promptSelectResult{Prompt: s.catalog.Resolve(a.Title, a.Prompt)}, nil
}
