// Package nodes implements the pass-through nodes that feed the edit client:
// API key tagging and image list collection.
package nodes

import (
	"github.com/samber/lo"

	"github.com/ironsheep/banana-tools-mcp/internal/imaging"
)

// Category groups every node in the registry.
const Category = "FrankAI"

// Key prefixes identify which provider issued a key.
const (
	GoogleKeyPrefix = "GKEY-"
	FrankKeyPrefix  = "FKEY-"
)

// GoogleKey tags a Google API key.
func GoogleKey(input string) string {
	return GoogleKeyPrefix + input
}

// FrankKey tags a FrankAI API key.
func FrankKey(input string) string {
	return FrankKeyPrefix + input
}

// CollectImages flattens a required batch and up to two optional batches into
// a list of single images, preserving order. Nil optional batches are skipped.
//
// No count check is made here; the edit client rejects lists longer than three.
func CollectImages(first imaging.Batch, optional ...imaging.Batch) []*imaging.Buffer {
	batches := append([]imaging.Batch{first}, optional...)
	return lo.Flatten(lo.Map(batches, func(b imaging.Batch, _ int) []*imaging.Buffer {
		return []*imaging.Buffer(b)
	}))
}

// Descriptor describes a node for listings.
type Descriptor struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Category    string   `json:"category"`
	Inputs      []string `json:"inputs"`
	Outputs     []string `json:"outputs"`
}

// Registry lists the nodes in registration order.
func Registry() []Descriptor {
	return []Descriptor{
		{
			Name:        "BananaMainNode",
			DisplayName: "FrankAI Banana Main Node",
			Category:    Category,
			Inputs:      []string{"images", "key", "prompt"},
			Outputs:     []string{"image", "text"},
		},
		{
			Name:        "GoogleApiKeyNode",
			DisplayName: "Google API Key Node",
			Category:    Category,
			Inputs:      []string{"key_input"},
			Outputs:     []string{"key"},
		},
		{
			Name:        "FrankApiKeyNode",
			DisplayName: "FrankAI API Key Node",
			Category:    Category,
			Inputs:      []string{"key_input"},
			Outputs:     []string{"key"},
		},
		{
			Name:        "BananaPromptSelector",
			DisplayName: "Banana Prompt Selector",
			Category:    Category,
			Inputs:      []string{"title", "prompt"},
			Outputs:     []string{"prompt"},
		},
		{
			Name:        "ImageListCollector",
			DisplayName: "Image List Collector",
			Category:    Category,
			Inputs:      []string{"image_1", "image_2", "image_3"},
			Outputs:     []string{"image_list"},
		},
	}
}
