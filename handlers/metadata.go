package handlers

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultMetadataPath is where the metadata document is read from, relative
// to the working directory.
const DefaultMetadataPath = "metadata.json"

// Metadata is the static application description loaded at startup.
type Metadata struct {
	Description string `json:"description"`
	Version     string `json:"version"`
}

// LoadMetadata reads and validates the metadata document at path.
func LoadMetadata(path string) (Metadata, error) {
	var data Metadata

	plan, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("reading metadata %s: %w", path, err)
	}
	if err := json.Unmarshal(plan, &data); err != nil {
		return data, fmt.Errorf("parsing metadata %s: %w", path, err)
	}
	if data.Description == "" {
		return data, fmt.Errorf("metadata %s: missing description", path)
	}
	if data.Version == "" {
		return data, fmt.Errorf("metadata %s: missing version", path)
	}
	return data, nil
}
