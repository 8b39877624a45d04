package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration, including
// the prompt list and the model catalog.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte
