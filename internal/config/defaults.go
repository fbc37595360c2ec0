package config

import (
	_ "embed"
)

//go:embed defaults/unblocked.yaml
var defaultYAML []byte
