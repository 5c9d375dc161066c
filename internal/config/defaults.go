package config

import (
	_ "embed"
)

//go:embed defaults/kinderwordle.yaml
var defaultYAML []byte
