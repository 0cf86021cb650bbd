package cli

import (
	"bytes"
	_ "embed"
)

//go:embed default_settings.yaml
var embeddedDefaultSettings []byte

// EmbeddedDefaultConfiguration returns a copy of the built-in settings document and its format.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return bytes.Clone(embeddedDefaultSettings), configurationTypeConstant
}
