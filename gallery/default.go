package gallery

import (
	_ "embed"
	"encoding/json"

	"github.com/bentance/virtualgallery/errors"
)

//go:embed default_gallery.json
var defaultGalleryJSON []byte

// Default returns the built-in default gallery used in offline exploration
// mode. Each call returns a fresh copy; callers may mutate the result.
func Default() (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(defaultGalleryJSON, &cfg); err != nil {
		return nil, errors.New(errors.StageConfig, errors.KindInvalidConfig).
			Detail("decode built-in default gallery").
			Cause(err).
			Build()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Decode parses a gallery configuration record from JSON and validates it.
func Decode(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.New(errors.StageConfig, errors.KindInvalidConfig).
			Detail("decode gallery config").
			Cause(err).
			Build()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
