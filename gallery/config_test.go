package gallery

import (
	stderrors "errors"
	"testing"

	"github.com/bentance/virtualgallery/errors"
)

func validConfig() *Config {
	return &Config{
		Environment: Environment{Level: 4, Character: 1},
		Paintings: []Painting{
			{ID: 1, Title: "A", Description: "", ImageURL: "x.jpg"},
		},
	}
}

func TestNormalizeLevel(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  int
	}{
		{"min of catalog", 1, 1},
		{"max of catalog", 4, 4},
		{"mid catalog", 3, 3},
		{"below catalog", 0, DefaultLevel},
		{"negative", -7, DefaultLevel},
		{"above catalog", 5, DefaultLevel},
		{"far above catalog", 99, DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLevel(tt.level); got != tt.want {
				t.Errorf("NormalizeLevel(%d) = %d, want %d", tt.level, got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	volume := func(v int) *int { return &v }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"no paintings", func(c *Config) { c.Paintings = nil }, true},
		{"zero level", func(c *Config) { c.Environment.Level = 0 }, true},
		{"zero character", func(c *Config) { c.Environment.Character = 0 }, true},
		{"duplicate painting id", func(c *Config) {
			c.Paintings = append(c.Paintings, Painting{ID: 1, Title: "B", ImageURL: "y.jpg"})
		}, true},
		{"volume in range", func(c *Config) { c.Audio = &Audio{FootstepsVolume: volume(100)} }, false},
		{"volume out of range", func(c *Config) { c.Audio = &Audio{FootstepsVolume: volume(101)} }, true},
		{"out-of-catalog level is allowed", func(c *Config) { c.Environment.Level = 9 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				target := &errors.Error{Stage: errors.StageConfig, Kind: errors.KindInvalidConfig}
				if !stderrors.Is(err, target) {
					t.Errorf("error %v is not an invalid_config error", err)
				}
			}
		})
	}
}

func TestRuntimeConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RuntimeConfig
		wantErr bool
	}{
		{
			name:    "online with gallery data",
			cfg:     RuntimeConfig{Mode: ModeDefault, Source: SourceOnline, GalleryData: validConfig()},
			wantErr: false,
		},
		{
			name:    "online without gallery data",
			cfg:     RuntimeConfig{Mode: ModeDefault, Source: SourceOnline},
			wantErr: true,
		},
		{
			name:    "offline explore without gallery data",
			cfg:     RuntimeConfig{Mode: ModeExplore, Source: SourceOffline},
			wantErr: false,
		},
		{
			name:    "unknown mode",
			cfg:     RuntimeConfig{Mode: "vr", Source: SourceOffline},
			wantErr: true,
		},
		{
			name:    "unknown source",
			cfg:     RuntimeConfig{Mode: ModeDefault, Source: "cache"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPainting_Paintable(t *testing.T) {
	if (Painting{ID: 1, ImageURL: ""}).Paintable() {
		t.Error("entry without image should not be paintable")
	}
	if !(Painting{ID: 1, ImageURL: "x.jpg"}).Paintable() {
		t.Error("entry with image should be paintable")
	}
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if len(cfg.Paintings) == 0 {
		t.Fatal("default gallery has no paintings")
	}
	if got := NormalizeLevel(cfg.Environment.Level); got != cfg.Environment.Level {
		t.Errorf("default gallery level %d is outside the catalog", cfg.Environment.Level)
	}

	// Each call returns an independent copy.
	cfg.Paintings[0].Title = "mutated"
	cfg2, err := Default()
	if err != nil {
		t.Fatalf("Default() second call error = %v", err)
	}
	if cfg2.Paintings[0].Title == "mutated" {
		t.Error("Default() returned a shared copy")
	}
}

func TestDecode(t *testing.T) {
	data := []byte(`{
		"environment": {"level": 2, "character": 1},
		"paintings": [{"id": 1, "title": "A", "description": "", "imageUrl": "x.jpg"}]
	}`)

	cfg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if cfg.Environment.Level != 2 {
		t.Errorf("Level = %d, want 2", cfg.Environment.Level)
	}

	if _, err := Decode([]byte(`{not json`)); err == nil {
		t.Error("Decode should fail on malformed JSON")
	}
	if _, err := Decode([]byte(`{"environment":{"level":1,"character":1},"paintings":[]}`)); err == nil {
		t.Error("Decode should fail validation on empty paintings")
	}
}
