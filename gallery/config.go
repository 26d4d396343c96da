package gallery

import (
	"github.com/bentance/virtualgallery/errors"
)

// Level catalog bounds. Levels identify pre-registered environment variants.
const (
	MinLevel     = 1
	MaxLevel     = 4
	DefaultLevel = 1
)

// DefaultCharacter is the character variant used when none is configured.
const DefaultCharacter = 1

// Mode selects the viewer's interaction mode.
type Mode string

const (
	ModeDefault Mode = "default"
	ModeExplore Mode = "explore"
	ModeAdmin   Mode = "admin"
)

// Source indicates where gallery data comes from.
type Source string

const (
	// SourceOnline means the hosting collaborator supplies gallery data
	// before the engine initializes.
	SourceOnline Source = "online"

	// SourceOffline means the engine loads its built-in default gallery.
	SourceOffline Source = "offline"
)

// Environment selects the pre-registered level and character variants for a
// gallery.
type Environment struct {
	Level     int  `json:"level"`
	Character int  `json:"character"`
	UITheme   *int `json:"uiTheme,omitempty"`
}

// Audio holds optional footstep sound settings.
type Audio struct {
	EnableFootsteps *bool `json:"enableFootsteps,omitempty"`
	FootstepsVolume *int  `json:"footstepsVolume,omitempty"` // 0..100
}

// Branding holds optional branding settings.
type Branding struct {
	ShowWatermark *bool `json:"showWatermark,omitempty"`
}

// Painting is a single exhibit entry. ID is unique within one gallery, not
// globally.
type Painting struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Paintable reports whether the entry has an image to render.
func (p Painting) Paintable() bool {
	return p.ImageURL != ""
}

// Config is a full gallery configuration record.
type Config struct {
	Environment Environment `json:"environment"`
	Audio       *Audio      `json:"audio,omitempty"`
	Branding    *Branding   `json:"branding,omitempty"`
	Paintings   []Painting  `json:"paintings"`
}

// Links holds a profile's external links.
type Links struct {
	Website   string `json:"website,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// UserProfile is the viewer-facing subset of an artist profile. Purely
// descriptive; every field is optional.
type UserProfile struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Links       Links  `json:"links"`
}

// RuntimeConfig is the configuration an engine receives at Initialize.
type RuntimeConfig struct {
	Mode        Mode         `json:"mode"`
	Source      Source       `json:"source"`
	GalleryData *Config      `json:"galleryData,omitempty"`
	UserData    *UserProfile `json:"userData,omitempty"`
}

// NormalizeLevel maps a level identifier onto the closed catalog. Values
// outside the catalog fall back to DefaultLevel rather than failing.
func NormalizeLevel(level int) int {
	if level < MinLevel || level > MaxLevel {
		return DefaultLevel
	}
	return level
}

// Validate checks invariants of a fully-formed, published configuration.
// An out-of-catalog level is not a validation failure; callers normalize it
// with NormalizeLevel.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidConfig("gallery config is nil")
	}
	if len(c.Paintings) == 0 {
		return errors.InvalidConfig("paintings list is empty")
	}
	if c.Environment.Level < 1 {
		return errors.InvalidConfig("environment.level %d is not a positive integer", c.Environment.Level)
	}
	if c.Environment.Character < 1 {
		return errors.InvalidConfig("environment.character %d is not a positive integer", c.Environment.Character)
	}

	seen := make(map[int]bool, len(c.Paintings))
	for i, p := range c.Paintings {
		if seen[p.ID] {
			return errors.InvalidConfig("painting id %d duplicated at index %d", p.ID, i)
		}
		seen[p.ID] = true
	}

	if c.Audio != nil && c.Audio.FootstepsVolume != nil {
		if v := *c.Audio.FootstepsVolume; v < 0 || v > 100 {
			return errors.InvalidConfig("audio.footstepsVolume %d out of range 0..100", v)
		}
	}
	return nil
}

// Validate checks the runtime configuration invariants: an online source
// requires gallery data to be present before the engine initializes.
func (rc *RuntimeConfig) Validate() error {
	if rc == nil {
		return errors.InvalidConfig("runtime config is nil")
	}
	switch rc.Mode {
	case ModeDefault, ModeExplore, ModeAdmin:
	default:
		return errors.InvalidConfig("unknown mode %q", rc.Mode)
	}
	switch rc.Source {
	case SourceOnline, SourceOffline:
	default:
		return errors.InvalidConfig("unknown source %q", rc.Source)
	}
	if rc.Source == SourceOnline {
		if rc.GalleryData == nil {
			return errors.InvalidConfig("source is online but gallery data is absent")
		}
		return rc.GalleryData.Validate()
	}
	return nil
}
