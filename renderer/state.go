package renderer

import (
	"sync"

	"github.com/bentance/virtualgallery/gallery"
)

// ModeState is the runtime's internal reactive state. Configuration pushed
// here before an Application is constructed is reflected in its first
// rendered frame.
type ModeState struct {
	mu        sync.RWMutex
	mode      gallery.Mode
	source    gallery.Source
	galleries []*gallery.Config
	user      *gallery.UserProfile
}

// NewModeState creates a state store with default mode and offline source.
func NewModeState() *ModeState {
	return &ModeState{
		mode:   gallery.ModeDefault,
		source: gallery.SourceOffline,
	}
}

// SetMode records the interaction mode.
func (s *ModeState) SetMode(m gallery.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

// SetSource records the data source.
func (s *ModeState) SetSource(src gallery.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = src
}

// Mode returns the current interaction mode.
func (s *ModeState) Mode() gallery.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Source returns the current data source.
func (s *ModeState) Source() gallery.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// SetGallery replaces the loaded gallery set with a single gallery.
func (s *ModeState) SetGallery(cfg *gallery.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg == nil {
		s.galleries = nil
		return
	}
	s.galleries = []*gallery.Config{cfg}
}

// AppendGallery adds a gallery to the loaded set. Exploration mode
// navigates between appended galleries with ShiftGallery.
func (s *ModeState) AppendGallery(cfg *gallery.Config) {
	if cfg == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.galleries = append(s.galleries, cfg)
}

// Gallery returns the gallery at index, or nil if out of range.
func (s *ModeState) Gallery(index int) *gallery.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.galleries) {
		return nil
	}
	return s.galleries[index]
}

// GalleryCount returns the number of loaded galleries.
func (s *ModeState) GalleryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.galleries)
}

// SetUser records the artist profile shown alongside the scene.
func (s *ModeState) SetUser(u *gallery.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// User returns the recorded artist profile, possibly nil.
func (s *ModeState) User() *gallery.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}
