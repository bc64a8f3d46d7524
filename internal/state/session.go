// Package state provides the viewer session: camera, catalog and pointer
// tracking, with thread-safe access for the loader goroutine.
package state

import (
	"sync"

	"github.com/litescript/ls-starfield/internal/astro"
)

// Camera is the orientation and zoom the renderer reads every frame.
type Camera struct {
	Yaw   float64 // radians, about the vertical axis
	Pitch float64 // radians, about the horizontal axis
	Scale float64 // pixels per world unit, always > 0
	Mode  astro.ProjectionMode
}

// Session owns the camera, the catalog and the input state of one viewer.
// Every camera mutation marks the session dirty; a render scheduler consumes
// the flag with TakeDirty.
type Session struct {
	mu sync.RWMutex

	profile Profile
	camera  Camera
	modeIdx int

	// Catalog (set once the loader completes)
	catalog astro.Catalog
	loaded  bool
	loadErr error

	// Pointer tracking
	dragging     bool
	moved        bool
	lastX, lastY float64

	// Redraw bookkeeping
	dirty    bool
	requests uint64
}

// NewSession creates a session for the given profile. An invalid profile
// falls back to the cycle profile. The first frame is pending.
func NewSession(p Profile) *Session {
	if err := p.Validate(); err != nil {
		p = CycleProfile()
	}
	s := &Session{profile: p}
	s.camera = initialCamera(p)
	s.dirty = true
	return s
}

func initialCamera(p Profile) Camera {
	return Camera{
		Scale: p.clampScale(p.InitialScale),
		Mode:  p.Modes[0],
	}
}

// markDirty records one redraw request. Caller holds mu.
func (s *Session) markDirty() {
	s.dirty = true
	s.requests++
}

// BeginDrag records the drag start position.
func (s *Session) BeginDrag(px, py float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = true
	s.moved = false
	s.lastX = px
	s.lastY = py
}

// EndDrag stops dragging. Under the primary-click trigger a press and
// release without movement switches the projection mode.
func (s *Session) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	wasClick := s.dragging && !s.moved
	s.dragging = false
	s.moved = false
	if wasClick && s.profile.Trigger == TriggerPrimaryClick {
		s.advanceMode()
	}
}

// PointerMove rotates the camera by the cursor delta while dragging.
func (s *Session) PointerMove(px, py float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dragging {
		return
	}
	dx := px - s.lastX
	dy := py - s.lastY
	s.lastX = px
	s.lastY = py
	if dx == 0 && dy == 0 {
		return
	}
	s.moved = true
	s.camera.Yaw += dx * DragSensitivity
	s.camera.Pitch += dy * DragSensitivity
	s.markDirty()
}

// Nudge rotates the camera as if the pointer had been dragged by (dx, dy)
// pixels. Used for keyboard control.
func (s *Session) Nudge(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera.Yaw += dx * DragSensitivity
	s.camera.Pitch += dy * DragSensitivity
	s.markDirty()
}

// Zoom scales the camera by one wheel tick. A positive delta zooms out, a
// negative one zooms in, zero is ignored.
func (s *Session) Zoom(delta float64) {
	if delta == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	factor := ZoomInFactor
	if delta > 0 {
		factor = ZoomOutFactor
	}
	s.camera.Scale = s.profile.clampScale(s.camera.Scale * factor)
	s.markDirty()
}

// SwitchMode advances to the next projection of the profile, wrapping
// around. Profiles with a single mode ignore it.
func (s *Session) SwitchMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceMode()
}

// SecondaryClick handles a right click.
func (s *Session) SecondaryClick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile.Trigger == TriggerSecondaryClick {
		s.advanceMode()
	}
}

func (s *Session) advanceMode() {
	if len(s.profile.Modes) < 2 {
		return
	}
	s.modeIdx = (s.modeIdx + 1) % len(s.profile.Modes)
	s.camera.Mode = s.profile.Modes[s.modeIdx]
	s.markDirty()
}

// SetMode selects a projection directly if the profile offers it.
func (s *Session) SetMode(m astro.ProjectionMode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, pm := range s.profile.Modes {
		if pm == m {
			if s.camera.Mode != m {
				s.modeIdx = i
				s.camera.Mode = m
				s.markDirty()
			}
			return true
		}
	}
	return false
}

// SetOrientation places the camera at the given angles.
func (s *Session) SetOrientation(yaw, pitch float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera.Yaw = yaw
	s.camera.Pitch = pitch
	s.markDirty()
}

// Reset restores the initial camera, keeping the current projection.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	mode := s.camera.Mode
	s.camera = initialCamera(s.profile)
	s.camera.Mode = mode
	s.modeIdx = s.profile.indexOf(mode)
	s.markDirty()
}

// SetCatalog installs the loaded catalog.
func (s *Session) SetCatalog(cat astro.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = cat
	s.loaded = true
	s.loadErr = nil
	s.markDirty()
}

// SetLoadError records a failed load. The current catalog (empty or last
// known) stays in place.
func (s *Session) SetLoadError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
	s.markDirty()
}

// Invalidate requests a redraw without changing state, e.g. after the
// drawing surface was resized.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markDirty()
}

// TakeDirty reports whether a redraw is pending and clears the flag.
func (s *Session) TakeDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.dirty
	s.dirty = false
	return d
}

// Dirty reports whether a redraw is pending without clearing it.
func (s *Session) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Requests returns how many redraws were requested so far.
func (s *Session) Requests() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests
}

// Dragging reports whether a drag is in progress.
func (s *Session) Dragging() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dragging
}

// Camera returns the current camera.
func (s *Session) Camera() Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.camera
}

// Profile returns the session profile.
func (s *Session) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Snapshot is a consistent view of the session for one frame.
type Snapshot struct {
	Camera     Camera
	Catalog    astro.Catalog
	Brightness astro.Brightness
	Switchable bool
	Loaded     bool
	LoadError  error
}

// Snapshot returns the state needed to render one frame. The star slice is
// shared; catalogs are never mutated after load.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Camera:     s.camera,
		Catalog:    s.catalog,
		Brightness: s.profile.Brightness(),
		Switchable: s.profile.Switchable(),
		Loaded:     s.loaded,
		LoadError:  s.loadErr,
	}
}
