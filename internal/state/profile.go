package state

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-starfield/internal/astro"
)

// Input constants shared by every profile.
const (
	// DragSensitivity is the rotation in radians per dragged pixel.
	DragSensitivity = 0.01

	// ZoomOutFactor and ZoomInFactor scale the camera per wheel tick.
	ZoomOutFactor = 0.9
	ZoomInFactor  = 1.1

	// DefaultScale is the initial zoom in pixels per world unit.
	DefaultScale = 500.0
)

// Trigger selects which pointer gesture switches the projection mode.
type Trigger int

const (
	TriggerNone           Trigger = iota // mode is fixed
	TriggerSecondaryClick                // right click advances the mode
	TriggerPrimaryClick                  // left press/release without movement
)

// String returns the trigger name.
func (t Trigger) String() string {
	switch t {
	case TriggerNone:
		return "none"
	case TriggerSecondaryClick:
		return "secondary-click"
	case TriggerPrimaryClick:
		return "primary-click"
	default:
		return "unknown"
	}
}

// Profile is one deployment choice of the viewer: which projections it
// offers, how bright stars are ramped, and how the mode is switched.
type Profile struct {
	Name      string
	Modes     []astro.ProjectionMode
	Threshold float64
	Trigger   Trigger

	InitialScale float64
	// MinScale and MaxScale bound zooming; zero leaves that side unbounded.
	MinScale float64
	MaxScale float64
}

// Named profiles.
const (
	ProfileCycle   = "cycle"
	ProfileToggle  = "toggle"
	ProfileFishEye = "fisheye"
)

// CycleProfile offers all three projections, cycled by right click.
func CycleProfile() Profile {
	return Profile{
		Name:         ProfileCycle,
		Modes:        []astro.ProjectionMode{astro.FishEye, astro.Spherical, astro.SphericalExternal},
		Threshold:    astro.ThresholdCycle,
		Trigger:      TriggerSecondaryClick,
		InitialScale: DefaultScale,
	}
}

// ToggleProfile toggles between fish-eye and spherical on a plain click.
func ToggleProfile() Profile {
	return Profile{
		Name:         ProfileToggle,
		Modes:        []astro.ProjectionMode{astro.FishEye, astro.Spherical},
		Threshold:    astro.ThresholdToggle,
		Trigger:      TriggerPrimaryClick,
		InitialScale: DefaultScale,
	}
}

// FishEyeProfile is the fixed fish-eye viewer.
func FishEyeProfile() Profile {
	return Profile{
		Name:         ProfileFishEye,
		Modes:        []astro.ProjectionMode{astro.FishEye},
		Threshold:    astro.ThresholdNone,
		Trigger:      TriggerNone,
		InitialScale: DefaultScale,
	}
}

// ProfileNames lists the accepted profile names.
func ProfileNames() []string {
	return []string{ProfileCycle, ProfileToggle, ProfileFishEye}
}

// ProfileByName returns the named profile.
func ProfileByName(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ProfileCycle, "":
		return CycleProfile(), nil
	case ProfileToggle:
		return ToggleProfile(), nil
	case ProfileFishEye, "fish-eye":
		return FishEyeProfile(), nil
	default:
		return Profile{}, fmt.Errorf("unknown profile %q (want one of %s)",
			name, strings.Join(ProfileNames(), ", "))
	}
}

// Switchable reports whether the mode can change at runtime.
func (p Profile) Switchable() bool {
	return len(p.Modes) > 1 && p.Trigger != TriggerNone
}

// Brightness returns the magnitude ramp of this profile.
func (p Profile) Brightness() astro.Brightness {
	return astro.NewBrightness(p.Threshold)
}

// Validate checks the profile for values the session cannot work with.
func (p Profile) Validate() error {
	if len(p.Modes) == 0 {
		return fmt.Errorf("profile %q: no projection modes", p.Name)
	}
	for _, m := range p.Modes {
		if !m.Valid() {
			return fmt.Errorf("profile %q: invalid projection mode %d", p.Name, int(m))
		}
	}
	if p.Threshold >= astro.FaintLimit {
		return fmt.Errorf("profile %q: threshold %.2f must be below %.1f", p.Name, p.Threshold, astro.FaintLimit)
	}
	if p.InitialScale <= 0 {
		return fmt.Errorf("profile %q: initial scale must be positive", p.Name)
	}
	if p.MinScale < 0 || p.MaxScale < 0 {
		return fmt.Errorf("profile %q: zoom bounds must not be negative", p.Name)
	}
	if p.MaxScale > 0 && p.MinScale > p.MaxScale {
		return fmt.Errorf("profile %q: min scale %.2f exceeds max scale %.2f", p.Name, p.MinScale, p.MaxScale)
	}
	return nil
}

// indexOf returns the position of m in the profile's modes, or 0.
func (p Profile) indexOf(m astro.ProjectionMode) int {
	for i, pm := range p.Modes {
		if pm == m {
			return i
		}
	}
	return 0
}

// clampScale applies the optional zoom bounds.
func (p Profile) clampScale(s float64) float64 {
	if p.MinScale > 0 && s < p.MinScale {
		return p.MinScale
	}
	if p.MaxScale > 0 && s > p.MaxScale {
		return p.MaxScale
	}
	return s
}
