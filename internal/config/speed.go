package config

import "fmt"

// SpeedPreset represents a named simulation speed.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedTurbo  SpeedPreset = "turbo"
)

// SpeedPresets lists the presets from slowest to fastest.
var SpeedPresets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedTurbo}

// ParseSpeed validates a preset name.
func ParseSpeed(s string) (SpeedPreset, error) {
	for _, p := range SpeedPresets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown speed %q (want slow, normal, fast or turbo)", s)
}

// Pacing says how many world steps run per host frame.
// Exactly one of the two fields is above 1.
type Pacing struct {
	StepsPerFrame int // World steps per frame
	FramesPerStep int // Frames between world steps
}

// PacingForPreset returns the pacing of a preset. Unknown presets run at
// normal speed.
func PacingForPreset(p SpeedPreset) Pacing {
	switch p {
	case SpeedSlow:
		return Pacing{StepsPerFrame: 1, FramesPerStep: 3}
	case SpeedFast:
		return Pacing{StepsPerFrame: 2, FramesPerStep: 1}
	case SpeedTurbo:
		return Pacing{StepsPerFrame: 4, FramesPerStep: 1}
	default:
		return Pacing{StepsPerFrame: 1, FramesPerStep: 1}
	}
}

// Pacer turns host frames into world steps.
type Pacer struct {
	preset SpeedPreset
	pacing Pacing
	frame  int
}

// NewPacer creates a pacer for the given preset.
func NewPacer(p SpeedPreset) *Pacer {
	pc := &Pacer{}
	pc.Set(p)
	return pc
}

// Set switches the preset and restarts the frame count.
func (p *Pacer) Set(preset SpeedPreset) {
	p.preset = preset
	p.pacing = PacingForPreset(preset)
	p.frame = 0
}

// Preset returns the active preset.
func (p *Pacer) Preset() SpeedPreset {
	return p.preset
}

// Faster moves one preset up, stopping at turbo.
func (p *Pacer) Faster() {
	if i := p.index(); i < len(SpeedPresets)-1 {
		p.Set(SpeedPresets[i+1])
	}
}

// Slower moves one preset down, stopping at slow.
func (p *Pacer) Slower() {
	if i := p.index(); i > 0 {
		p.Set(SpeedPresets[i-1])
	}
}

func (p *Pacer) index() int {
	for i, s := range SpeedPresets {
		if s == p.preset {
			return i
		}
	}
	return 1
}

// Frame advances one host frame and returns the number of world steps to
// run in it.
func (p *Pacer) Frame() int {
	p.frame++
	if p.frame < p.pacing.FramesPerStep {
		return 0
	}
	p.frame = 0
	return p.pacing.StepsPerFrame
}
