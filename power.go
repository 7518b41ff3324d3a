package watchface

import "log/slog"

// PowerModeController tracks host visibility and ambient transitions and
// derives the effective power mode and text fidelity.
type PowerModeController struct {
	logger *slog.Logger

	lowBitAmbient bool
	propsSet      bool
	ambient       bool
	visible       bool
}

// NewPowerModeController returns a controller in interactive, invisible state.
func NewPowerModeController(logger *slog.Logger) *PowerModeController {
	if logger == nil {
		logger = slog.Default()
	}
	return &PowerModeController{logger: logger}
}

// SetLowBitAmbient records the display's low-bit ambient capability. The host
// reports it once at startup; later reports are ignored.
func (p *PowerModeController) SetLowBitAmbient(lowBit bool) {
	if p.propsSet {
		if lowBit != p.lowBitAmbient {
			p.logger.Debug("ignoring low-bit ambient change after startup",
				"current", p.lowBitAmbient, "reported", lowBit)
		}
		return
	}
	p.propsSet = true
	p.lowBitAmbient = lowBit
}

// LowBitAmbient reports the recorded capability.
func (p *PowerModeController) LowBitAmbient() bool {
	return p.lowBitAmbient
}

// SetAmbient records an ambient transition and reports whether the effective
// mode changed.
func (p *PowerModeController) SetAmbient(ambient bool) bool {
	if p.ambient == ambient {
		return false
	}
	p.ambient = ambient
	return true
}

// SetVisible records a visibility change and reports whether it changed.
func (p *PowerModeController) SetVisible(visible bool) bool {
	if p.visible == visible {
		return false
	}
	p.visible = visible
	return true
}

// Ambient reports whether the face is in any ambient mode.
func (p *PowerModeController) Ambient() bool { return p.ambient }

// Visible reports whether the face is visible.
func (p *PowerModeController) Visible() bool { return p.visible }

// Mode returns the effective power mode.
func (p *PowerModeController) Mode() PowerMode {
	switch {
	case !p.ambient:
		return PowerInteractive
	case p.lowBitAmbient:
		return PowerAmbientLowBit
	default:
		return PowerAmbientNormal
	}
}

// TextAntiAlias reports whether primary text is anti-aliased. Only low-bit
// panels in ambient mode turn it off.
func (p *PowerModeController) TextAntiAlias() bool {
	return !(p.ambient && p.lowBitAmbient)
}
