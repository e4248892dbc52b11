// internal/domain/brewsim/brewsim.go

// Package brewsim computes hypothetical brew adjustments for the
// sweet-spot slider on an experiment card.
//
// Everything in this package is pure and deterministic: given a stored
// experiment's original parameters and a slider position in [0,100], it
// derives adjusted grind/time/yield values and a categorical flow-behavior
// label for display. Nothing here touches the database.
package brewsim

// Adjustment directions. The direction comes from an experiment's notes
// field, which doubles as a dial-in recommendation label. Anything other
// than the two named directions (typically "Grind Finer" or "Dialed In")
// takes the default rule.
const (
	DirectionGrindCoarser = "Grind Coarser"
	DirectionAdjustDose   = "Adjust Dose"
)

// Flow-behavior labels, from no flow to gushing.
const (
	FlowNotDripping = "Not Dripping"
	FlowRestricted  = "Restricted"
	FlowSteady      = "Steady Flow (Ideal)"
	FlowMediumFast  = "Medium Fast"
	FlowVeryFast    = "Very fast"
)

// Params is a brew parameter triple the simulator adjusts.
type Params struct {
	GrindSize float64
	BrewTime  float64
	Yield     float64
}

// Baseline is the slider position at which Adjust returns the original
// parameters unchanged.
const Baseline = 50

// Adjust applies the linear adjustment rule selected by direction to the
// original parameters. diff = slider - 50, so slider 50 is a no-op for
// every direction. BrewTime and Yield never go below zero.
func Adjust(direction string, orig Params, slider int) Params {
	diff := float64(slider - Baseline)

	var p Params
	switch direction {
	case DirectionGrindCoarser:
		p.GrindSize = orig.GrindSize + 0.05*diff
		p.BrewTime = orig.BrewTime - 0.2*diff
		p.Yield = orig.Yield - 0.05*diff
	case DirectionAdjustDose:
		p.GrindSize = orig.GrindSize
		p.BrewTime = orig.BrewTime + 0.1*diff
		p.Yield = orig.Yield + 0.1*diff
	default:
		p.GrindSize = orig.GrindSize - 0.05*diff
		p.BrewTime = orig.BrewTime + 0.2*diff
		p.Yield = orig.Yield + 0.05*diff
	}

	if p.BrewTime < 0 {
		p.BrewTime = 0
	}
	if p.Yield < 0 {
		p.Yield = 0
	}
	return p
}

// FlowBehavior maps an adjusted (grind, time) pair to a flow label.
//
// The cases are evaluated in precedence order; together they cover all of
// the plane, so every input maps to exactly one label. Grind thresholds
// are in signed dial units (negative = finer).
func FlowBehavior(grindSize, brewTime float64) string {
	switch {
	case brewTime <= 0:
		return FlowNotDripping
	case grindSize <= -9.5:
		return FlowNotDripping
	case grindSize <= -8.25:
		return FlowRestricted
	}

	if grindSize < -4 {
		// Finer-grind branch: long pulls choke first.
		switch {
		case brewTime > 50:
			return FlowNotDripping
		case brewTime > 35:
			return FlowRestricted
		case brewTime > 20:
			return FlowSteady
		default:
			return FlowMediumFast
		}
	}

	// Coarser-grind branch.
	switch {
	case brewTime < 20:
		return FlowVeryFast
	case brewTime < 30:
		return FlowMediumFast
	case brewTime < 40:
		return FlowSteady
	default:
		return FlowRestricted
	}
}

// Lightness returns the HSL lightness percentage for the slider's visual
// indicator. Hue stays fixed; only lightness tracks the slider.
func Lightness(slider int) float64 {
	return 25 + 0.6*float64(slider)
}

// IndicatorBars returns the three subordinate bar widths (percentages)
// for the slider indicator, clamped to [0,100]. The raw linear forms go
// out of range at the slider extremes.
func IndicatorBars(slider int) [3]float64 {
	s := float64(slider)
	bars := [3]float64{100 - s, 75 - 0.5*s, s}
	for i, v := range bars {
		if v < 0 {
			bars[i] = 0
		} else if v > 100 {
			bars[i] = 100
		}
	}
	return bars
}
