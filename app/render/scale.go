package render

import "math"

// niceStep picks a 1/2/5 x 10^k tick step giving about `ticks` intervals.
func niceStep(max float64, ticks int) float64 {
	if max <= 0 || ticks <= 0 {
		return 1
	}
	raw := max / float64(ticks)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch frac := raw / mag; {
	case frac <= 1:
		return mag
	case frac <= 2:
		return 2 * mag
	case frac <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// niceCeil rounds max (plus headroom for labels) up to a whole tick.
func niceCeil(max float64, ticks int) float64 {
	if max <= 0 {
		return 1
	}
	step := niceStep(max*1.1, ticks)
	return math.Ceil(max*1.1/step) * step
}
