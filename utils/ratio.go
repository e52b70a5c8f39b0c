package utils

// SafeRatio = num / den, 0 kalau den == 0
func SafeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Percent = 100 * part / whole, 0 kalau whole == 0
func Percent(part, whole int) float64 {
	return 100 * SafeRatio(float64(part), float64(whole))
}
