package route

// Congestion categories as reported by the directions provider.
const (
	CongestionLow      = "low"
	CongestionModerate = "moderate"
	CongestionHeavy    = "heavy"
	CongestionSevere   = "severe"
	CongestionUnknown  = "unknown"
)

// Display colors for congestion categories.
const (
	ColorGreen   = "green"
	ColorOrange  = "orange"
	ColorRed     = "red"
	ColorDarkRed = "darkred"
	ColorGray    = "gray"
)

// CongestionColor maps a congestion category to its display color. Absent or
// unrecognized categories fall through to gray, so this never fails.
func CongestionColor(congestion string) string {
	switch congestion {
	case CongestionLow:
		return ColorGreen
	case CongestionModerate:
		return ColorOrange
	case CongestionHeavy:
		return ColorRed
	case CongestionSevere:
		return ColorDarkRed
	default:
		return ColorGray
	}
}
