package model

// SkyCondition is a human-friendly label for a cloud-cover reading.
// Keep these values stable; they appear in API responses and CSV reports.
type SkyCondition string

const (
	SkyClear        SkyCondition = "clear"
	SkyPartlyCloudy SkyCondition = "partly_cloudy"
	SkyOvercast     SkyCondition = "overcast"
)

func SkyFromCloudCover(cloudCoverPct float64) SkyCondition {
	switch {
	case cloudCoverPct < 25:
		return SkyClear
	case cloudCoverPct < 75:
		return SkyPartlyCloudy
	default:
		return SkyOvercast
	}
}
