package weather

import "github.com/rpggio/wanderlist/internal/domain/trip"

// Classify maps a WMO weather code to a condition and icon.
func Classify(code int) (trip.Condition, string) {
	switch code {
	case 0, 1:
		return trip.ConditionSunny, "fa-sun"
	case 2, 3:
		return trip.ConditionCloudy, "fa-cloud"
	case 45, 48:
		return trip.ConditionCloudy, "fa-smog"
	case 51, 53, 55, 61, 63, 65, 80, 81, 82:
		return trip.ConditionRain, "fa-cloud-rain"
	case 71, 73, 75, 77, 85, 86:
		return trip.ConditionRain, "fa-snowflake"
	case 95, 96, 99:
		return trip.ConditionStorm, "fa-cloud-bolt"
	default:
		return trip.ConditionSunny, "fa-sun"
	}
}
