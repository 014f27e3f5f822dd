package model

// League scoring weights. Home runs dominate the downside: one bad inning can
// erase several good starts.
const (
	PointsPerIP  = 5.0
	PointsPerK   = 2.0
	PointsPerBB  = -3.0
	PointsPerHR  = -13.0
	PointsPerHit = -1.0
)

// League-average pitcher baselines, used as conservative defaults when the
// feed is missing stats for a candidate.
const (
	TypicalIP      = 5.5
	TypicalKPer9   = 8.5
	TypicalBBPer9  = 3.0
	TypicalHRPer9  = 1.2
	TypicalHitPer9 = 8.5

	LeagueAvgHRRate = 0.027
	LeagueAvgKRate  = 0.22
)

// TeamHRRate holds per-plate-appearance home run rates by team.
var TeamHRRate = map[string]float64{
	"LAD": 0.038, "NYY": 0.036, "ATL": 0.034, "BAL": 0.033, "PHI": 0.032,
	"HOU": 0.031, "SEA": 0.030, "TEX": 0.030, "MIN": 0.029, "CLE": 0.029,
	"SD": 0.028, "TOR": 0.028, "MIL": 0.028, "KC": 0.027, "BOS": 0.027,
	"ARI": 0.027, "STL": 0.026, "SF": 0.026, "NYM": 0.026, "CIN": 0.026,
	"DET": 0.025, "TB": 0.025, "LAA": 0.025, "COL": 0.024, "CHC": 0.024,
	"PIT": 0.023, "WSH": 0.022, "MIA": 0.021, "CHW": 0.020, "OAK": 0.019,
}

// ParkHRFactor holds venue home run factors; 100 is neutral.
var ParkHRFactor = map[string]float64{
	"LAD": 127, "NYY": 119, "MIA": 118, "PHI": 114, "LAA": 113,
	"CIN": 112, "TEX": 110, "BAL": 108, "CHC": 107, "COL": 106,
	"BOS": 105, "TOR": 104, "MIL": 103, "ATL": 102, "MIN": 101,
	"ARI": 100, "HOU": 99, "NYM": 98, "WSH": 97, "KC": 96,
	"STL": 95, "CHW": 94, "CLE": 93, "DET": 92, "TB": 91,
	"SD": 90, "SEA": 88, "SF": 85, "OAK": 82, "PIT": 76,
}

// TeamKRate holds per-plate-appearance strikeout rates by team.
var TeamKRate = map[string]float64{
	"OAK": 0.26, "CHW": 0.25, "DET": 0.24, "ARI": 0.24, "COL": 0.24,
	"MIA": 0.23, "PIT": 0.23, "LAA": 0.23, "TEX": 0.23, "TB": 0.22,
	"CIN": 0.22, "NYM": 0.22, "WSH": 0.22, "SF": 0.22, "MIN": 0.22,
	"CHC": 0.21, "STL": 0.21, "TOR": 0.21, "BAL": 0.21, "MIL": 0.21,
	"BOS": 0.21, "ATL": 0.21, "SEA": 0.20, "PHI": 0.20, "SD": 0.20,
	"HOU": 0.20, "CLE": 0.20, "KC": 0.19, "NYY": 0.19, "LAD": 0.18,
}

// EliteOffenses are opponents that trigger the hard-filter combination check.
var EliteOffenses = map[string]bool{"LAD": true, "NYY": true, "ATL": true, "HOU": true}

// DangerParks are HR-friendly venues used by the same hard filter.
var DangerParks = map[string]bool{"LAD": true, "NYY": true, "CIN": true, "PHI": true}

// OpponentHRRate returns the HR rate for a team, falling back to league average.
func OpponentHRRate(team string) float64 {
	if r, ok := TeamHRRate[team]; ok {
		return r
	}
	return LeagueAvgHRRate
}

// OpponentKRate returns the K rate for a team, falling back to league average.
func OpponentKRate(team string) float64 {
	if r, ok := TeamKRate[team]; ok {
		return r
	}
	return LeagueAvgKRate
}

// VenueHRFactor returns the park factor scaled so 1.0 is neutral.
func VenueHRFactor(park string) float64 {
	if f, ok := ParkHRFactor[park]; ok {
		return f / 100.0
	}
	return 1.0
}
