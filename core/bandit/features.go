package bandit

// NumFeatures is the dimension of the context vector.
const NumFeatures = 13

// Context carries the raw matchup features for one candidate. Vector
// normalizes them to comparable scales so the shared linear model is not
// dominated by any single unit.
type Context struct {
	// Pitcher quality
	ERA    float64
	KPer9  float64
	BBPer9 float64
	HRPer9 float64
	GBRate float64

	// Opposing lineup
	OppWRCPlus float64
	OppKRate   float64
	OppHRRate  float64

	// Venue and situation
	ParkHRFactor float64
	Home         bool

	// Schedule
	TwoStart             bool
	DaysUntilStart       int
	DaysUntilUnavailable int

	// Extras
	CatcherFramingRuns float64
	WeatherHRIndex     float64 // 1-10, 5 neutral
}

// DefaultContext returns league-neutral feature values.
func DefaultContext() Context {
	return Context{
		ERA:                  4.00,
		KPer9:                8.0,
		BBPer9:               3.0,
		HRPer9:               1.2,
		GBRate:               0.45,
		OppWRCPlus:           100,
		OppKRate:             0.22,
		OppHRRate:            0.028,
		ParkHRFactor:         100,
		Home:                 true,
		DaysUntilStart:       1,
		DaysUntilUnavailable: 7,
		WeatherHRIndex:       5,
	}
}

// Vector converts the context into the normalized feature vector consumed by
// the bandit. Each feature is oriented so larger means more favorable.
func (c Context) Vector() []float64 {
	b := func(v bool) float64 {
		if v {
			return 1
		}
		return 0
	}
	return []float64{
		(4.50 - c.ERA) / 1.5,
		(c.KPer9 - 7.0) / 3.0,
		(3.5 - c.BBPer9) / 1.5,
		(1.3 - c.HRPer9) / 0.5,
		(c.GBRate - 0.40) / 0.15,
		(100 - c.OppWRCPlus) / 30,
		(c.OppKRate - 0.20) / 0.05,
		(0.030 - c.OppHRRate) / 0.010,
		(100 - c.ParkHRFactor) / 20,
		b(c.Home),
		b(c.TwoStart),
		c.CatcherFramingRuns / 10,
		(5 - c.WeatherHRIndex) / 4,
	}
}
