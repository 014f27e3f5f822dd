package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kilianp07/pitchstream/core/bandit"
	"github.com/kilianp07/pitchstream/core/engine"
	"github.com/kilianp07/pitchstream/core/model"
	"github.com/kilianp07/pitchstream/core/risk"
)

// ProspectInput is the JSON shape of one candidate in the prospects file.
// Zero-valued stats are substituted with league averages downstream.
type ProspectInput struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Team         string  `json:"team"`
	PitchDays    []int   `json:"pitch_days"`
	Opponent     string  `json:"opponent"`
	Park         string  `json:"park"`
	Home         bool    `json:"home"`
	OwnershipPct float64 `json:"ownership_pct"`
	SnipeTier    string  `json:"snipe_tier"`

	ERA        float64 `json:"era"`
	KPer9      float64 `json:"k_per_9"`
	BBPer9     float64 `json:"bb_per_9"`
	HRPer9     float64 `json:"hr_per_9"`
	GBRate     float64 `json:"gb_rate"`
	FBRate     float64 `json:"fb_rate"`
	Starts     int     `json:"starts"`
	ExpectedIP float64 `json:"expected_ip"`

	OppWRCPlus     float64 `json:"opp_wrc_plus"`
	WeatherHRIndex float64 `json:"weather_hr_index"`
}

// LoadProspects reads and converts a prospects file.
func LoadProspects(path string, currentDay int) ([]engine.Prospect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prospects: %w", err)
	}
	var inputs []ProspectInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parse prospects: %w", err)
	}

	out := make([]engine.Prospect, 0, len(inputs))
	for i, in := range inputs {
		if in.ID == "" {
			return nil, fmt.Errorf("prospect %d has no id", i)
		}
		ctx := bandit.DefaultContext()
		if in.ERA > 0 {
			ctx.ERA = in.ERA
		}
		if in.KPer9 > 0 {
			ctx.KPer9 = in.KPer9
		}
		if in.BBPer9 > 0 {
			ctx.BBPer9 = in.BBPer9
		}
		if in.HRPer9 > 0 {
			ctx.HRPer9 = in.HRPer9
		}
		if in.GBRate > 0 {
			ctx.GBRate = in.GBRate
		}
		if in.OppWRCPlus > 0 {
			ctx.OppWRCPlus = in.OppWRCPlus
		}
		if in.WeatherHRIndex > 0 {
			ctx.WeatherHRIndex = in.WeatherHRIndex
		}
		ctx.OppKRate = model.OpponentKRate(in.Opponent)
		ctx.OppHRRate = model.OpponentHRRate(in.Opponent)
		ctx.ParkHRFactor = model.VenueHRFactor(in.Park) * 100
		ctx.Home = in.Home
		ctx.TwoStart = len(in.PitchDays) >= 2
		if first := firstDay(in.PitchDays); first >= currentDay {
			ctx.DaysUntilStart = first - currentDay
		}

		out = append(out, engine.Prospect{
			Candidate: model.Candidate{
				ID:           in.ID,
				Name:         in.Name,
				Team:         in.Team,
				PitchDays:    in.PitchDays,
				SnipeTier:    model.ParseSnipeTier(in.SnipeTier),
				OwnershipPct: in.OwnershipPct,
				Opponents:    []string{in.Opponent},
			},
			Matchup: risk.Matchup{
				Pitcher: risk.Profile{
					Name:   in.Name,
					KPer9:  in.KPer9,
					BBPer9: in.BBPer9,
					HRPer9: in.HRPer9,
					GBRate: in.GBRate,
					FBRate: in.FBRate,
					Starts: in.Starts,
				},
				Opponent:   in.Opponent,
				Park:       in.Park,
				Home:       in.Home,
				ExpectedIP: in.ExpectedIP,
			},
			Context: ctx,
		})
	}
	return out, nil
}

func firstDay(days []int) int {
	first := -1
	for _, d := range days {
		if first == -1 || d < first {
			first = d
		}
	}
	return first
}
