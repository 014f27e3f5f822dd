package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/pitchstream/app"
	"github.com/kilianp07/pitchstream/config"
	"github.com/kilianp07/pitchstream/infra/logger"
)

var prospectsPath string

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Produce today's add recommendations from a prospects file",
	RunE:  advise,
}

func init() {
	adviseCmd.Flags().StringVarP(&prospectsPath, "prospects", "p", "prospects.json", "candidate pitchers file")
	rootCmd.AddCommand(adviseCmd)
}

func advise(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("advise").Errorf("service close: %v", err)
		}
	}()

	day := svc.Engine.Week().Day
	prospects, err := app.LoadProspects(prospectsPath, day)
	if err != nil {
		return err
	}
	rec, err := svc.Engine.DailyRecommendation(prospects)
	if err != nil {
		return err
	}

	fmt.Printf("Day %d plan (%.1f projected pts, optimal=%v, solved in %s)\n",
		rec.Day, rec.Plan.TotalPoints, rec.Plan.Optimal, rec.Plan.SolveTime)
	for _, c := range rec.Plan.Selected {
		fmt.Printf("  pick  %-22s %d start(s) add on day %d  %.1f pts [%s]\n",
			c.Name, len(c.PitchDays), rec.Plan.AddSchedule[c.ID], c.TotalExpectedPoints(), c.Tier)
	}
	if len(rec.ActToday) > 0 {
		fmt.Println("Act today:")
		for _, o := range rec.ActToday {
			fmt.Printf("  ADD   %-22s %.1f adjusted pts  %s\n", o.Candidate.Name, o.AdjustedValue, o.Assessment.Recommendation)
		}
	}
	if len(rec.Urgency) > 0 {
		fmt.Println("Urgency:")
		for _, u := range rec.Urgency {
			fmt.Printf("  %-22s %6.1f  %s\n", u.Candidate.Name, u.Score, u.Reason)
		}
	}
	for id, fb := range rec.Contingency {
		fmt.Printf("If %s is sniped: %d picks, %.1f pts\n", id, len(fb.Selected), fb.TotalPoints)
	}
	if len(rec.Plan.Backups) > 0 {
		fmt.Println("Backups:")
		for _, c := range rec.Plan.Backups {
			fmt.Printf("  %-22s %.1f pts [%s]\n", c.Name, c.TotalExpectedPoints(), c.Tier)
		}
	}
	return nil
}
