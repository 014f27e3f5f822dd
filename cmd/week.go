package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/pitchstream/app"
	"github.com/kilianp07/pitchstream/config"
	"github.com/kilianp07/pitchstream/infra/logger"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Inspect and advance the weekly horizon",
}

var weekShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current week state",
	RunE:  weekShow,
}

var weekAdvanceCmd = &cobra.Command{
	Use:   "advance",
	Short: "Move to the next day, releasing finished picks",
	RunE:  weekAdvance,
}

var weekNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a fresh week, keeping the learned state",
	RunE:  weekNew,
}

func init() {
	weekCmd.AddCommand(weekShowCmd, weekAdvanceCmd, weekNewCmd)
	rootCmd.AddCommand(weekCmd)
}

func withService(fn func(svc *app.Service) error) error {
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
			logger.New("week").Errorf("service close: %v", err)
		}
	}()
	return fn(svc)
}

func weekShow(cmd *cobra.Command, args []string) error {
	return withService(func(svc *app.Service) error {
		st := svc.Engine.Week()
		fmt.Printf("day %d/%d, %d/%d adds left\n", st.Day, st.Capacity.Days(), st.Budget.Remaining, st.Budget.Total)
		for _, p := range st.Committed {
			fmt.Printf("  committed %s\n", p)
		}
		if len(st.Dropped) > 0 {
			fmt.Printf("  dropped: %s\n", strings.Join(st.Dropped, ", "))
		}
		return nil
	})
}

func weekAdvance(cmd *cobra.Command, args []string) error {
	return withService(func(svc *app.Service) error {
		released := svc.Engine.AdvanceDay()
		st := svc.Engine.Week()
		fmt.Printf("now day %d, %d adds left\n", st.Day, st.Budget.Remaining)
		if len(released) > 0 {
			fmt.Printf("released: %s\n", strings.Join(released, ", "))
		}
		return nil
	})
}

func weekNew(cmd *cobra.Command, args []string) error {
	return withService(func(svc *app.Service) error {
		svc.Engine.NewWeek()
		fmt.Println("new week started")
		return nil
	})
}
