package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/pitchstream/app"
	"github.com/kilianp07/pitchstream/config"
	"github.com/kilianp07/pitchstream/core/bandit"
	"github.com/kilianp07/pitchstream/infra/logger"
)

var (
	resultID       string
	resultName     string
	resultPoints   float64
	resultExpected float64
)

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Record the realized points of a committed start",
	RunE:  recordResult,
}

func init() {
	resultCmd.Flags().StringVar(&resultID, "id", "", "candidate id")
	resultCmd.Flags().StringVar(&resultName, "name", "", "candidate name")
	resultCmd.Flags().Float64Var(&resultPoints, "points", 0, "realized fantasy points")
	resultCmd.Flags().Float64Var(&resultExpected, "expected", 0, "projected points at commit time")
	_ = resultCmd.MarkFlagRequired("id")
	_ = resultCmd.MarkFlagRequired("points")
	rootCmd.AddCommand(resultCmd)
}

func recordResult(cmd *cobra.Command, args []string) error {
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
			logger.New("result").Errorf("service close: %v", err)
		}
	}()

	ctx := bandit.DefaultContext()
	if err := svc.Engine.UpdateWithResult(resultID, resultName, ctx, resultPoints, resultExpected); err != nil {
		return err
	}
	fmt.Printf("recorded %.1f pts for %s\n", resultPoints, resultID)
	return nil
}
