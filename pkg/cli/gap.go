package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/cli/config"
	"github.com/secmon-lab/briareus/pkg/usecase"
	"github.com/secmon-lab/briareus/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdGap() *cli.Command {
	var frameworkID int64
	var repoCfg config.Repository
	var scoringCfg config.Scoring

	flags := []cli.Flag{
		&cli.Int64Flag{
			Name:        "framework-id",
			Usage:       "ID of the framework to analyze",
			Required:    true,
			Destination: &frameworkID,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, scoringCfg.Flags()...)

	return &cli.Command{
		Name:    "gap",
		Aliases: []string{"g"},
		Usage:   "Run a gap analysis over the latest assessment and print it as JSON",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			scoring, err := scoringCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load scoring configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo, usecase.WithScoringConfig(scoring))

			analysis, err := uc.Compliance.ConductGapAnalysis(ctx, frameworkID)
			if err != nil {
				return goerr.Wrap(err, "gap analysis failed", goerr.V("framework_id", frameworkID))
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(analysis); err != nil {
				return goerr.Wrap(err, "failed to encode gap analysis")
			}
			return nil
		},
	}
}
