package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/cli/config"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/usecase"
	"github.com/secmon-lab/briareus/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdAssess() *cli.Command {
	var riskID int64
	var methodologyName string
	var residual bool
	var repoCfg config.Repository
	var scoringCfg config.Scoring

	flags := []cli.Flag{
		&cli.Int64Flag{
			Name:        "risk-id",
			Usage:       "ID of the risk to assess",
			Required:    true,
			Destination: &riskID,
		},
		&cli.StringFlag{
			Name:        "methodology",
			Usage:       "Scoring methodology (simple_multiplication, weighted_average, quantitative, expert_judgment, monte_carlo)",
			Value:       "simple_multiplication",
			Destination: &methodologyName,
		},
		&cli.BoolFlag{
			Name:        "residual",
			Usage:       "Assess residual instead of inherent risk",
			Destination: &residual,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, scoringCfg.Flags()...)

	return &cli.Command{
		Name:    "assess",
		Aliases: []string{"a"},
		Usage:   "Run a one-shot risk assessment and print the score as JSON",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			method, err := types.ParseMethodology(methodologyName)
			if err != nil {
				return err
			}

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

			var score any
			if residual {
				score, err = uc.Risk.AssessResidualRisk(ctx, riskID, method, nil)
			} else {
				score, err = uc.Risk.AssessRisk(ctx, riskID, method, nil)
			}
			if err != nil {
				return goerr.Wrap(err, "assessment failed", goerr.V("risk_id", riskID))
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(score); err != nil {
				return goerr.Wrap(err, "failed to encode score")
			}
			return nil
		},
	}
}
