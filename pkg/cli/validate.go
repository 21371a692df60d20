package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/cli/config"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var scoringCfg config.Scoring

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the scoring configuration file",
		Flags:   scoringCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if scoringCfg.Path() == "" {
				return goerr.New("scoring-config is required")
			}

			cfg, err := scoringCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "scoring configuration validation failed")
			}

			logger.Info("Scoring configuration validation passed",
				"path", scoringCfg.Path(),
				"target_maturity", cfg.TargetMaturity,
				"max_acceptable_loss", cfg.MaxAcceptableLoss,
				"remediation_daily_rate", cfg.RemediationDailyRate,
			)
			return nil
		},
	}
}
