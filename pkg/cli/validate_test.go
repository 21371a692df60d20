package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/briareus/pkg/cli"
)

func writeScoringConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestValidateCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("valid config", func(t *testing.T) {
		path := writeScoringConfig(t, `
target_maturity = 5
remediation_daily_rate = 1200.0
`)
		err := cli.Run(ctx, []string{"briareus", "validate", "--scoring-config", path}, "test")
		gt.NoError(t, err)
	})

	t.Run("weights must sum to one", func(t *testing.T) {
		path := writeScoringConfig(t, `
[risk_weights]
likelihood = 0.9
financial = 0.9
operational = 0.0
reputational = 0.0
compliance = 0.0
`)
		err := cli.Run(ctx, []string{"briareus", "validate", "--scoring-config", path}, "test")
		gt.Error(t, err)
	})

	t.Run("missing path", func(t *testing.T) {
		err := cli.Run(ctx, []string{"briareus", "validate"}, "test")
		gt.Error(t, err)
	})

	t.Run("unreadable file", func(t *testing.T) {
		err := cli.Run(ctx, []string{"briareus", "validate", "--scoring-config", "/no/such/file.toml"}, "test")
		gt.Error(t, err)
	})
}
