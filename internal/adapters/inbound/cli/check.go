package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flaggate/flaggate/internal/adapters/outbound/envcfg"
	"github.com/flaggate/flaggate/internal/adapters/outbound/gitdiff"
	"github.com/flaggate/flaggate/internal/adapters/outbound/policyfile"
	"github.com/flaggate/flaggate/internal/adapters/outbound/registry"
	"github.com/flaggate/flaggate/internal/adapters/outbound/tui"
	"github.com/flaggate/flaggate/internal/application"
	"github.com/flaggate/flaggate/internal/domain"
)

func newCheckCmd() *cobra.Command {
	var (
		jsonOutput bool
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the governance gate against the configured commit range",
		Long:  "Fetch the flag registry, extract flag usage from the files changed between the configured commits, and evaluate governance policy. Exits non-zero on any violation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := envcfg.Load()
			if err != nil {
				return err
			}

			pol, err := cfg.Policy()
			if err != nil {
				return err
			}
			pol, err = policyfile.New().Apply(cfg.RepoPath, pol)
			if err != nil {
				return err
			}

			changes, err := newChangeSource(cfg)
			if err != nil {
				return err
			}
			reg := registry.NewClient(cfg.APIURL, cfg.APIToken, cfg.Account, cfg.Org, cfg.Project, pol.Environment)

			svc := application.NewCheckService(changes, reg).WithWorkers(workers)
			report, err := svc.Run(cmd.Context(), pol, cfg.CommitBefore, cfg.CommitAfter)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if !report.Passed {
				return fmt.Errorf("governance check failed with %d violation(s)", len(report.Violations))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().IntVar(&workers, "workers", 0, "Extraction worker count (default: GOMAXPROCS)")

	return cmd
}

// newChangeSource picks the remote provider when GitHub credentials are
// configured and falls back to the local repository otherwise.
func newChangeSource(cfg *envcfg.Config) (domain.ChangeSource, error) {
	if cfg.UseGitHub() {
		return gitdiff.NewGitHub(cfg.GitHubToken, cfg.GitHubRepo)
	}
	return gitdiff.NewLocal(cfg.RepoPath), nil
}
