package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/siereport/internal/checks"
	"github.com/cleared-dev/siereport/internal/render"
)

func newCheckCommand(a *app) *cobra.Command {
	var strict, allYears bool

	cmd := &cobra.Command{
		Use:   "check <document>",
		Short: "Validate the document without changing any numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			var findings []checks.Finding
			if allYears {
				findings = checks.RunAllYears(rc)
			} else {
				findings = checks.Run(rc, a.options().Year)
			}
			if findings == nil {
				findings = []checks.Finding{}
			}
			a.findings = len(findings)
			for _, f := range findings {
				a.log.Warn().Int("invariant", f.Invariant).Str("ref", f.Ref).Msg(f.Description)
			}

			if err := a.emit(cmd, findings, renderers{
				markdown: func() string { return render.Findings(findings) },
			}); err != nil {
				return err
			}
			if strict && len(findings) > 0 {
				return fmt.Errorf("%d findings", len(findings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when there are findings")
	cmd.Flags().BoolVar(&allYears, "all-years", false, "check every relative year, not just --year")

	return cmd
}
