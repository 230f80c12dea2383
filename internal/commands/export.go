package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/siereport/internal/export"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		sections      []string
		description   string
		sampleSize    int
		fullListLimit int
	)

	cmd := &cobra.Command{
		Use:   "export <document>",
		Short: "Flattened export for LLM analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}

			opts := a.cfg.ExportOptions()
			opts.Report = a.options()
			opts.Description = description
			opts.Now = a.now()
			if cmd.Flags().Changed("sections") {
				flags, err := export.ParseFlags(sections)
				if err != nil {
					return err
				}
				opts.Flags = flags
			}
			if sampleSize > 0 {
				opts.SampleSize = sampleSize
			}
			if fullListLimit > 0 {
				opts.FullListLimit = fullListLimit
			}

			out := export.Build(cmd.Context(), rc, opts)
			for _, se := range out.Errors {
				a.failed = append(a.failed, se.Section+": "+se.Message)
			}
			return a.emit(cmd, out, renderers{})
		},
	}

	cmd.Flags().StringSliceVar(&sections, "sections", nil,
		"only these sections: summary, income, balance, ledger, key_ratios, previous_years, transactions")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the analysis should focus on")
	cmd.Flags().IntVar(&sampleSize, "sample-size", 0, "number of sampled transactions (default from config)")
	cmd.Flags().IntVar(&fullListLimit, "full-list-limit", 0, "largest transaction count exported in full (default from config)")

	return cmd
}
