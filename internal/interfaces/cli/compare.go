package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grasslabel/ipscore/internal/application/verification"
	"github.com/grasslabel/ipscore/internal/domain/scoring"
	"github.com/grasslabel/ipscore/internal/infrastructure/monitoring/logging"
)

// capUseDefault is the sentinel NoOptDefVal of --cap-citations: the flag
// given without a value selects the configured default cap.
const capUseDefault = -1

// NewCompareCmd creates the compare subcommand.
func NewCompareCmd() *cobra.Command {
	var capCitations float64
	var outPath string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Reproduce historical scoring formulas and compare rankings",
		Long: "compare loads the historical scoring exports and the current candidate\n" +
			"population, verifies both historical formulas against their exports, and\n" +
			"reports ranking overlap, score distributions and data coverage.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			cap := capCitations
			if !cmd.Flags().Changed("cap-citations") {
				cap = scoring.UncappedCitations
			} else if cap == capUseDefault {
				cap = cliCtx.Config.Compare.DefaultCitationCap
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
				cliCtx.Logger.Info("writing report", logging.String("path", outPath))
			}

			h := verification.New(cliCtx.Config, cliCtx.Logger, out)
			return h.Run(verification.Options{CitationCap: cap})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&capCitations, "cap-citations", capUseDefault,
		"cap competitor citations before normalization (bare flag uses the configured default)")
	f.Lookup("cap-citations").NoOptDefVal = "-1"
	f.StringVarP(&outPath, "out", "o", "", "write the report to a file instead of stdout")

	return cmd
}
