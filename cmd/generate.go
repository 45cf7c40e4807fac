package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stitch.dev/pkg/stitch/internal/controller"
	"stitch.dev/pkg/stitch/internal/domain"
)

var generateCountFlag int
var generateLengthFlag int
var generateSeedFlag int64
var generateParallelFlag int
var generateTUIFlag bool

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [catalog]",
		Short: "Generate a corpus of test cases",
		Long:  generateLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := workflow
			if generateTUIFlag {
				w = domain.NewWorkflow(engineConfigFromViper(), corpusStore, controller.NewTUI(cmd.OutOrStdout()))
			}

			return w.Generate(cmd.Context(), domain.GenerateArgs{
				CatalogPath:  catalogPath(args),
				OutputDir:    viper.GetString(outputFlagName),
				Count:        viper.GetInt(countConfigKey),
				TargetLength: viper.GetInt(lengthConfigKey),
				Workers:      viper.GetInt(generateParallelConfigKey),
				Seed:         viper.GetInt64(seedConfigKey),
			})
		},
	}

	configureGenerateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&generateCountFlag, countFlagName, "n", viper.GetInt(countConfigKey), "number of test cases to generate")
	bindFlagToConfig(cmd.Flags().Lookup(countFlagName), countConfigKey)

	cmd.Flags().IntVarP(&generateLengthFlag, lengthFlagName, "l", viper.GetInt(lengthConfigKey), "target statement count per test case")
	bindFlagToConfig(cmd.Flags().Lookup(lengthFlagName), lengthConfigKey)

	cmd.Flags().Int64VarP(&generateSeedFlag, seedFlagName, "s", viper.GetInt64(seedConfigKey), "base seed for reproducible runs")
	bindFlagToConfig(cmd.Flags().Lookup(seedFlagName), seedConfigKey)

	cmd.Flags().IntVarP(&generateParallelFlag, generateParallelFlagName, "p", viper.GetInt(generateParallelConfigKey), "number of parallel generation workers")
	bindFlagToConfig(cmd.Flags().Lookup(generateParallelFlagName), generateParallelConfigKey)

	cmd.Flags().BoolVar(&generateTUIFlag, "tui", false, "force the interactive progress view")
}

// catalogPath resolves the catalog file: a positional argument wins over the
// flag/config value.
func catalogPath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}

	return viper.GetString(catalogConfigKey)
}
