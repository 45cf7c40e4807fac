// Package cmd provides the root command and CLI setup for stitch.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"stitch.dev/pkg/stitch/internal/adapter"
	"stitch.dev/pkg/stitch/internal/controller"
	"stitch.dev/pkg/stitch/internal/domain"
)

var corpusStore adapter.CorpusStore
var workflow domain.Workflow
var ui controller.UI

// corpusOutputDirFlag is a root-level flag shared by commands that write the
// generated corpus.
var corpusOutputDirFlag string

// catalogPathFlag points at the YAML catalog describing the subject program.
var catalogPathFlag string

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	corpusStore = adapter.NewCorpusStore()
	workflow = domain.NewWorkflow(engineConfigFromViper(), corpusStore, ui)
}

const catalogHelp = `The catalog is a YAML file describing the subject program's
accessible objects: its types with their constructors, methods, and
fields, plus free functions. See examples/ for the format.`

const rootLongDescription = `Stitch generates random test cases for a subject program by chaining
calls to its constructors, methods, functions, and fields, recursively
constructing every argument a call needs.

` + catalogHelp

const generateLongDescription = `Generate a corpus of test cases from the given catalog and write each
rendered test case to the output directory.

` + catalogHelp

const listLongDescription = `List the accessible objects of a catalog.

` + catalogHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stitch",
		Short: "Random test case generator",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&corpusOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for generated test cases",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVarP(&catalogPathFlag, catalogFlagName, "c", viper.GetString(catalogConfigKey), "path to the subject catalog file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(catalogFlagName), catalogConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("verbose"), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func defaultEngineConfig() domain.Config {
	return domain.DefaultConfig()
}

// engineConfigFromViper builds the construction configuration from config
// file, environment, and defaults.
func engineConfigFromViper() domain.Config {
	return domain.Config{
		MaxRecursion:              viper.GetInt(maxRecursionConfigKey),
		PrimitiveReuseProbability: viper.GetFloat64(primitiveReuseConfigKey),
		ObjectReuseProbability:    viper.GetFloat64(objectReuseConfigKey),
		NoneProbability:           viper.GetFloat64(noneProbabilityConfigKey),
		Transactional:             viper.GetBool(transactionalConfigKey),
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
