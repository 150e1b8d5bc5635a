package main

import (
	"fmt"
	"os"

	"factprime/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "factprime",
	Short: "factprime - factorials and prime checks",
	Long: `factprime computes exact factorials and checks whether integers are prime.

Factorials are memoized for the life of the process, so asking for a larger
value only multiplies from the largest one already known.

Run without arguments to start the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Interactive mode logs to files under the workspace instead
		if cmd == cmd.Root() {
			return nil
		}

		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build(zap.Fields(zap.String("run", logging.RunID())))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

// factorialCmd prints n! for each argument
var factorialCmd = &cobra.Command{
	Use:   "factorial [n...]",
	Short: "Print the factorial of each number",
	Long: `Computes n! for every argument, in parallel, and prints one line per
argument in the order given. Put negative numbers after "--".

Example:
  factprime factorial 5 20 100
  factprime factorial -- -3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFactorial,
}

// primeCmd prints the primality of each argument
var primeCmd = &cobra.Command{
	Use:   "prime [n...]",
	Short: "Check whether each number is prime",
	Long: `Checks every argument by trial division, in parallel, and prints one
line per argument in the order given.

Example:
  factprime prime 2 15 2147483647`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrime,
}

// configCmd groups config file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the factprime config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config",
	RunE:  runConfigShow,
}

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the factprime version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "factprime %s\n", version)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <workspace>/.factprime/config.yaml)")

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(factorialCmd)
	rootCmd.AddCommand(primeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
