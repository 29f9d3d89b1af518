package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/soapywu/pbxpkg/internal/config"
	"github.com/soapywu/pbxpkg/internal/logging"
)

// Version is set at build time.
var Version = "0.1.0"

var (
	// configPath holds the --config flag value.
	configPath string
	verbose    bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "pbxpkg",
	Short: "Add Swift package products to Xcode projects",
	Long: `pbxpkg edits an Xcode project.pbxproj in place to add a Swift package
product, by cloning a product of the same package that the project already
links (FirebaseFirestore -> FirebaseMessaging by default).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		l, err := logging.New(cfg.Logging.Level, verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every step")

	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(newIDCmd)
}
