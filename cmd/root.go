package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devforge/pmagent/internal/logger"
	"github.com/devforge/pmagent/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "1.0.0"
	// appFs is the filesystem all commands operate on. Tests swap in an
	// in-memory filesystem.
	appFs afero.Fs = afero.NewOsFs()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pmagent",
	Short: "pmagent turns a product idea into a feature specification bundle.",
	Long: `pmagent is a product-manager agent for the command line. Given a short
product idea it generates a feature specification, user stories, acceptance
criteria, technical requirements, a REST API skeleton and a database schema
skeleton, and writes them to disk as a structured artifact bundle.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVersion(version)
		logger.SetCommand(cmd.CommandPath() + " " + strings.Join(args, " "))
		cfg := GetConfig()
		crashDir := cfg.Project.CrashLogDir
		if crashDir != "" && !filepath.IsAbs(crashDir) {
			crashDir = filepath.Join(cfg.Project.RootDir, crashDir)
		}
		logger.SetCrashDir(crashDir)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.pmagent/.pmagent.yaml or $HOME/.pmagent.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

// GetStore initializes the feature store from the loaded configuration.
func GetStore() (*store.FileFeatureStore, error) {
	cfg := GetConfig()
	return store.NewFileFeatureStore(appFs, cfg.Project.RootDir, cfg.Data.Format)
}
