package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tandem-run/tandem/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "tandem",
	Short: "Profile-driven emulator and automation process orchestrator",
	Long: `Tandem launches, monitors, and tears down pairs of OS processes
described by named profiles: an emulator instance driven through its
console utility, and an automation app started once the emulator has had
time to boot. Extensions can observe and veto every lifecycle step.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/tandem/config.toml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/tandem")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TANDEM")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TANDEM_EMULATOR_CONSOLE_COMMAND for emulator.console_command
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
