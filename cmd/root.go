package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/darmiel/voxauth/internal/buildinfo"
	"github.com/darmiel/voxauth/internal/logging"
)

const (
	LogLevelKey   = "log.level"
	LogFormatKey  = "log.format"
	LogNoColorKey = "log.no_color"

	EndpointKey   = "endpoint"
	AdminTokenKey = "admin_token"

	envPrefix      = "VOXAUTH"
	userConfigName = ".voxauth"
)

var (
	userConfig string
	f          = NewFactory()
)

var rootCmd = &cobra.Command{
	Use:   "voxauth",
	Short: fmt.Sprintf("voxauth token broker (version: %s, commit: %s)", buildinfo.Version, buildinfo.CommitHash),
	Long: `voxauth issues short-lived access tokens for voice and chat sessions.
It turns participant and channel URIs into token requests and fetches signed
tokens from a token issuing endpoint, or acts as one.`,
	Version:           buildinfo.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

// setupRun reads the user config and configures logging before any command runs.
// A broken user config is reported only after logging reflects the flags.
func setupRun(_ *cobra.Command, _ []string) error {
	used, err := readUserConfig()
	logging.Init(logging.Options{
		Level:   viper.GetString(LogLevelKey),
		Format:  viper.GetString(LogFormatKey),
		NoColor: viper.GetBool(LogNoColorKey),
	})
	if err != nil {
		return fmt.Errorf("reading user config: %w", err)
	}
	if used != "" {
		log.Debug().Str("path", used).Msg("loaded user config")
	}
	return nil
}

func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if !errors.As(err, new(BeQuietError)) {
		log.Error().Err(err).Msg("execution failed")
	}
	os.Exit(1)
}

func init() {
	logging.InitDefault()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&userConfig, "user-config", "",
		"User configuration file for default values (default is $HOME/.voxauth.yaml)")
	flags.StringVar(&f.Endpoint, "endpoint", "", "Token issuing endpoint or voxauth server URL")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console, json)")
	flags.Bool("no-color", false, "Disable color output")

	bindFlags(flags, map[string]string{
		LogLevelKey:   "log-level",
		LogFormatKey:  "log-format",
		LogNoColorKey: "no-color",
		EndpointKey:   "endpoint",
	})

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// bindFlags maps viper keys to flag names.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
}

// readUserConfig returns the path of the config file in use, or "" if none was found.
func readUserConfig() (string, error) {
	if userConfig != "" {
		viper.SetConfigFile(userConfig)
	} else {
		for _, dir := range userConfigDirs() {
			viper.AddConfigPath(dir)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(userConfigName)
	}

	err := viper.ReadInConfig()
	if errors.As(err, new(viper.ConfigFileNotFoundError)) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return viper.ConfigFileUsed(), nil
}

// userConfigDirs lists the lookup order: working directory, home, then the OS config dir.
func userConfigDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "voxauth"))
	}
	return dirs
}
