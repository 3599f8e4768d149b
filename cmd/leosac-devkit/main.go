package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leosac/devkit/internal/config"
	"github.com/leosac/devkit/internal/logging"
	"github.com/leosac/devkit/internal/project"
)

var (
	version = "dev"

	cfg *config.Config

	// Global flags
	envFile    string
	verbose    bool
	daemonHost string
	apiURL     string
)

// defaultEnvFile returns the env file to load when --env-file is not given:
// config/devkit.env relative to the working directory, then devkit.env at
// the project root. Empty when neither exists.
func defaultEnvFile() string {
	local := filepath.Join("config", "devkit.env")
	if _, err := os.Stat(local); err == nil {
		return local
	}
	if root := project.Root(); root != "" {
		atRoot := filepath.Join(root, "devkit.env")
		if _, err := os.Stat(atRoot); err == nil {
			return atRoot
		}
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "leosac-devkit",
	Short: "Development harness for a Leosac daemon running in containers",
	Long: `leosac-devkit drives the containerized development environment of a
Leosac access-control daemon: it locates the project checkout, talks to the
container daemon that hosts the environment, and calls the daemon's
websocket API.

Configuration is resolved from flags, an env file and the process
environment, in that order of precedence.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.New()

		// Load configuration in precedence order (lowest to highest):
		// process environment, env file, command-line flags.
		cfg.LoadFromEnvironment()

		if envFile == "" {
			envFile = defaultEnvFile()
		}
		if envFile != "" {
			if err := cfg.LoadEnvFile(envFile); err != nil {
				return fmt.Errorf("failed to load env file: %w", err)
			}
		}

		if daemonHost != "" {
			cfg.SetFlag(config.EnvDaemonHost, daemonHost)
		}
		if apiURL != "" {
			cfg.SetFlag(config.EnvAPIEndpoint, apiURL)
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		return logging.Init(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to environment file (default: config/devkit.env or devkit.env at the project root)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&daemonHost, "host", "", "Container daemon address (default: $DOCKER_HOST or "+config.DefaultDaemonHost+")")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Daemon websocket API endpoint (default: $LEOSAC_API_URL or "+config.DefaultAPIEndpoint+")")

	rootCmd.AddCommand(projectRootCmd)
	rootCmd.AddCommand(psCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(apiCmd)
}

var projectRootCmd = &cobra.Command{
	Use:   "root",
	Short: "Print the project checkout root",
	Long: `Print the nearest ancestor of the working directory that contains a
.git directory. Fails when the working directory is not inside a checkout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := project.Root()
		if root == "" {
			return fmt.Errorf("not inside a project checkout (no .git directory found between here and the filesystem root)")
		}
		fmt.Fprintln(cmd.OutOrStdout(), root)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
