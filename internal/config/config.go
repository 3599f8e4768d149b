// Package config resolves harness settings from flags, env files and the
// process environment.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/leosac/devkit/internal/validation"
)

// Environment variables the harness understands.
const (
	// EnvDaemonHost overrides the container daemon address.
	EnvDaemonHost = "DOCKER_HOST"
	// EnvAPIEndpoint overrides the daemon's websocket API endpoint.
	EnvAPIEndpoint = "LEOSAC_API_URL"
)

// Defaults used when neither flags nor environment provide a value.
const (
	// DefaultDaemonHost is the daemon's conventional local socket.
	DefaultDaemonHost = "unix:///var/run/docker.sock"
	// DefaultAPIEndpoint is where a locally running daemon serves its
	// websocket API.
	DefaultAPIEndpoint = "ws://127.0.0.1:8888/websocket"
)

// Config holds the configuration for devkit commands.
type Config struct {
	// Env holds resolved KEY=value settings.
	Env map[string]string
}

// New creates a new Config instance.
func New() *Config {
	return &Config{
		Env: make(map[string]string),
	}
}

// LoadEnvFile loads environment variables from a file.
// Returns nil if the file doesn't exist (not an error).
func (c *Config) LoadEnvFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, not an error
		}
		return fmt.Errorf("failed to open env file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value format
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Simple variable expansion: ${VAR} -> value of VAR
		value = c.expandVars(value)

		// Env-file entries override process environment values, which were
		// loaded first (precedence: flags > env-file > environment).
		c.Env[key] = value
	}

	return scanner.Err()
}

// LoadFromEnvironment loads environment variables from the current process.
func (c *Config) LoadFromEnvironment() {
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}

		// Only set if not already set (precedence: flags > environment)
		if _, exists := c.Env[parts[0]]; !exists {
			c.Env[parts[0]] = parts[1]
		}
	}
}

// SetFlag sets a configuration value from a command-line flag (overrides
// anything else).
func (c *Config) SetFlag(key, value string) {
	c.Env[key] = value
}

// Get returns the resolved value for key, or "" when unset.
func (c *Config) Get(key string) string {
	return c.Env[key]
}

// DaemonHost returns the container daemon address: the DOCKER_HOST setting
// when present, the conventional local socket otherwise.
func (c *Config) DaemonHost() string {
	if v := c.Env[EnvDaemonHost]; v != "" {
		return v
	}
	return DefaultDaemonHost
}

// APIEndpoint returns the daemon's websocket API endpoint, defaulting to a
// locally running daemon.
func (c *Config) APIEndpoint() string {
	if v := c.Env[EnvAPIEndpoint]; v != "" {
		return v
	}
	return DefaultAPIEndpoint
}

// Validate checks every resolved setting, collecting all problems.
func (c *Config) Validate() error {
	var errs validation.Errors

	if err := validation.SocketAddr(EnvDaemonHost, c.DaemonHost()); err != nil {
		errs = append(errs, err)
	}
	if err := validation.URL(EnvAPIEndpoint, c.APIEndpoint()); err != nil {
		errs = append(errs, err)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// expandVars performs simple variable expansion for ${VAR} syntax.
func (c *Config) expandVars(value string) string {
	result := value

	// Simple expansion: ${VAR}
	for {
		start := strings.Index(result, "${")
		if start == -1 {
			break
		}

		end := strings.Index(result[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := result[start+2 : end]

		// Look up the variable value
		varValue := ""
		if val, exists := c.Env[varName]; exists {
			varValue = val
		} else if val := os.Getenv(varName); val != "" {
			varValue = val
		}

		result = result[:start] + varValue + result[end+1:]
	}

	return result
}
