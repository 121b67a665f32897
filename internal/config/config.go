package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/Irdis/rsqlcmd/internal/locale"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Environment struct {
	Host     string `toml:"host"`
	Port     uint16 `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	Disabled bool
}

type Connection struct {
	Engine      string `toml:"engine"`
	Host        string `toml:"host"`
	Port        uint16 `toml:"port"`
	Database    string `toml:"database"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	SSLMode     string `toml:"sslmode"`
	Environment map[string]*Environment
}

type LoggerConfigs struct {
	ConsoleLevel  string `toml:"console_level"`
	ConsoleOutput string `toml:"console_output"`
	FileLevel     string `toml:"file_level"`
	FileOutput    string `toml:"file_output"`
}

type PathConfigs struct {
	Connections string `toml:"connections"`
}

type Config struct {
	Locale      string                 `toml:"locale"`
	MaxRetries  uint8                  `toml:"max_retries"`
	Timeout     uint8                  `toml:"timeout"`
	Paths       PathConfigs            `toml:"paths"`
	Connections map[string]*Connection `toml:"connections"`
	Logging     LoggerConfigs          `toml:"logger"`
}

func NewConfig() *Config {
	return &Config{
		MaxRetries: 3,
		Timeout:    30,
	}
}

func Load(path string) (*Config, error) {
	conf := NewConfig()

	_, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, fmt.Errorf("error loading config TOML: %w", err)
	}

	if conf.Logging.ConsoleOutput != "" {
		if err := conf.validateLoggerConfig(); err != nil {
			return nil, err
		}
	}

	if err := conf.loadConnections(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) GetConnection(name string) *Connection {
	return c.Connections[name]
}

func (c *Config) validateLoggerConfig() error {
	consoleOutputs := []string{"stderr", "stdout"}

	if !slices.Contains(consoleOutputs, c.Logging.ConsoleOutput) {
		return fmt.Errorf("%s is not in valid console outputs [%v]!", c.Logging.ConsoleOutput, consoleOutputs)
	}

	return nil
}

// Resolve fills an environment's blanks from the connection-level
// defaults. Postgres connections without a host are disabled rather than
// failed; sqlite needs no host at all.
func (c *Connection) Resolve(env *Environment) {
	if env.Host == "" && c.Engine != "sqlite" {
		if c.Host == "" {
			slog.Warn(locale.L.Logs.NoHostSpecified)
			env.Disabled = true
			return
		}
		env.Host = c.Host
	}
	if env.Database == "" {
		env.Database = c.Database
	}
	if env.Port == 0 {
		env.Port = c.Port
	}
	if env.Username == "" {
		env.Username = c.Username
	}
	if env.Password == "" {
		env.Password = c.Password
	}
	env.Password = resolvePassword(env.Password)
}

// ForEnvironment returns the connection's resolved settings for one
// environment, falling back to the connection-level settings wrapped as an
// implicit environment when none is declared.
func (c *Connection) ForEnvironment(name string) *Environment {
	env := c.Environment[name]
	if env == nil {
		env = &Environment{
			Host:     c.Host,
			Port:     c.Port,
			Username: c.Username,
			Password: c.Password,
			Database: c.Database,
		}
	}
	c.Resolve(env)
	return env
}

func (c *Config) loadConnections() error {
	// Secrets may live in a .env file next to the binary; its absence is
	// fine, passwords can be spelled out or come from the process env.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error loading .env file: %w", err)
	}

	if c.Paths.Connections == "" {
		return nil
	}

	var connections map[string]*Connection
	_, err := toml.DecodeFile(c.Paths.Connections, &connections)
	if err != nil {
		return fmt.Errorf("error loading connections TOML: %w", err)
	}

	c.Connections = connections

	return nil
}

// resolvePassword expands ${VAR} references against the environment,
// which godotenv has already primed from .env.
func resolvePassword(password string) string {
	if strings.HasPrefix(password, "${") && strings.HasSuffix(password, "}") {
		envVar := strings.TrimPrefix(strings.TrimSuffix(password, "}"), "${")
		return os.Getenv(envVar)
	}
	return password
}
