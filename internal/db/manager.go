package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/Irdis/rsqlcmd/internal/config"
	"github.com/Irdis/rsqlcmd/internal/locale"
)

// Manager owns the pool of configured connections for one run.
type Manager struct {
	connections map[string]*Connection
}

func NewManager() *Manager {
	return &Manager{connections: make(map[string]*Connection)}
}

// Load opens every enabled connection declared in the configuration,
// resolved against the chosen environment. Open failures are recorded on
// the connection rather than aborting the load, so a later Get reports
// them only for the connection actually used.
func (m *Manager) Load(conf *config.Config, environment string) {
	for name, conn := range conf.Connections {
		env := conn.ForEnvironment(environment)
		if env.Disabled {
			slog.Warn(locale.L.Logs.EnvironmentOff, "connection", name, "environment", environment)
			continue
		}

		driver, dsn, err := dataSource(conn, env, conf)
		if err != nil {
			m.connections[name] = &Connection{name: name, err: err}
			continue
		}

		db, err := sql.Open(driver, dsn)
		if err != nil {
			m.connections[name] = &Connection{
				name: name,
				err:  fmt.Errorf("unable to connect to %s: %w", name, err),
			}
			continue
		}
		m.connections[name] = &Connection{name: name, db: db}
	}
}

func dataSource(conn *config.Connection, env *config.Environment, conf *config.Config) (driver, dsn string, err error) {
	switch conn.Engine {
	case "postgres", "postgresql":
		sslMode := conn.SSLMode
		if sslMode == "" {
			sslMode = "prefer"
		}
		dsn = fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s connect_timeout=%d sslmode=%s",
			env.Host, env.Port, env.Database, env.Username, env.Password, conf.Timeout,
			sslMode,
		)
		return "pgx", dsn, nil
	case "sqlite", "sqlite3":
		return "sqlite", env.Database, nil
	default:
		return "", "", fmt.Errorf("unsupported engine %q", conn.Engine)
	}
}

// Get returns the named connection, or the only one when exactly one is
// configured and no name was given.
func (m *Manager) Get(name string) (*Connection, error) {
	if name == "" {
		if len(m.connections) == 1 {
			for _, conn := range m.connections {
				return conn, conn.err
			}
		}
		return nil, fmt.Errorf("%s", locale.L.Errors.NoConnection)
	}

	conn, ok := m.connections[name]
	if !ok {
		return nil, fmt.Errorf(locale.L.Errors.UnknownConnection, name)
	}
	return conn, conn.err
}

func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.connections))
	for name := range m.connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) Close() {
	for _, conn := range m.connections {
		if conn.db != nil {
			conn.db.Close()
		}
	}
}
