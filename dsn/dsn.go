// Package dsn turns a connection string, the process environment, and a
// .pgpass password file into a *pgconn.Config, the way the teacher's
// pgconn.ParseConfig turns libpq-style settings into one.
package dsn

import (
	"fmt"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgpassfile"

	"github.com/coriolisdb/pgwire/pgconn"
)

// Parse builds a *pgconn.Config from connString, which may be either a
// "postgres://" URL or a libpq-style "key=value key=value" DSN, or empty
// (environment and defaults only). Settings are layered lowest to highest
// priority: built-in defaults, then PG* environment variables, then
// connString.
func Parse(connString string) (*pgconn.Config, error) {
	settings := defaultSettings()
	addEnvSettings(settings)

	if connString != "" {
		if strings.HasPrefix(connString, "postgres://") || strings.HasPrefix(connString, "postgresql://") {
			if err := addURLSettings(settings, connString); err != nil {
				return nil, fmt.Errorf("dsn: %w", err)
			}
		} else {
			addDSNSettings(settings, connString)
		}
	}

	port, err := parsePort(settings["port"])
	if err != nil {
		return nil, fmt.Errorf("dsn: %w", err)
	}

	config := &pgconn.Config{
		Host:          settings["host"],
		Port:          port,
		Database:      settings["database"],
		User:          settings["user"],
		Password:      settings["password"],
		RuntimeParams: make(map[string]string),
	}

	notRuntimeParams := map[string]struct{}{
		"host": {}, "port": {}, "database": {}, "user": {}, "password": {},
		"passfile": {}, "sslmode": {},
	}
	for k, v := range settings {
		if _, reserved := notRuntimeParams[k]; reserved {
			continue
		}
		config.RuntimeParams[k] = v
	}

	network, _ := pgconn.NetworkAddress(config.Host, config.Port)
	if network != "unix" {
		tlsConfig, err := configTLS(settings["sslmode"], config.Host)
		if err != nil {
			return nil, fmt.Errorf("dsn: %w", err)
		}
		config.TLSConfig = tlsConfig
		config.TLSFallback = settings["sslmode"] == "" || settings["sslmode"] == "prefer"
	}

	if config.Password == "" {
		if passfile, err := pgpassfile.ReadPassfile(settings["passfile"]); err == nil {
			passHost := config.Host
			if network == "unix" {
				passHost = "localhost"
			}
			config.Password = passfile.FindPassword(passHost, strconv.Itoa(int(config.Port)), config.Database, config.User)
		}
	}

	return config, nil
}

func defaultSettings() map[string]string {
	settings := map[string]string{
		"host": "localhost",
		"port": "5432",
	}

	if u, err := user.Current(); err == nil {
		settings["user"] = u.Username
		settings["passfile"] = filepath.Join(u.HomeDir, ".pgpass")
	}

	return settings
}

func addEnvSettings(settings map[string]string) {
	nameMap := map[string]string{
		"PGHOST":     "host",
		"PGPORT":     "port",
		"PGDATABASE": "database",
		"PGUSER":     "user",
		"PGPASSWORD": "password",
		"PGPASSFILE": "passfile",
		"PGSSLMODE":  "sslmode",
	}
	for envname, key := range nameMap {
		if v := os.Getenv(envname); v != "" {
			settings[key] = v
		}
	}
}

func addURLSettings(settings map[string]string, connString string) error {
	u, err := url.Parse(connString)
	if err != nil {
		return err
	}

	if u.User != nil {
		settings["user"] = u.User.Username()
		if password, present := u.User.Password(); present {
			settings["password"] = password
		}
	}

	if host := u.Hostname(); host != "" {
		settings["host"] = host
	}
	if port := u.Port(); port != "" {
		settings["port"] = port
	}

	if database := strings.TrimPrefix(u.Path, "/"); database != "" {
		settings["database"] = database
	}

	for k, v := range u.Query() {
		settings[k] = v[0]
	}

	return nil
}

var dsnRegexp = regexp.MustCompile(`([a-zA-Z_]+)=((?:'[^']*')|(?:[^ ]+))`)

func addDSNSettings(settings map[string]string, s string) {
	for _, m := range dsnRegexp.FindAllStringSubmatch(s, -1) {
		settings[m[1]] = strings.Trim(m[2], "'")
	}
}

func parsePort(s string) (uint16, error) {
	port, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", s, err)
	}
	return uint16(port), nil
}
