package config

import "strconv"

type PgsqlConnectionConf struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
}

type DatabaseConfig struct {
	Pgsql PgsqlConnectionConf
}

func DatabaseConf() *DatabaseConfig {

	port, err := strconv.Atoi(envOr("DB_PORT", "5432"))
	if err != nil {
		port = 5432
	}

	return &DatabaseConfig{
		Pgsql: PgsqlConnectionConf{
			Host:     envOr("DB_HOST", "db"),
			Port:     port,
			Database: envOr("DB_NAME", "postgres"),
			Username: envOr("DB_USER", "postgres"),
			Password: envOr("DB_PASSWORD", "password"),
		},
	}
}
