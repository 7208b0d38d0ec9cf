package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"afristay/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName         = "postgres"
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxIdleTime    = 5 * time.Minute
)

// Connection splits traffic between the primary (Write) and a replica (Read). Both may point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint is one postgres server as configured under DB_POSTGRES_READ or DB_POSTGRES_WRITE.
type Endpoint struct {
	Name     string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
	Timezone string
}

// DSN renders the endpoint as a postgres URL. Extra query params are merged with sslmode and timezone.
func (e Endpoint) DSN(params url.Values) string {
	query := url.Values{}
	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Database,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func databaseName(cfg *config.Config, base string) string {
	return cfg.DB.Postgres.Prefix + base
}

func WriteEndpoint(cfg *config.Config) Endpoint {
	write := cfg.DB.Postgres.Write

	return Endpoint{
		Name:     "write",
		Host:     write.Host,
		Port:     write.Port,
		Username: write.Username,
		Password: write.Password,
		Database: databaseName(cfg, write.Name),
		SSLMode:  write.SSLMode,
		Timezone: write.Timezone,
	}
}

func ReadEndpoint(cfg *config.Config) Endpoint {
	read := cfg.DB.Postgres.Read

	return Endpoint{
		Name:     "read",
		Host:     read.Host,
		Port:     read.Port,
		Username: read.Username,
		Password: read.Password,
		Database: databaseName(cfg, read.Name),
		SSLMode:  read.SSLMode,
		Timezone: read.Timezone,
	}
}

func New(cfg *config.Config) *Connection {
	retries, wait := cfg.DB.Postgres.MaxRetry, time.Duration(cfg.DB.Postgres.RetryWaitTime)*time.Second

	return &Connection{
		Read:  Connect(ReadEndpoint(cfg), retries, wait),
		Write: Connect(WriteEndpoint(cfg), retries, wait),
	}
}

// Connect dials endpoint up to retries times, waiting between attempts, and exits the process when every attempt fails.
func Connect(endpoint Endpoint, retries int, wait time.Duration) *sqlx.DB {
	logger := log.With().
		Str("name", endpoint.Name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.Database).
		Logger()

	var lastErr error

	for attempt := range max(retries, 1) {
		db, err := sqlx.Connect(driverName, endpoint.DSN(nil))
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxIdleTime(connMaxIdleTime)

			logger.Info().Msg("Connected to database")

			return db
		}

		lastErr = err

		logger.Error().Err(err).Int("attempt", attempt+1).Msg("Failed connecting to database, retrying")

		time.Sleep(wait)
	}

	logger.Fatal().Err(lastErr).Msg("Giving up connecting to database")

	return nil
}
