package postgres

//nolint:revive
import (
	"time"

	"campusroom/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName         = "postgres"
	maxOpenConnections = 10
	maxIdleConnections = 10
	connMaxIdleTime    = 5 * time.Minute
)

// Connection splits reads from writes. Read may point at a replica; anything
// that must see its own writes, such as the conflict check inside a booking
// transaction, goes through Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  connect("read", cfg.DB.Postgres.Read, cfg),
		Write: connect("write", cfg.DB.Postgres.Write, cfg),
	}
}

// connect retries MaxRetry times, RetryWaitTime seconds apart, and returns
// nil when every attempt fails.
func connect(role string, node config.PostgresNode, cfg *config.Config) *sqlx.DB {
	pg := cfg.DB.Postgres
	dsn := node.URL(pg.Prefix, nil)
	wait := time.Duration(pg.RetryWaitTime) * time.Second

	logger := log.With().
		Str("role", role).
		Str("host", node.Host).
		Str("port", node.Port).
		Str("dbName", pg.Prefix+node.Name).
		Logger()

	for attempt := 1; attempt <= max(pg.MaxRetry, 1); attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetConnMaxIdleTime(connMaxIdleTime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")
		time.Sleep(wait)
	}

	logger.Error().Msg("Giving up on database connection")

	return nil
}
