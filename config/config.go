package config

import (
	"fmt"
	"net"
	"net/url"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		// TrustedProxies lists the CIDRs whose forwarding headers are believed.
		TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           PostgresNode `envconfig:"READ"`
			Write          PostgresNode `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topic struct {
			Reservation string `envconfig:"RESERVATION" default:"campusroom.reservation"`
			Report      string `envconfig:"REPORT"      default:"campusroom.report"`
		} `envconfig:"TOPIC"`
	} `envconfig:"KAFKA"`

	Booking struct {
		OpeningTime         string   `envconfig:"OPENING_TIME"          default:"08:00"`
		ClosingTime         string   `envconfig:"CLOSING_TIME"          default:"20:00"`
		SlotDurationMinutes int      `envconfig:"SLOT_DURATION_MINUTES" default:"120"`
		DayLimitedRoles     []string `envconfig:"DAY_LIMITED_ROLES"     default:"student"`
		Roles               []string `envconfig:"ROLES"                 default:"student,lecturer"`
		LockTTLSeconds      int      `envconfig:"LOCK_TTL_SECONDS"      default:"10"`
	} `envconfig:"BOOKING"`

	Report struct {
		BucketTimezone string `envconfig:"BUCKET_TIMEZONE" default:"Asia/Jerusalem"`
		BucketMinutes  int    `envconfig:"BUCKET_MINUTES"  default:"60"`
	} `envconfig:"REPORT"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
		GenAI struct {
			APIKey            string `envconfig:"API_KEY"`
			Model             string `envconfig:"MODEL"               default:"models/gemini-1.5-flash"`
			RequestsPerMinute int    `envconfig:"REQUESTS_PER_MINUTE" default:"30"`
			TimeoutSeconds    int    `envconfig:"TIMEOUT_SECONDS"     default:"15"`
		} `envconfig:"GENAI"`
	} `envconfig:"EXTERNAL"`
}

// PostgresNode is one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

// URL renders a postgres:// connection string. prefix is prepended to the
// database name, query is appended as extra parameters.
func (n PostgresNode) URL(prefix string, query url.Values) string {
	params := url.Values{}
	if n.SSLMode != "" {
		params.Set("sslmode", n.SSLMode)
	}

	if n.Timezone != "" {
		params.Set("timezone", n.Timezone)
	}

	for key, values := range query {
		params[key] = values
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(n.Username, n.Password),
		Host:     net.JoinHostPort(n.Host, n.Port),
		Path:     "/" + prefix + n.Name,
		RawQuery: params.Encode(),
	}

	return u.String()
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
