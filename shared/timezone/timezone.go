// Package timezone pins wall-clock operations to the campus zone configured in
// APP_TIMEZONE. The zone database is embedded so named zones resolve on
// minimal images too.
package timezone

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"

	"campusroom/config"

	"github.com/rs/zerolog/log"
)

var campus = sync.OnceValue(func() *time.Location {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := Load(name)
	if err != nil {
		log.Error().Err(err).Msg("Falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
})

// Load resolves an IANA zone name such as "Asia/Jerusalem".
func Load(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}

	return loc, nil
}

// GetLocation returns the campus zone.
func GetLocation() *time.Location {
	return campus()
}

func Now() time.Time {
	return time.Now().In(campus())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(campus())
}

func Format(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}

	return ToAppTime(t).Format(layout)
}
