package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"campusroom/config"
	"campusroom/internal/domains/availability/interval"

	"github.com/rs/zerolog/log"
)

var (
	errSlotDuration = errors.New("slot duration must be positive and fit in a day")
	errNoRoles      = errors.New("at least one booking role is required")
	errLockTTL      = errors.New("lock ttl must be positive")
)

// Policy holds the tunable booking constants: operating hours, default slot
// length, which roles may book and which of them are limited to one active
// reservation per day.
type Policy struct {
	Hours           interval.OperatingHours
	SlotDuration    int
	BookingRoles    []string
	DayLimitedRoles []string
	LockTTL         time.Duration
}

func ParsePolicy(cfg *config.Config) (Policy, error) {
	hours, err := interval.NewOperatingHours(cfg.Booking.OpeningTime, cfg.Booking.ClosingTime)
	if err != nil {
		return Policy{}, err //nolint:wrapcheck
	}

	if cfg.Booking.SlotDurationMinutes <= 0 || cfg.Booking.SlotDurationMinutes > interval.MinutesPerDay {
		return Policy{}, fmt.Errorf("%w: %d", errSlotDuration, cfg.Booking.SlotDurationMinutes)
	}

	roles := normalizeRoles(cfg.Booking.Roles)
	if len(roles) == 0 {
		return Policy{}, errNoRoles
	}

	if cfg.Booking.LockTTLSeconds <= 0 {
		return Policy{}, errLockTTL
	}

	return Policy{
		Hours:           hours,
		SlotDuration:    cfg.Booking.SlotDurationMinutes,
		BookingRoles:    roles,
		DayLimitedRoles: normalizeRoles(cfg.Booking.DayLimitedRoles),
		LockTTL:         time.Duration(cfg.Booking.LockTTLSeconds) * time.Second,
	}, nil
}

// NewPolicy refuses to start the service on a malformed booking configuration.
func NewPolicy(cfg *config.Config) Policy {
	policy, err := ParsePolicy(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid booking configuration")
	}

	log.Info().
		Str("hours", policy.Hours.Window().String()).
		Int("slot_minutes", policy.SlotDuration).
		Strs("day_limited_roles", policy.DayLimitedRoles).
		Msg("booking policy loaded")

	return policy
}

func (p Policy) CanBook(role string) bool {
	return slices.Contains(p.BookingRoles, role)
}

func (p Policy) IsDayLimited(role string) bool {
	return slices.Contains(p.DayLimitedRoles, role)
}

// SlotLength returns requested when positive, the configured default otherwise.
func (p Policy) SlotLength(requested int) int {
	if requested > 0 {
		return requested
	}

	return p.SlotDuration
}

func normalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))

	for _, role := range roles {
		role = strings.ToLower(strings.TrimSpace(role))
		if role != "" && !slices.Contains(out, role) {
			out = append(out, role)
		}
	}

	return out
}
