//go:build wireinject
// +build wireinject

package di

import (
	"campusroom/config"
	"campusroom/infras/genai"
	"campusroom/infras/jwt"
	"campusroom/infras/kafka"
	"campusroom/infras/otel"
	"campusroom/infras/postgres"
	"campusroom/infras/redis"
	"campusroom/infras/s3"
	authService "campusroom/internal/domains/auth/service"
	availabilityModel "campusroom/internal/domains/availability/model"
	availabilityService "campusroom/internal/domains/availability/service"
	"campusroom/internal/domains/availability/source"
	reportRepository "campusroom/internal/domains/report/repository"
	reportService "campusroom/internal/domains/report/service"
	"campusroom/internal/domains/report/triage"
	reservationRepository "campusroom/internal/domains/reservation/repository"
	reservationService "campusroom/internal/domains/reservation/service"
	roomRepository "campusroom/internal/domains/room/repository"
	roomService "campusroom/internal/domains/room/service"
	scheduleRepository "campusroom/internal/domains/schedule/repository"
	scheduleService "campusroom/internal/domains/schedule/service"
	userRepository "campusroom/internal/domains/user/repository"
	userService "campusroom/internal/domains/user/service"
	authHandler "campusroom/internal/handlers/auth"
	availabilityHandler "campusroom/internal/handlers/availability"
	reportHandler "campusroom/internal/handlers/report"
	reservationHandler "campusroom/internal/handlers/reservation"
	roomHandler "campusroom/internal/handlers/room"
	userHandler "campusroom/internal/handlers/user"
	"campusroom/permissions"
	"campusroom/shared/cache"
	"campusroom/shared/lock"
	"campusroom/transport/http"
	"campusroom/transport/http/middleware"
	"campusroom/transport/http/router"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
	availabilityModel.NewPolicy,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	genai.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	lock.NewRedisLocker,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userRepository.NewAllowedUser,
	userService.New,
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
	scheduleRepository.New,
	scheduleService.New,
)

var availabilityDomain = wire.NewSet(
	source.New,
	availabilityService.New,
	wire.Bind(new(source.WeeklyBlockFetcher), new(scheduleService.WeeklySchedule)),
	wire.Bind(new(source.ReservationFetcher), new(reservationRepository.Reservation)),
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var reportDomain = wire.NewSet(
	reportRepository.New,
	triage.New,
	reportService.New,
)

var domains = wire.NewSet(
	userDomain,
	roomDomain,
	availabilityDomain,
	reservationDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	availabilityHandler.New,
	reservationHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
