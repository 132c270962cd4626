package availability

import (
	"net/http"

	"campusroom/infras/otel"
	"campusroom/internal/domains/availability/model/dto"
	"campusroom/internal/domains/availability/service"
	"campusroom/shared/constant"
	"campusroom/shared/validator"
	"campusroom/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/free-blocks", handler.GetFreeBlocks)
		routerGroup.Get("/slots", handler.GetSlots)
		routerGroup.Get("/rooms/{code}", handler.CheckRoom)
	})
}

func (handler *Handler) query(r *http.Request) (dto.Query, error) {
	query := dto.Query{}
	query.FromRequest(r)

	return query, validator.ValidateStruct(&query)
}

// GetFreeBlocks lists the free blocks of every active room inside a window.
// @Summary Free blocks per room
// @Description The window is clamped to operating hours. Rooms with no free time are omitted.
// @Tags Availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start_time query string true "Window start (HH:MM)"
// @Param end_time query string true "Window end (HH:MM)"
// @Param room_code query string false "Restrict to one room"
// @Param slot_duration query integer false "Also split free blocks into slots of this many minutes"
// @Success 200 {object} response.Data[dto.FreeBlocksResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/free-blocks [get]
// @Security BearerAuth
func (handler *Handler) GetFreeBlocks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFreeBlocks")
	defer scope.End()

	query, err := handler.query(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate availability query")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.ListFreeBlocks(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list free blocks")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetSlots lists fixed-length slots and the rooms free for each.
// @Summary Free rooms per slot
// @Tags Availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start_time query string true "Window start (HH:MM)"
// @Param end_time query string true "Window end (HH:MM)"
// @Param room_code query string false "Restrict to one room"
// @Param slot_duration query integer false "Slot length in minutes"
// @Success 200 {object} response.Data[dto.SlotsResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/slots [get]
// @Security BearerAuth
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	query, err := handler.query(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate availability query")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.ListSlots(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CheckRoom tells whether one room is free for the whole window.
// @Summary Check a single room
// @Tags Availability
// @Produce json
// @Param code path string true "Room code"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start_time query string true "Window start (HH:MM)"
// @Param end_time query string true "Window end (HH:MM)"
// @Success 200 {object} response.Data[dto.RoomAvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/rooms/{code} [get]
// @Security BearerAuth
func (handler *Handler) CheckRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckRoom")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	query, err := handler.query(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate availability query")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CheckRoom(ctx, code, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room", code).Msg("failed to check room availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
