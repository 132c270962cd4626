package room

import (
	"net/http"

	"campusroom/infras/otel"
	"campusroom/internal/domains/room/model"
	"campusroom/internal/domains/room/model/dto"
	"campusroom/internal/domains/room/service"
	scheduleService "campusroom/internal/domains/schedule/service"
	"campusroom/shared"
	"campusroom/shared/constant"
	gDto "campusroom/shared/dto"
	"campusroom/shared/validator"
	"campusroom/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Room
	schedule scheduleService.WeeklySchedule
	otel     otel.Otel
}

func New(service service.Room, schedule scheduleService.WeeklySchedule, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		schedule: schedule,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{code}", handler.GetRoomByCode)
		routerGroup.Get("/{code}/timetable", handler.GetTimetable)
		routerGroup.Patch("/{code}", handler.UpdateRoom)
	})
}

func optionalInt(value string) *int {
	if value == "" {
		return nil
	}

	parsed, err := shared.ConvertStringToInt(value)
	if err != nil {
		return nil
	}

	return &parsed
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a new room with the provided details.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param code formData string true "Room code"
// @Param name formData string false "Room name"
// @Param room_type formData string true "regular, computers or lab"
// @Param description formData string false "Room description"
// @Param seats formData integer false "Seats"
// @Param computer_stations formData integer false "Computer stations"
// @Param has_projector formData boolean false "Projector installed"
// @Param active formData boolean false "Room active status"
// @Param image formData file false "Room image"
// @Success 201 {object} response.Message "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateRoomRequest{
		Code:             request.FormValue(model.FieldCode),
		Name:             request.FormValue(model.FieldName),
		RoomType:         request.FormValue(model.FieldRoomType),
		Description:      request.FormValue(model.FieldDescription),
		Seats:            optionalInt(request.FormValue(model.FieldSeats)),
		ComputerStations: optionalInt(request.FormValue(model.FieldComputerStations)),
		Active:           shared.ConvertStringToBool(request.FormValue(model.FieldActive)),
	}

	if projector := shared.ConvertStringToBool(request.FormValue(model.FieldHasProjector)); projector != nil {
		req.HasProjector = *projector
	}

	file, fileHeader, err := request.FormFile(constant.FormFile)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Room created successfully")
}

// GetRooms retrieves all rooms based on query parameters.
// @Summary Get all rooms
// @Description Retrieve all rooms with optional filtering and pagination.
// @Tags Room
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param room_type query string false "Filter by room type"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	filterGroup.AddIfNotEmpty(gDto.Filter{
		Field:    model.FieldName,
		Operator: gDto.FilterOperatorLike,
		Value:    r.URL.Query().Get(model.FieldName),
		Table:    model.TableName,
	})

	filterGroup.AddIfNotEmpty(gDto.Filter{
		Field:    model.FieldRoomType,
		Operator: gDto.FilterOperatorEq,
		Value:    r.URL.Query().Get(model.FieldRoomType),
		Table:    model.TableName,
	})

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByCode retrieves a room by its code.
// @Summary Get a room by code
// @Tags Room
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{code} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomByCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByCode")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	room, err := handler.service.Get(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room", code).Msg("failed to get room by code")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// GetTimetable lists the recurring weekly blocks of a room.
// @Summary Weekly timetable of a room
// @Tags Room
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} response.Data[any] "Weekly blocks ordered by weekday and start"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{code}/timetable [get]
// @Security BearerAuth
func (handler *Handler) GetTimetable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimetable")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	room, err := handler.service.Lookup(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room", code).Msg("failed to resolve room for timetable")

		response.WithError(w, err)

		return
	}

	timetable, err := handler.schedule.Timetable(ctx, room.Code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room", room.Code).Msg("failed to get timetable")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, timetable)
}

// UpdateRoom updates an existing room by its code.
// @Summary Update a room by code
// @Description Update the details or the active flag of an existing room.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param code path string true "Room code"
// @Param name formData string false "Room name"
// @Param room_type formData string false "regular, computers or lab"
// @Param description formData string false "Room description"
// @Param seats formData integer false "Seats"
// @Param computer_stations formData integer false "Computer stations"
// @Param has_projector formData boolean false "Projector installed"
// @Param active formData boolean false "Room active status"
// @Param image formData file false "Room image"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{code} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateRoomRequest{
		Name:             r.FormValue(model.FieldName),
		RoomType:         r.FormValue(model.FieldRoomType),
		Description:      r.FormValue(model.FieldDescription),
		Seats:            optionalInt(r.FormValue(model.FieldSeats)),
		ComputerStations: optionalInt(r.FormValue(model.FieldComputerStations)),
		HasProjector:     shared.ConvertStringToBool(r.FormValue(model.FieldHasProjector)),
		Active:           shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, code); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}
