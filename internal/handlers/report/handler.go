package report

import (
	"net/http"

	"campusroom/infras/otel"
	"campusroom/internal/domains/report/model/dto"
	"campusroom/internal/domains/report/service"
	"campusroom/shared/constant"
	gDto "campusroom/shared/dto"
	"campusroom/shared/validator"
	"campusroom/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReport)
		routerGroup.Get("/", handler.GetGroupedReports)
		routerGroup.Get("/mine", handler.GetMyReports)
		routerGroup.Get("/{id}", handler.GetReportByID)
		routerGroup.Patch("/{id}/status", handler.UpdateReportStatus)
	})
}

// CreateReport files a fault report for a room.
// @Summary Report a fault
// @Description The report is triaged on arrival. A deterministic severity is used when the classifier is unavailable.
// @Tags Report
// @Accept json
// @Produce json
// @Param request body dto.CreateReportRequest true "Create Report Request"
// @Success 201 {object} response.Data[dto.ReportResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports [post]
// @Security BearerAuth
func (handler *Handler) CreateReport(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReport")
	defer scope.End()

	req := dto.CreateReportRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room", req.RoomCode).Msg("failed to create report")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Report created " + res.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetGroupedReports is the staff dashboard of open report groups.
// @Summary Grouped open reports
// @Description One entry per room, category and time bucket, most severe first.
// @Tags Report
// @Produce json
// @Success 200 {object} response.Data[dto.GroupedReportsResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports [get]
// @Security BearerAuth
func (handler *Handler) GetGroupedReports(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGroupedReports")
	defer scope.End()

	res, err := handler.service.GetGrouped(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get grouped reports")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyReports lists reports filed by the authenticated user.
// @Summary My reports
// @Tags Report
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetReportsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/reports/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyReports(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReports")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reports")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReportByID returns a single report.
// @Summary Get a report
// @Tags Report
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Data[dto.ReportResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReportByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReportByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("report_id", id).Msg("failed to get report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateReportStatus moves a report through its lifecycle.
// @Summary Update report status
// @Description Marking a report done closes every open report of its group.
// @Tags Report
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Data[dto.UpdateStatusResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReportStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateStatus(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("report_id", id).Msg("failed to update report status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Report status changed to " + res.Status + " by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
