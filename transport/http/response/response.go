// Package response writes the JSON envelopes every handler returns:
// {"data": ...}, {"message": ...} or {"error": ..., "reason": ...}.
package response

import (
	"encoding/json"
	"net/http"

	"campusroom/shared/constant"
	"campusroom/shared/failure"
	"campusroom/shared/logger"

	"github.com/rs/zerolog/log"
)

const internalErrorMessage = "internal server error"

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error  *string        `json:"error,omitempty"`
	Reason failure.Reason `json:"reason,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	write(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError maps err to its status and reason. Unclassified errors become a
// generic 500 so driver messages never reach the client.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	reason := failure.GetReason(err)
	message := err.Error()

	if reason == failure.ReasonInternal && code >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("unclassified error returned to client")

		message = internalErrorMessage
	}

	write(writer, code, Error{Error: &message, Reason: reason})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
