package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"campusroom/shared/failure"
	"campusroom/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "conflict keeps its message",
			err:      failure.Conflict("Safra 102 is taken"),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"Safra 102 is taken","reason":"conflict"}`,
		},
		{
			name:     "policy violation",
			err:      failure.PolicyViolation("daily limit reached"),
			wantCode: http.StatusUnprocessableEntity,
			wantBody: `{"error":"daily limit reached","reason":"policy_violation"}`,
		},
		{
			name:     "raw error is masked",
			err:      errors.New("pq: relation \"reservations\" does not exist"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal server error","reason":"internal"}`,
		},
		{
			name:     "persistence keeps its generic message",
			err:      failure.Persistence(errors.New("dial tcp: connection refused")),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"storage unavailable","reason":"persistence"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusOK, map[string]int{"free": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"free":3}}`, rec.Body.String())
}

func TestWithRequestLimitExceeded(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message"`)
}
