package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "podium/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	deliverycontext.SetRequestID(c, "req-42")

	return c, rec
}

func TestSuccess(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Created(c, map[string]string{"message": "ok"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"message":"ok"},"meta":{"request_id":"req-42"}}`, rec.Body.String())
}

func TestErrorDetails(t *testing.T) {
	details := []string{"email: is required"}

	tests := []struct {
		name        string
		status      int
		wantDetails bool
	}{
		{name: "bad request keeps details", status: http.StatusBadRequest, wantDetails: true},
		{name: "unauthorized drops details", status: http.StatusUnauthorized},
		{name: "forbidden drops details", status: http.StatusForbidden},
		{name: "server error drops details", status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()

			require.NoError(t, Error(c, tt.status, "CODE", "message", details))
			assert.Equal(t, tt.status, rec.Code)

			var body map[string]map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "CODE", body["error"]["code"])
			assert.Equal(t, "req-42", body["meta"]["request_id"])

			_, hasDetails := body["error"]["details"]
			assert.Equal(t, tt.wantDetails, hasDetails)
		})
	}
}
