package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		respond func(w http.ResponseWriter)
		status  int
		message string
	}{
		{name: "400", respond: func(w http.ResponseWriter) { RespondBadRequest(w, "плохо") }, status: http.StatusBadRequest, message: "плохо"},
		{name: "401", respond: func(w http.ResponseWriter) { RespondUnauthorized(w, "кто вы") }, status: http.StatusUnauthorized, message: "кто вы"},
		{name: "403", respond: func(w http.ResponseWriter) { RespondForbidden(w, "нельзя") }, status: http.StatusForbidden, message: "нельзя"},
		{name: "404", respond: func(w http.ResponseWriter) { RespondNotFound(w, "нет") }, status: http.StatusNotFound, message: "нет"},
		{name: "409", respond: func(w http.ResponseWriter) { RespondConflict(w, "занято") }, status: http.StatusConflict, message: "занято"},
		{name: "429", respond: func(w http.ResponseWriter) { RespondTooManyRequests(w, "медленнее") }, status: http.StatusTooManyRequests, message: "медленнее"},
		{name: "500", respond: RespondInternalError, status: http.StatusInternalServerError, message: msgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.respond(rec)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "ok", body: `{"name":"a"}`},
		{name: "пустое тело", body: ``, wantErr: true},
		{name: "неизвестное поле", body: `{"name":"a","extra":1}`, wantErr: true},
		{name: "два объекта", body: `{"name":"a"}{"name":"b"}`, wantErr: true},
		{name: "не json", body: `name=a`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var p payload
			err := DecodeJSON(req, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a", p.Name)
		})
	}
}
