package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/companion/internal/core"
	"github.com/sandevgo/companion/internal/service/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	reply string
	err   error
	got   chat.TurnRequest
}

func (f *fakeChat) Turn(ctx context.Context, req chat.TurnRequest) (string, error) {
	f.got = req
	return f.reply, f.err
}

type fakePersonaSvc struct {
	createErr error
	personas  []core.Persona
}

func (f *fakePersonaSvc) CreateCustom(ctx context.Context, userID, name, description string) (core.Persona, error) {
	if f.createErr != nil {
		return core.Persona{}, f.createErr
	}
	return core.Persona{ID: "id-1", UserID: userID, Name: name, Description: description}, nil
}

func (f *fakePersonaSvc) List(ctx context.Context, userID string) ([]core.Persona, error) {
	return f.personas, nil
}

type fakeLeads struct {
	err error
}

func (f *fakeLeads) Insert(ctx context.Context, lead core.Lead) (core.Lead, error) {
	if f.err != nil {
		return core.Lead{}, f.err
	}
	lead.ID = 1
	lead.Source = "chatgpt_matchmaker"
	return lead, nil
}

func newTestRouter(chatSvc ChatService, personas PersonaService, leads core.LeadsRepository) http.Handler {
	h := NewHandler(chatSvc, personas, leads)
	return h.NewRouter(context.Background())
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChatEndpoint(t *testing.T) {
	chatSvc := &fakeChat{reply: "Hello! 💕"}
	router := newTestRouter(chatSvc, &fakePersonaSvc{}, &fakeLeads{})

	rec := doJSON(t, router, http.MethodPost, "/api/chat", map[string]string{
		"user_id":     "u1",
		"message":     "Hi",
		"personality": "Sweet",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hello! 💕", resp["message"])
	assert.Equal(t, "u1", chatSvc.got.UserID)
	assert.Equal(t, "Sweet", chatSvc.got.Personality)
}

func TestChatEndpointErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "missing message", err: core.ErrMessageRequired, wantStatus: http.StatusBadRequest},
		{name: "missing user", err: core.ErrUserRequired, wantStatus: http.StatusBadRequest},
		{name: "upstream failure", err: &core.UpstreamError{Status: 500}, wantStatus: http.StatusBadGateway},
		{name: "store failure", err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeChat{err: tt.err}, &fakePersonaSvc{}, &fakeLeads{})

			rec := doJSON(t, router, http.MethodPost, "/api/chat", map[string]string{"user_id": "u1", "message": "Hi"})
			require.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestChatEndpointBadBody(t *testing.T) {
	router := newTestRouter(&fakeChat{}, &fakePersonaSvc{}, &fakeLeads{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeadsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeChat{}, &fakePersonaSvc{}, &fakeLeads{})

	rec := doJSON(t, router, http.MethodPost, "/api/leads", map[string]string{
		"token":           "tok",
		"preferred_style": "romantic",
		"match_name":      "Aria",
		"language":        "en",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool        `json:"success"`
		Data    []core.Lead `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "chatgpt_matchmaker", resp.Data[0].Source)
}

func TestLeadsEndpointFailure(t *testing.T) {
	router := newTestRouter(&fakeChat{}, &fakePersonaSvc{}, &fakeLeads{err: assert.AnError})

	rec := doJSON(t, router, http.MethodPost, "/api/leads", map[string]string{"token": "tok"})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestLeadsEndpointMethodNotAllowed(t *testing.T) {
	router := newTestRouter(&fakeChat{}, &fakePersonaSvc{}, &fakeLeads{})

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPersonaEndpoints(t *testing.T) {
	router := newTestRouter(&fakeChat{}, &fakePersonaSvc{}, &fakeLeads{})

	rec := doJSON(t, router, http.MethodPost, "/api/personas", map[string]string{
		"user_id":     "u1",
		"name":        "my vibe",
		"description": "sarcastic but kind",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/personas", map[string]string{"user_id": "u1", "name": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPersonaLimitConflict(t *testing.T) {
	router := newTestRouter(&fakeChat{}, &fakePersonaSvc{createErr: core.ErrPersonaLimit}, &fakeLeads{})

	rec := doJSON(t, router, http.MethodPost, "/api/personas", map[string]string{
		"user_id":     "u1",
		"name":        "sixth",
		"description": "desc",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(&fakeChat{}, &fakePersonaSvc{}, &fakeLeads{})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
