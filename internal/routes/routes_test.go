package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/psique-web/internal/api"
	"github.com/BruksfildServices01/psique-web/internal/config"
	"github.com/BruksfildServices01/psique-web/internal/metrics"
	"github.com/BruksfildServices01/psique-web/internal/middleware"
	"github.com/BruksfildServices01/psique-web/internal/storage"
	"github.com/BruksfildServices01/psique-web/internal/toast"
	"github.com/BruksfildServices01/psique-web/pkg/logging"
)

// fakeBackend imita a API REST e guarda as requisições recebidas.
type fakeBackend struct {
	t *testing.T

	mu       sync.Mutex
	requests []recorded

	schedulesStatus int
	schedules       string
}

type recorded struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

func (f *fakeBackend) last(method, path string) (recorded, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].Method == method && f.requests[i].Path == path {
			return f.requests[i], true
		}
	}
	return recorded{}, false
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recorded{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
	if r.Body != nil {
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/sessions":
		if rec.Body["password"] != "123" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"E-mail ou senha incorretos"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":1,"name":"Ana","email":"ana@clinica.com"},"token":"tok-1"}`))
	case r.Method == http.MethodGet && r.URL.Path == "/schedules":
		if f.schedulesStatus != 0 {
			w.WriteHeader(f.schedulesStatus)
			return
		}
		_, _ = w.Write([]byte(f.schedules))
	case r.Method == http.MethodGet && r.URL.Path == "/patients":
		_, _ = w.Write([]byte(`[{"id":9,"name":"John Doe","date_of_birth":"1990-01-02T00:00:00.000Z"}]`))
	case r.Method == http.MethodGet && r.URL.Path == "/patients/9":
		_, _ = w.Write([]byte(`{"id":9,"name":"John Doe","date_of_birth":"1990-01-02","whatsapp":"5517991112233"}`))
	case r.Method == http.MethodGet && r.URL.Path == "/patients/9/sessions":
		_, _ = w.Write([]byte(`[{"id":1,"attended":true,"paymentmade":true,"paymentamount":"150.00","notes":"ok","created_at":"2024-12-01T12:00:00Z"}]`))
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodPost || r.Method == http.MethodPut:
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type harness struct {
	t       *testing.T
	engine  *gin.Engine
	store   storage.Store
	backend *fakeBackend
	visitor string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	at := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 10, 0, 0, 0, time.UTC)
	fb := &fakeBackend{t: t}
	fb.schedules = `[{"id":1,"patient_id":9,"patient_name":"John Doe","patient_whatsapp":"5517991112233","schedule_date_time":"` +
		at.Format(time.RFC3339) + `","isPresencial":true}]`

	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	logger := logging.NewWithWriter("error", io.Discard)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	store := storage.NewMemoryStore()

	engine, err := NewEngine(Dependencies{
		Config: &config.Config{
			BackendURL:      srv.URL,
			Timezone:        "UTC",
			ClinicSignature: "Psicóloga Ana Flávia C. Venâncio",
		},
		Store:    store,
		Client:   api.NewClient(srv.URL, api.WithLogger(logger), api.WithMetrics(m)),
		Logger:   logger,
		Metrics:  m,
		Gatherer: reg,
	})
	require.NoError(t, err)

	return &harness{t: t, engine: engine, store: store, backend: fb, visitor: uuid.NewString()}
}

// signIn grava a sessão direto no Store, como se um login anterior tivesse
// acontecido.
func (h *harness) signIn() {
	scoped := storage.Scoped(h.store, h.visitor)
	ctx := context.Background()
	require.NoError(h.t, scoped.Set(ctx, storage.KeyUser, `{"id":1,"name":"Ana","email":"ana@clinica.com"}`))
	require.NoError(h.t, scoped.Set(ctx, storage.KeyToken, "tok-1"))
}

func (h *harness) do(method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.AddCookie(&http.Cookie{Name: middleware.VisitorCookie, Value: h.visitor})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	return rec
}

func (h *harness) stored(key string) (string, error) {
	return storage.Scoped(h.store, h.visitor).Get(context.Background(), key)
}

func flash(t *testing.T, rec *httptest.ResponseRecorder) (*http.Cookie, []toast.Toast) {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "psique_flash" && c.MaxAge > 0 {
			return c, toast.Decode(c.Value)
		}
	}
	return nil, nil
}

func TestLoginPageForAnonymousVisitor(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PsiqueApp")
	assert.Contains(t, rec.Body.String(), `action="/login"`)

	theme, err := h.stored(storage.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", theme)
}

func TestVisitorCookieIssued(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)

	var visitor *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.VisitorCookie {
			visitor = c
		}
	}
	require.NotNil(t, visitor)
	assert.NoError(t, uuid.Validate(visitor.Value))
	assert.True(t, visitor.HttpOnly)
}

func TestLoginValidation(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/login", url.Values{"email": {"ana"}, "password": {"1"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "O email deve ser preenchido corretamente!")
	assert.Contains(t, rec.Body.String(), "A senha deve conter pelo menos 3 caracteres!")

	_, sent := h.backend.last(http.MethodPost, "/sessions")
	assert.False(t, sent)
}

func TestLoginSuccessPersistsSession(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/login", url.Values{"email": {"ana@clinica.com"}, "password": {"123"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/schedules", rec.Header().Get("Location"))

	tok, err := h.stored(storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	cookie, toasts := flash(t, rec)
	require.Len(t, toasts, 1)
	assert.Equal(t, "Login successful", toasts[0].Description)

	page := h.do(http.MethodGet, "/schedules", nil, cookie)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Login successful")

	req, ok := h.backend.last(http.MethodGet, "/schedules")
	require.True(t, ok)
	assert.Equal(t, "Bearer tok-1", req.Auth)
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/login", url.Values{"email": {"ana@clinica.com"}, "password": {"999"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "E-mail ou senha incorretos")

	_, err := h.stored(storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSchedulesRequireAuth(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/schedules", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSignedInVisitorSkipsLogin(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	rec := h.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/schedules", rec.Header().Get("Location"))
}

func TestBoardRendersAppointment(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	rec := h.do(http.MethodGet, "/schedules", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Hoje")
	assert.Contains(t, body, "Amanhã")
	assert.Contains(t, body, "John Doe")
	assert.Contains(t, body, "10:00")
	assert.Contains(t, body, "https://wa.me/5517991112233?text=")
	assert.Contains(t, body, "Atendimento presencial")
}

func TestBoardOpensModals(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	rec := h.do(http.MethodGet, "/schedules?modal=edit&id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Reagendar John Doe")
	assert.Contains(t, rec.Body.String(), `action="/schedules/1"`)

	rec = h.do(http.MethodGet, "/schedules?modal=session&id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sessão de John Doe")

	rec = h.do(http.MethodGet, "/schedules?confirm=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tem certeza que deseja excluir o agendamento para o paciente John Doe, as 10:00?")
	assert.Contains(t, rec.Body.String(), "Esta ação não pode ser desfeita")
}

func TestUnauthorizedClearsSessionAndRedirects(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	h.backend.schedulesStatus = http.StatusUnauthorized

	rec := h.do(http.MethodGet, "/schedules", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	_, err := h.stored(storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = h.stored(storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateAppointmentValidation(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	rec := h.do(http.MethodPost, "/schedules", url.Values{"patient_id": {""}, "date": {""}, "time": {"25:00"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Selecione um paciente")
	assert.Contains(t, body, "Selecione a data da consulta")
	assert.Contains(t, body, "Selecione a hora da consulta")

	_, sent := h.backend.last(http.MethodPost, "/schedules")
	assert.False(t, sent)
}

func TestCreateAppointment(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	day := time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")
	rec := h.do(http.MethodPost, "/schedules", url.Values{
		"patient_id": {"9"},
		"date":       {day},
		"time":       {"14:30"},
		"modality":   {"online"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/schedules", rec.Header().Get("Location"))

	req, ok := h.backend.last(http.MethodPost, "/schedules")
	require.True(t, ok)
	assert.Equal(t, float64(9), req.Body["patient_id"])
	assert.Equal(t, false, req.Body["isPresencial"])
	assert.Equal(t, day+"T14:30:00Z", req.Body["schedule_dateTime"])

	_, toasts := flash(t, rec)
	require.Len(t, toasts, 1)
	assert.Equal(t, "Agendamento incluído com sucesso", toasts[0].Description)
}

func TestDeleteAppointment(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	rec := h.do(http.MethodPost, "/schedules/1/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/schedules", rec.Header().Get("Location"))

	_, ok := h.backend.last(http.MethodDelete, "/schedules/1")
	assert.True(t, ok)

	cookie, toasts := flash(t, rec)
	require.Len(t, toasts, 1)
	assert.Equal(t, "Agendamento excluído com sucesso", toasts[0].Description)

	page := h.do(http.MethodGet, "/schedules", nil, cookie)
	assert.Contains(t, page.Body.String(), "Agendamento excluído com sucesso")
}

func TestLogSessionFailureKeepsInput(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	rec := h.do(http.MethodPost, "/schedules/1/sessions", url.Values{
		"attended":       {"true"},
		"payment_made":   {"true"},
		"payment_amount": {"15000"},
		"notes":          {"nota-importante"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ID do paciente não encontrado. Tente novamente.")
	assert.Contains(t, body, "Sessão de John Doe")
	assert.Contains(t, body, "nota-importante")
	assert.Contains(t, body, `value="R$ 150,00"`)
	assert.NotContains(t, body, `inputmode="numeric" disabled`)

	_, sent := h.backend.last(http.MethodPost, "/patients/9/sessions")
	assert.False(t, sent)
}

func TestSessionModalDisablesPaymentUntilAttended(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	rec := h.do(http.MethodGet, "/schedules?modal=session&id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="payment_made" value="true" disabled`)
	assert.Contains(t, body, `placeholder="R$ 0,00" inputmode="numeric" disabled`)
}

func TestLogSession(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	rec := h.do(http.MethodPost, "/schedules/1/sessions", url.Values{
		"patient_id":     {"9"},
		"attended":       {"false"},
		"payment_made":   {"true"},
		"payment_amount": {"15000"},
		"notes":          {"faltou"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	req, ok := h.backend.last(http.MethodPost, "/patients/9/sessions")
	require.True(t, ok)
	assert.Equal(t, false, req.Body["attended"])
	assert.Equal(t, false, req.Body["paymentMade"])
	assert.Nil(t, req.Body["paymentAmount"])
	assert.Equal(t, "faltou", req.Body["notes"])
}

func TestThemeToggle(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/theme", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	theme, err := h.stored(storage.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	page := h.do(http.MethodGet, "/", nil)
	assert.Contains(t, page.Body.String(), `class="dark"`)
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	rec := h.do(http.MethodPost, "/logout", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	_, err := h.stored(storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, toasts := flash(t, rec)
	require.Len(t, toasts, 1)
	assert.Equal(t, "Logout successful", toasts[0].Description)
}

func TestSignUp(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/signup", url.Values{"name": {"An"}, "email": {"x"}, "password": {"1"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "O nome deve conter pelo menos 3 caracteres!")

	rec = h.do(http.MethodPost, "/signup", url.Values{"name": {"Ana"}, "email": {"ana@clinica.com"}, "password": {"123"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	req, ok := h.backend.last(http.MethodPost, "/users")
	require.True(t, ok)
	assert.Equal(t, "Ana", req.Body["name"])
}

func TestPatientsPages(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	rec := h.do(http.MethodGet, "/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "John Doe")
	assert.Contains(t, rec.Body.String(), "02/01/1990")

	rec = h.do(http.MethodGet, "/patient/9", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "&#43;55 (17) 99111-2233")
	assert.Contains(t, rec.Body.String(), "R$ 150.00")

	rec = h.do(http.MethodGet, "/patient/9?confirm=1", nil)
	assert.Contains(t, rec.Body.String(), "Tem certeza que deseja remover o paciente John Doe?")

	rec = h.do(http.MethodGet, "/patient/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Identificador inválido.")
}

func TestInvalidIDAsJSON(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	req := httptest.NewRequest(http.MethodGet, "/patient/abc", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.VisitorCookie, Value: h.visitor})
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error_code":"invalid_patient_id","message":"invalid id"}`, rec.Body.String())
}

func TestCreatePatient(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	rec := h.do(http.MethodPost, "/patient", url.Values{"name": {"Al"}, "date_of_birth": {"1990-01-02"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nome é obrigatório")
	assert.Contains(t, rec.Body.String(), "Data de Nascimento deve estar no formato DD/MM/YYYY")

	rec = h.do(http.MethodPost, "/patient", url.Values{
		"name":          {"Alice"},
		"date_of_birth": {"29/06/1995"},
		"whatsapp":      {"+55 (17) 99111-2233"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/patients", rec.Header().Get("Location"))

	req, ok := h.backend.last(http.MethodPost, "/patients")
	require.True(t, ok)
	assert.Equal(t, "1995-06-29", req.Body["date_of_birth"])
	assert.Equal(t, "5517991112233", req.Body["whatsapp"])
}

func TestDeletePatient(t *testing.T) {
	h := newHarness(t)
	h.signIn()

	rec := h.do(http.MethodPost, "/patient/9/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/patients", rec.Header().Get("Location"))

	_, toasts := flash(t, rec)
	require.Len(t, toasts, 1)
	assert.Equal(t, "Paciente excluído com sucesso", toasts[0].Description)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = h.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "psique_http_requests_total")
}

func TestNotFound(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error_code":"not_found"`)

	rec = h.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Página não encontrada.")
}
