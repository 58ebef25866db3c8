package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"podium/config"
	"podium/internal/delivery/api/cookie"
	apimiddleware "podium/internal/delivery/api/middleware"
	"podium/internal/delivery/api/response"
	"podium/internal/delivery/api/router"
	"podium/internal/delivery/api/router/handler"
	deliverycontext "podium/internal/delivery/context"
	"podium/internal/domain/entity"
	domainerrors "podium/internal/domain/errors"
	"podium/internal/errors"
	"podium/internal/infra/metrics"
	usecasemocks "podium/internal/mocks/usecase"
	"podium/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

const cookieName = "podium.sid"

type fakeHealthChecker struct {
	err error
}

func (f *fakeHealthChecker) Ping(context.Context) error {
	return f.err
}

type testServer struct {
	echo           *echo.Echo
	registration   *usecasemocks.MockRegistrationUsecase
	authentication *usecasemocks.MockAuthenticationUsecase
	session        *usecasemocks.MockSessionUsecase
	health         *fakeHealthChecker
}

func testConfig() *config.Config {
	cfg := &config.Config{
		Session: &config.SessionConfig{CookieName: cookieName, SameSite: "lax", TTL: 24 * time.Hour},
		Metrics: &config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	cfg.HTTP.MaxRequestBodySize = "1KB"

	return cfg
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := testConfig()
	jar := cookie.NewJar(cfg)
	ts := &testServer{
		registration:   usecasemocks.NewMockRegistrationUsecase(t),
		authentication: usecasemocks.NewMockAuthenticationUsecase(t),
		session:        usecasemocks.NewMockSessionUsecase(t),
		health:         &fakeHealthChecker{},
	}

	d, err := NewServer(ServerParams{
		Lc:     fxtest.NewLifecycle(t),
		Cfg:    cfg,
		Logger: slog.New(slog.DiscardHandler),
		RouterParams: router.RouterParams{
			AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
				RegistrationUC:   ts.registration,
				AuthenticationUC: ts.authentication,
				SessionUC:        ts.session,
				Jar:              jar,
			}),
			HealthHandler: handler.NewHealthHandler(ts.health),
			SessionMiddleware: apimiddleware.NewSessionMiddleware(apimiddleware.SessionMiddlewareParams{
				SessionUC: ts.session,
				Jar:       jar,
			}),
			Registry: metrics.NewRegistry(),
			Config:   cfg,
		},
	})
	require.NoError(t, err)

	srv, ok := d.(*apiServer)
	require.True(t, ok)
	ts.echo = srv.server

	return ts
}

func (ts *testServer) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)

	return rec
}

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Error *response.ErrorInfo `json:"error"`
	Meta  response.MetaInfo   `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	assert.NotEmpty(t, env.Meta.RequestID)

	return env
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	require.Fail(t, "session cookie not set")

	return nil
}

func speakerAccount() *entity.Account {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	return &entity.Account{
		ID:          uuid.Must(uuid.NewV7()),
		Email:       "a@x.com",
		FullName:    "A",
		AccountType: entity.AccountTypeSpeaker,
		Profile:     &entity.SpeakerProfile{Specialization: "Debate", Experience: "3-5"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func issuedSession(account *entity.Account) *entity.Session {
	return &entity.Session{Token: "opaque-token", AccountID: account.ID, ExpiresAt: time.Now().Add(24 * time.Hour)}
}

const registerBody = `{"email":"a@x.com","password":"longpassword1","fullName":"A","accountType":"speaker",` +
	`"speakerProfile":{"specialization":"Debate","experience":"3-5"}}`

func TestRegister(t *testing.T) {
	ts := newTestServer(t)
	account := speakerAccount()

	ts.registration.EXPECT().
		Register(mock.Anything, mock.MatchedBy(func(in *usecase.RegisterInput) bool {
			return in.Email == "a@x.com" && in.AccountType == "speaker" &&
				in.SpeakerProfile != nil && in.SpeakerProfile.Specialization == "Debate"
		})).
		Return(account, nil).Once()
	ts.session.EXPECT().Issue(mock.Anything, account).Return(issuedSession(account), nil).Once()

	rec := ts.do(http.MethodPost, "/auth/register", registerBody)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "opaque-token", sessionCookie(t, rec).Value)
	assert.True(t, sessionCookie(t, rec).HttpOnly)

	env := decode(t, rec)
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Registration successful", data["message"])

	view, ok := data["account"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, account.ID.String(), view["id"])
	assert.Equal(t, "speaker", view["accountType"])
	assert.Contains(t, view, "speakerProfile")
	assert.NotContains(t, view, "corporateProfile")
	assert.NotContains(t, rec.Body.String(), "assword")
}

func TestRegisterErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail bool
	}{
		{
			name:       "duplicate email",
			body:       registerBody,
			err:        domainerrors.ErrDuplicateAccount.WrapMessage("email already registered"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "ACCOUNT_ALREADY_EXISTS",
		},
		{
			name: "validation failure lists fields",
			body: registerBody,
			err: domainerrors.NewValidationError(
				domainerrors.FieldViolation{Field: "password", Message: "must be at least 8 characters"},
				domainerrors.FieldViolation{Field: "speakerProfile.experience", Message: "is required"},
			),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
			wantDetail: true,
		},
		{
			name:       "store unavailable hides the cause",
			body:       registerBody,
			err:        domainerrors.NewStoreUnavailableError(errors.New("dial tcp: connection refused"), "create account"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "STORE_UNAVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.registration.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := ts.do(http.MethodPost, "/auth/register", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, rec.Result().Cookies())

			env := decode(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, tt.wantDetail, env.Error.Details != nil)
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func TestRegisterMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/auth/register", `{"email":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestRegisterBodyTooLarge(t *testing.T) {
	ts := newTestServer(t)

	body := `{"email":"a@x.com","fullName":"` + strings.Repeat("a", 2048) + `"}`
	rec := ts.do(http.MethodPost, "/auth/register", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	account := speakerAccount()

	ts.authentication.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{Email: "a@x.com", Password: "longpassword1"}).
		Return(account, nil).Once()
	ts.session.EXPECT().Issue(mock.Anything, account).Return(issuedSession(account), nil).Once()

	rec := ts.do(http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"longpassword1"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "opaque-token", sessionCookie(t, rec).Value)

	var data handler.AuthResult
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.Equal(t, "Login successful", data.Message)
	require.NotNil(t, data.Account)
	assert.Equal(t, account.ID, data.Account.ID)
}

func TestLoginFailures(t *testing.T) {
	t.Run("invalid credentials are generic", func(t *testing.T) {
		ts := newTestServer(t)
		ts.authentication.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidCredentials).Once()

		rec := ts.do(http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"wrong-password"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
		env := decode(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
		assert.Equal(t, "Invalid credentials", env.Error.Message)
		assert.Nil(t, env.Error.Details)
	})

	t.Run("malformed body is invalid credentials", func(t *testing.T) {
		ts := newTestServer(t)

		rec := ts.do(http.MethodPost, "/auth/login", `[1,2`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decode(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
	})

	t.Run("session issue failure", func(t *testing.T) {
		ts := newTestServer(t)
		account := speakerAccount()
		ts.authentication.EXPECT().Login(mock.Anything, mock.Anything).Return(account, nil).Once()
		ts.session.EXPECT().Issue(mock.Anything, account).
			Return(nil, domainerrors.ErrSessionIssueFailed.WrapMessage("sign token")).Once()

		rec := ts.do(http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"longpassword1"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})
}

func TestLogout(t *testing.T) {
	t.Run("ends the session and clears the cookie", func(t *testing.T) {
		ts := newTestServer(t)
		ts.session.EXPECT().End(mock.Anything, "opaque-token").Return().Once()

		rec := ts.do(http.MethodPost, "/auth/logout", "", &http.Cookie{Name: cookieName, Value: "opaque-token"})

		require.Equal(t, http.StatusOK, rec.Code)
		cleared := sessionCookie(t, rec)
		assert.Empty(t, cleared.Value)
		assert.Equal(t, -1, cleared.MaxAge)

		var data handler.AuthResult
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
		assert.Equal(t, "Logout successful", data.Message)
		assert.Nil(t, data.Account)
	})

	t.Run("without a cookie", func(t *testing.T) {
		ts := newTestServer(t)

		rec := ts.do(http.MethodPost, "/auth/logout", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		ts.session.AssertNotCalled(t, "End", mock.Anything, mock.Anything)
	})
}

func TestMe(t *testing.T) {
	t.Run("resolved session", func(t *testing.T) {
		ts := newTestServer(t)
		account := speakerAccount()
		ts.session.EXPECT().Resolve(mock.Anything, "opaque-token").Return(account, nil).Once()

		rec := ts.do(http.MethodGet, "/auth/me", "", &http.Cookie{Name: cookieName, Value: "opaque-token"})

		require.Equal(t, http.StatusOK, rec.Code)
		var data handler.CurrentAccount
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
		require.NotNil(t, data.Account)
		assert.Equal(t, account.ID, data.Account.ID)
		assert.Equal(t, "Debate", data.Account.SpeakerProfile.Specialization)
	})

	t.Run("missing cookie never reaches the handler", func(t *testing.T) {
		ts := newTestServer(t)

		rec := ts.do(http.MethodGet, "/auth/me", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decode(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
		ts.session.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	})

	t.Run("rejected session", func(t *testing.T) {
		ts := newTestServer(t)
		ts.session.EXPECT().Resolve(mock.Anything, "forged").Return(nil, domainerrors.ErrUnauthenticated).Once()

		rec := ts.do(http.MethodGet, "/auth/me", "", &http.Cookie{Name: cookieName, Value: "forged"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decode(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "Unauthorized", env.Error.Message)
	})
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(decode(t, rec).Data))

	ts.health.err = errors.New("connection reset")
	rec = ts.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "STORE_UNAVAILABLE", env.Error.Code)
}

func TestRequestIDAndFallbacks(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-from-client")
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "req-from-client", rec.Header().Get(deliverycontext.HeaderXRequestID))

	env := decode(t, rec)
	assert.Equal(t, "req-from-client", env.Meta.RequestID)
	require.NotNil(t, env.Error)
	assert.Equal(t, "HTTP_ERROR", env.Error.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
