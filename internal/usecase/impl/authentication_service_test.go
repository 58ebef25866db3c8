package impl

import (
	"context"
	"net/http"
	"testing"

	"podium/internal/domain/entity"
	domainerrors "podium/internal/domain/errors"
	"podium/internal/domain/repository"
	"podium/internal/infra/metrics"
	mockRepo "podium/internal/mocks/repository"
	mockSvc "podium/internal/mocks/service"
	"podium/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authenticationFixtures struct {
	service     usecase.AuthenticationUsecase
	accountRepo *mockRepo.MockAccountRepository
	hasher      *mockSvc.MockPasswordHasher
	metrics     *metrics.AuthMetrics
}

func createTestAuthenticationService(t *testing.T) authenticationFixtures {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	authMetrics := metrics.NewAuthMetrics(prometheus.NewRegistry())

	return authenticationFixtures{
		service: NewAuthenticationService(AuthenticationServiceParams{
			AccountRepo: accountRepo,
			Hasher:      hasher,
			Metrics:     authMetrics,
			Logger:      discardLogger(),
		}),
		accountRepo: accountRepo,
		hasher:      hasher,
		metrics:     authMetrics,
	}
}

func storedAccount() *entity.Account {
	return &entity.Account{
		ID:             uuid.New(),
		Email:          "ada@example.com",
		PasswordDigest: "stored_digest",
		FullName:       "Ada Lovelace",
		AccountType:    entity.AccountTypeIndividual,
	}
}

func TestAuthenticationService_Login_Success(t *testing.T) {
	f := createTestAuthenticationService(t)
	ctx := context.Background()
	account := storedAccount()

	f.accountRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(account, nil)
	f.hasher.EXPECT().Verify(ctx, "Password123!", "stored_digest").Return(true)

	got, err := f.service.Login(ctx, &usecase.LoginInput{Email: "  ADA@example.com", Password: "Password123!"})

	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	assert.Empty(t, got.PasswordDigest)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Logins.WithLabelValues(metrics.OutcomeSuccess)))
}

func TestAuthenticationService_Login_WrongPassword(t *testing.T) {
	f := createTestAuthenticationService(t)
	ctx := context.Background()

	f.accountRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(storedAccount(), nil)
	f.hasher.EXPECT().Verify(ctx, "wrong", "stored_digest").Return(false)

	_, err := f.service.Login(ctx, &usecase.LoginInput{Email: "ada@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthenticationService_Login_UnknownEmailStillVerifies(t *testing.T) {
	f := createTestAuthenticationService(t)
	ctx := context.Background()

	f.accountRepo.EXPECT().FindByEmail(ctx, mock.Anything).Return(nil, repository.ErrAccountNotFound).Twice()
	f.hasher.EXPECT().Hash(mock.Anything, mock.Anything).Return("dummy_digest", nil).Once()
	f.hasher.EXPECT().Verify(ctx, "whatever", "dummy_digest").Return(false).Twice()

	for range 2 {
		_, err := f.service.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.Logins.WithLabelValues(metrics.OutcomeInvalidCredentials)))
}

func TestAuthenticationService_Login_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	f := createTestAuthenticationService(t)
	ctx := context.Background()

	f.accountRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrAccountNotFound)
	f.accountRepo.EXPECT().FindByEmail(ctx, "ada@example.com").Return(storedAccount(), nil)
	f.hasher.EXPECT().Hash(mock.Anything, mock.Anything).Return("dummy_digest", nil)
	f.hasher.EXPECT().Verify(ctx, mock.Anything, mock.Anything).Return(false)

	_, unknownErr := f.service.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "pw"})
	_, wrongErr := f.service.Login(ctx, &usecase.LoginInput{Email: "ada@example.com", Password: "pw"})

	unknownApp, ok := domainerrors.AsAppError(unknownErr)
	require.True(t, ok)
	wrongApp, ok := domainerrors.AsAppError(wrongErr)
	require.True(t, ok)
	assert.Equal(t, unknownApp.ErrorCode(), wrongApp.ErrorCode())
	assert.Equal(t, unknownApp.Message(), wrongApp.Message())
	assert.Equal(t, http.StatusUnauthorized, wrongApp.HTTPCode())
}

func TestAuthenticationService_Login_MalformedInput(t *testing.T) {
	inputs := map[string]*usecase.LoginInput{
		"nil":            nil,
		"empty":          {},
		"blank email":    {Email: "   ", Password: "pw"},
		"empty password": {Email: "ada@example.com"},
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			f := createTestAuthenticationService(t)

			_, err := f.service.Login(context.Background(), input)

			assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		})
	}
}

func TestAuthenticationService_Login_StoreUnavailable(t *testing.T) {
	f := createTestAuthenticationService(t)
	ctx := context.Background()
	storeErr := domainerrors.NewStoreUnavailableError(errors.New("dial tcp: refused"), "failed to find account by email")

	f.accountRepo.EXPECT().FindByEmail(ctx, mock.Anything).Return(nil, storeErr)

	_, err := f.service.Login(ctx, &usecase.LoginInput{Email: "ada@example.com", Password: "pw"})

	appErr, ok := domainerrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPCode())
	assert.NotErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Logins.WithLabelValues(metrics.OutcomeError)))
}
