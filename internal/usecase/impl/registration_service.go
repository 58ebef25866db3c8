// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"podium/config"
	deliverycontext "podium/internal/delivery/context"
	"podium/internal/domain/entity"
	domainerrors "podium/internal/domain/errors"
	"podium/internal/domain/repository"
	"podium/internal/domain/service"
	"podium/internal/infra/metrics"
	"podium/internal/usecase"
	"podium/internal/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// registrationService implements the RegistrationUsecase interface.
type registrationService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	validator *validation.Validator
	policy    config.PasswordPolicyConfig
	metrics   *metrics.AuthMetrics
	logger    *slog.Logger
}

// RegistrationServiceParams holds dependencies for RegistrationService, injected by Fx.
type RegistrationServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Validator *validation.Validator
	Config    *config.Config
	Metrics   *metrics.AuthMetrics `optional:"true"`
	Logger    *slog.Logger
}

// NewRegistrationService is the constructor for registrationService.
func NewRegistrationService(params RegistrationServiceParams) usecase.RegistrationUsecase {
	policy := config.PasswordPolicyConfig{MinLength: 8, MaxLength: 72}
	if params.Config != nil && params.Config.PasswordPolicy != nil {
		policy = *params.Config.PasswordPolicy
	}

	return &registrationService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		validator: params.Validator,
		policy:    policy,
		metrics:   params.Metrics,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *registrationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates validation, hashing and the account+profile transaction.
func (srv *registrationService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Account, error) {
	if input == nil {
		return nil, domainerrors.NewValidationError(domainerrors.FieldViolation{Field: "body", Message: "is required"})
	}

	accountType, violations, err := srv.validate(input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate registration input")
	}
	if len(violations) > 0 {
		srv.metrics.ObserveRegistration(accountType.String(), metrics.OutcomeValidationFailed)

		return nil, domainerrors.NewValidationError(violations...)
	}

	digest, err := srv.hasher.Hash(ctx, input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))
		srv.metrics.ObserveRegistration(accountType.String(), metrics.OutcomeError)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	id, err := uuid.NewV7()
	if err != nil {
		srv.metrics.ObserveRegistration(accountType.String(), metrics.OutcomeError)

		return nil, errors.Wrap(err, "failed to generate account id")
	}

	account := &entity.Account{
		ID:             id,
		Email:          entity.NormalizeEmail(input.Email),
		PasswordDigest: digest,
		FullName:       strings.TrimSpace(input.FullName),
		AccountType:    accountType,
		Profile:        buildProfile(accountType, input),
	}

	err = srv.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		accountRepo := txRepoFactory.AccountRepo()
		if err := accountRepo.Create(ctx, account); err != nil {
			return err
		}
		if !account.AccountType.RequiresProfile() {
			return nil
		}

		return accountRepo.AttachProfile(ctx, account)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateAccount) {
			srv.log(ctx).Info("Registration rejected: email already registered")
			srv.metrics.ObserveRegistration(accountType.String(), metrics.OutcomeDuplicate)

			return nil, err
		}

		srv.log(ctx).Error("Failed to execute registration transaction",
			slog.String("accountType", accountType.String()),
			slog.Any("error", err),
		)
		srv.metrics.ObserveRegistration(accountType.String(), metrics.OutcomeError)

		return nil, err
	}

	srv.log(ctx).Info("Account registered",
		slog.String("accountID", account.ID.String()),
		slog.String("accountType", accountType.String()),
	)
	srv.metrics.ObserveRegistration(accountType.String(), metrics.OutcomeSuccess)

	account.PasswordDigest = ""

	return account, nil
}

// validate normalises the input in place and collects every violation.
func (srv *registrationService) validate(input *usecase.RegisterInput) (entity.AccountType, []domainerrors.FieldViolation, error) {
	input.Email = entity.NormalizeEmail(input.Email)
	input.FullName = strings.TrimSpace(input.FullName)

	var violations []domainerrors.FieldViolation

	accountType, ok := entity.ParseAccountType(input.AccountType)
	switch {
	case strings.TrimSpace(input.AccountType) == "":
		violations = append(violations, domainerrors.FieldViolation{Field: "accountType", Message: "is required"})
	case !ok:
		violations = append(violations, domainerrors.FieldViolation{
			Field:   "accountType",
			Message: "must be one of: " + strings.Join(entity.AccountTypeStrings(), ", "),
		})
	}

	// Payloads that do not belong to the account type are ignored.
	if accountType != entity.AccountTypeSpeaker {
		input.SpeakerProfile = nil
	}
	if accountType != entity.AccountTypeCorporate {
		input.CorporateProfile = nil
	}
	trimProfileInputs(input)

	structViolations, err := srv.validator.Struct(input, "")
	if err != nil {
		return accountType, nil, err
	}
	violations = append(violations, structViolations...)
	violations = append(violations, srv.passwordViolations(input.Password)...)

	switch {
	case accountType == entity.AccountTypeSpeaker && input.SpeakerProfile == nil:
		violations = append(violations, domainerrors.FieldViolation{Field: "speakerProfile", Message: "is required"})
	case accountType == entity.AccountTypeCorporate && input.CorporateProfile == nil:
		violations = append(violations, domainerrors.FieldViolation{Field: "corporateProfile", Message: "is required"})
	}

	return accountType, violations, nil
}

// passwordViolations applies the password policy. The upper bound is in bytes because bcrypt
// ignores anything past 72 bytes.
func (srv *registrationService) passwordViolations(password string) []domainerrors.FieldViolation {
	switch {
	case password == "":
		return []domainerrors.FieldViolation{{Field: "password", Message: "is required"}}
	case utf8.RuneCountInString(password) < srv.policy.MinLength:
		return []domainerrors.FieldViolation{{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", srv.policy.MinLength),
		}}
	case len(password) > srv.policy.MaxLength:
		return []domainerrors.FieldViolation{{
			Field:   "password",
			Message: fmt.Sprintf("must be at most %d bytes", srv.policy.MaxLength),
		}}
	default:
		return nil
	}
}

func trimProfileInputs(input *usecase.RegisterInput) {
	if p := input.SpeakerProfile; p != nil {
		p.Specialization = strings.TrimSpace(p.Specialization)
		p.Experience = strings.TrimSpace(p.Experience)
		if p.Portfolio != nil {
			portfolio := strings.TrimSpace(*p.Portfolio)
			p.Portfolio = &portfolio
			if portfolio == "" {
				p.Portfolio = nil
			}
		}
	}
	if p := input.CorporateProfile; p != nil {
		p.CompanyName = strings.TrimSpace(p.CompanyName)
		p.Position = strings.TrimSpace(p.Position)
		p.CompanySize = strings.TrimSpace(p.CompanySize)
		p.Industry = strings.TrimSpace(p.Industry)
	}
}

func buildProfile(accountType entity.AccountType, input *usecase.RegisterInput) entity.Profile {
	switch accountType {
	case entity.AccountTypeSpeaker:
		p := input.SpeakerProfile

		return &entity.SpeakerProfile{
			Specialization: p.Specialization,
			Experience:     p.Experience,
			Portfolio:      p.Portfolio,
		}
	case entity.AccountTypeCorporate:
		p := input.CorporateProfile

		return &entity.CorporateProfile{
			CompanyName: p.CompanyName,
			Position:    p.Position,
			CompanySize: p.CompanySize,
			Industry:    p.Industry,
		}
	default:
		return nil
	}
}
