package impl

import (
	"context"
	"log/slog"
	"time"

	"adsync/internal/domain/entity"
	domainerrors "adsync/internal/domain/errors"
	"adsync/internal/domain/repository"
	"adsync/internal/domain/service"
	"adsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// tokenService implements the TokenUsecase interface.
type tokenService struct {
	credRepo     repository.CredentialRepository
	adsFactory   service.AdsClientFactory
	sheetFactory service.SpreadsheetClientFactory
	logger       *slog.Logger
	now          func() time.Time
}

// NewTokenService is the constructor for tokenService.
func NewTokenService(
	credRepo repository.CredentialRepository,
	adsFactory service.AdsClientFactory,
	sheetFactory service.SpreadsheetClientFactory,
	logger *slog.Logger,
) usecase.TokenUsecase {
	return &tokenService{
		credRepo:     credRepo,
		adsFactory:   adsFactory,
		sheetFactory: sheetFactory,
		logger:       logger,
		now:          time.Now,
	}
}

// ConnectMeta exchanges a short-lived Meta token for a long-lived one and
// stores it. The exchange runs once per linking event; resolve never
// re-exchanges.
func (srv *tokenService) ConnectMeta(ctx context.Context, userID uuid.UUID, input *usecase.ConnectMetaInput) error {
	srv.logger.Info("Linking Meta account", "userID", userID)

	exchange, err := srv.adsFactory.ExchangeShortLivedToken(ctx, input.ShortLivedToken)
	if err != nil {
		return errors.Wrap(err, "failed to exchange short-lived token")
	}

	cred := &entity.Credential{
		ID:          uuid.New(),
		UserID:      userID,
		Provider:    entity.ProviderMeta,
		AccessToken: exchange.AccessToken,
		ExpiresAt:   srv.now().Add(time.Duration(exchange.ExpiresIn) * time.Second),
	}
	if err := srv.credRepo.Upsert(ctx, cred); err != nil {
		return errors.Wrap(err, "failed to store Meta credential")
	}

	return nil
}

// ConnectGoogle exchanges an authorization code for Google token material
// and stores it.
func (srv *tokenService) ConnectGoogle(ctx context.Context, userID uuid.UUID, input *usecase.ConnectGoogleInput) error {
	srv.logger.Info("Linking Google account", "userID", userID)

	token, err := srv.sheetFactory.ExchangeAuthCode(ctx, input.Code)
	if err != nil {
		return errors.Wrap(err, "failed to exchange authorization code")
	}

	cred := &entity.Credential{
		ID:           uuid.New(),
		UserID:       userID,
		Provider:     entity.ProviderGoogle,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.ExpiresAt,
	}
	if err := srv.credRepo.Upsert(ctx, cred); err != nil {
		return errors.Wrap(err, "failed to store Google credential")
	}

	return nil
}

// Disconnect removes the stored credential for a provider.
func (srv *tokenService) Disconnect(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) error {
	srv.logger.Info("Unlinking provider", "userID", userID, "provider", provider)

	if !provider.Valid() {
		return errors.Wrap(domainerrors.ErrValidationFailed, "unknown provider")
	}

	if err := srv.credRepo.Delete(ctx, userID, provider); err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to delete credential")
	}

	return nil
}

// Status reports which providers the user has linked.
func (srv *tokenService) Status(ctx context.Context, userID uuid.UUID) (*usecase.ConnectionStatusOutput, error) {
	out := &usecase.ConnectionStatusOutput{}

	for _, provider := range []entity.ProviderType{entity.ProviderMeta, entity.ProviderGoogle} {
		cred, err := srv.credRepo.Find(ctx, userID, provider)
		if err != nil {
			if errors.Is(err, repository.ErrCredentialNotFound) {
				continue
			}

			return nil, errors.Wrap(err, "failed to load credential")
		}

		status := usecase.ProviderStatus{Connected: true}
		if !cred.ExpiresAt.IsZero() {
			expiresAt := cred.ExpiresAt
			status.ExpiresAt = &expiresAt
		}

		switch provider {
		case entity.ProviderMeta:
			out.Meta = status
		case entity.ProviderGoogle:
			out.Google = status
		}
	}

	return out, nil
}

// ResolveMetaToken returns the user's long-lived Meta token.
func (srv *tokenService) ResolveMetaToken(ctx context.Context, userID uuid.UUID) (string, error) {
	cred, err := srv.credRepo.Find(ctx, userID, entity.ProviderMeta)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return "", domainerrors.ErrMetaNotConnected
		}

		return "", errors.Wrap(err, "failed to load Meta credential")
	}

	return cred.AccessToken, nil
}

// SheetsClientFor returns a spreadsheet client bound to the user's Google
// credential. Rotated tokens are written back through the credential
// repository before the client continues with them.
func (srv *tokenService) SheetsClientFor(ctx context.Context, userID uuid.UUID) (service.SpreadsheetClient, error) {
	cred, err := srv.credRepo.Find(ctx, userID, entity.ProviderGoogle)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, domainerrors.ErrGoogleNotConnected
		}

		return nil, errors.Wrap(err, "failed to load Google credential")
	}

	persist := func(ctx context.Context, accessToken, refreshToken string, expiresAt time.Time) error {
		return srv.credRepo.UpdateToken(ctx, userID, entity.ProviderGoogle, accessToken, refreshToken, expiresAt)
	}

	client, err := srv.sheetFactory.ClientForCredential(ctx, cred, persist)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build spreadsheet client")
	}

	return client, nil
}
