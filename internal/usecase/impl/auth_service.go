package impl

import (
	"context"
	"log/slog"
	"strings"

	"darkstore/config"
	deliverycontext "darkstore/internal/delivery/context"
	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/domain/service"
	"darkstore/internal/usecase"

	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. There is a single
// operator account, configured statically; no self-service registration.
type authService struct {
	adminEmail   string
	passwordHash string
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		adminEmail:   params.Config.Admin.Email,
		passwordHash: params.Config.Admin.PasswordHash,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login checks the operator credentials and issues a bearer token.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if srv.adminEmail == "" || srv.passwordHash == "" {
		srv.log(ctx).Warn("dashboard login attempted but no admin account is configured")

		return nil, domainerrors.ErrInvalidCredentials
	}

	if !strings.EqualFold(input.Email, srv.adminEmail) || !srv.hasher.Check(input.Password, srv.passwordHash) {
		srv.log(ctx).Warn("dashboard login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.GenerateToken(srv.adminEmail)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("dashboard login succeeded", slog.String("email", srv.adminEmail))

	return &usecase.LoginOutput{AccessToken: token}, nil
}
