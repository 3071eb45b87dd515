package usecase

import (
	"context"
)

// LoginInput carries dashboard credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput returns the bearer token for dashboard routes.
type LoginOutput struct {
	AccessToken string `json:"accessToken"`
}

// AuthUsecase authenticates the dashboard operator.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
