package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error

	GoogleRedirectURL(userAgent string) (url string, state string, err error)
	LoginWithGoogle(ctx context.Context, code string) (LoginResponse, error)
}
