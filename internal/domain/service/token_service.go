package service

// TokenService issues and validates the dashboard's access tokens.
type TokenService interface {
	// GenerateToken creates a signed access token for the given subject.
	GenerateToken(subject string) (string, error)

	// ValidateToken checks a token and returns its subject.
	ValidateToken(token string) (string, error)
}
