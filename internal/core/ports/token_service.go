package ports

// TokenService issues and verifies the stateless API token.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the user id carried by a valid, unexpired token.
	Verify(token string) (string, error)
}
