package ports

// IdentityProvider resolves the caller of a request from its Authorization
// header. Failures wrap domain.ErrUnauthorized.
type IdentityProvider interface {
	UserIDFromAuthHeader(header string) (string, error)
}
