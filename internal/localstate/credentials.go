package localstate

// Credentials provides typed access to the persisted access/refresh token
// pair. It satisfies the API client's token source.
type Credentials struct {
	store Store
}

// NewCredentials wraps a store with token-pair accessors.
func NewCredentials(store Store) *Credentials {
	return &Credentials{store: store}
}

// AccessToken returns the stored access token, if any.
func (c *Credentials) AccessToken() (string, bool) {
	return c.store.Get(KeyAccessToken)
}

// RefreshToken returns the stored refresh token, if any.
func (c *Credentials) RefreshToken() (string, bool) {
	return c.store.Get(KeyRefreshToken)
}

// SetPair persists both tokens. The pair is written together; a failure on
// either write leaves the credentials cleared rather than half-stored.
func (c *Credentials) SetPair(accessToken, refreshToken string) error {
	if err := c.store.Set(KeyAccessToken, accessToken); err != nil {
		c.Clear()
		return err
	}
	if err := c.store.Set(KeyRefreshToken, refreshToken); err != nil {
		c.Clear()
		return err
	}
	return nil
}

// Clear removes both tokens.
func (c *Credentials) Clear() {
	c.store.Delete(KeyAccessToken)
	c.store.Delete(KeyRefreshToken)
}
