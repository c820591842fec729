package models

// TokenResponse is returned by the login endpoint. The same bearer token is
// also mirrored in the Authorization response header.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AccountListResponse is the paginated payload returned by the admin
// account-listing endpoint.
type AccountListResponse struct {
	// Items is the page of accounts, ordered by creation time.
	Items []Account `json:"items"`

	// Total is the overall number of registered accounts, independent of
	// the requested page. Lets clients compute page counts without a
	// second request.
	Total int64 `json:"total"`

	// Skip and Limit echo the effective pagination window after clamping.
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// MessageResponse is a minimal envelope for endpoints that only confirm an
// action (unlock, upgrade, verification).
type MessageResponse struct {
	Message string `json:"message"`
}
