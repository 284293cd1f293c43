package models

// AuthRequest is the body of the login endpoint.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by the login endpoint on success.
type TokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
