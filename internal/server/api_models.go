package server

// CheckRequest is the payload for POST /api/check and for every websocket message.
type CheckRequest struct {
	URL string `json:"url" example:"http://paypal.com.secure-login.xyz/verify"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"url is empty"`
}
