package server

import "github.com/raysh454/phishlens/internal/logging"

type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string

	// AllowedOrigin is sent as Access-Control-Allow-Origin. Defaults to "*".
	AllowedOrigin string

	Logger logging.Logger
}
