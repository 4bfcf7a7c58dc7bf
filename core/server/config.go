package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	// When empty the API is left open (development mode).
	ApiKey string `mapstructure:"api_key" default:""`
}

// IsProtected reports whether an API key is configured.
func (c Config) IsProtected() bool {
	return c.ApiKey != ""
}
