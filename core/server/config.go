package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// RunTimeoutSeconds bounds a comparison run triggered over HTTP.
	RunTimeoutSeconds int `mapstructure:"run_timeout_seconds" default:"3600"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}

// RunTimeout returns the run deadline, one hour when unset.
func (c Config) RunTimeout() time.Duration {
	if c.RunTimeoutSeconds <= 0 {
		return time.Hour
	}
	return time.Duration(c.RunTimeoutSeconds) * time.Second
}
