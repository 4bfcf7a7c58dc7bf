package mailer

// Config holds configuration for the SMTP mailer.
type Config struct {
	// Host is the SMTP server hostname.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the SMTP server port.
	Port int `mapstructure:"port" default:"587"`
	// Username authenticates against the SMTP server. Empty disables auth.
	Username string `mapstructure:"username" default:""`
	// Password is the SMTP password.
	Password string `mapstructure:"password" default:""`
	// From is the default sender address used when a message carries none.
	From string `mapstructure:"from" default:""`
	// TLSPolicy selects transport security (mandatory, opportunistic, none).
	TLSPolicy string `mapstructure:"tls_policy" default:"opportunistic"`
	// TimeoutSeconds is the SMTP dial and I/O timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
