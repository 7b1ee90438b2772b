package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Events   EventsConfig   `mapstructure:"events"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig selects the storage backend. URL is a postgres connection
// string or, for sqlite, a file path or DSN.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL    string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=44640"`
	BCryptCost           int    `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}

// EventsConfig configures the AMQP entry-event publisher.
// Publishing is disabled when AMQPURL is empty.
type EventsConfig struct {
	AMQPURL    string `mapstructure:"amqp_url" validate:"omitempty,url"`
	Exchange   string `mapstructure:"exchange" validate:"required_with=AMQPURL"`
	RoutingKey string `mapstructure:"routing_key" validate:"required_with=AMQPURL"`
	QueueSize  int    `mapstructure:"queue_size" validate:"gte=0"`
	Workers    int    `mapstructure:"workers" validate:"gte=0"`
}

// Enabled reports whether an AMQP broker is configured.
func (c EventsConfig) Enabled() bool {
	return c.AMQPURL != ""
}
