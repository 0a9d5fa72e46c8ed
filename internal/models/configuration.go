package models

type Configuration struct {
	App       AppConfiguration       `mapstructure:"app"       validate:"required"`
	API       APIConfiguration       `mapstructure:"api"       validate:"required"`
	Session   SessionConfiguration   `mapstructure:"session"   validate:"required"`
	Activity  ActivityConfiguration  `mapstructure:"activity"`
	Telemetry TelemetryConfiguration `mapstructure:"telemetry"`
}

type AppConfiguration struct {
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error fatal panic"`
}

type APIConfiguration struct {
	BaseURL        string `mapstructure:"base_url"        validate:"required,http_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1,lte=300"`
	UserAgent      string `mapstructure:"user_agent"`
}

type SessionConfiguration struct {
	Type       string                          `mapstructure:"type"       validate:"required,oneof=memory filesystem redis valkey"`
	Filesystem *FilesystemSessionConfiguration `mapstructure:"filesystem" validate:"required_if=Type filesystem"`
	Redis      *RedisSessionConfiguration      `mapstructure:"redis"      validate:"required_if=Type redis"`
	Valkey     *ValkeySessionConfiguration     `mapstructure:"valkey"     validate:"required_if=Type valkey"`
}

type FilesystemSessionConfiguration struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

type RedisSessionConfiguration struct {
	Hosts         []string `mapstructure:"hosts"           validate:"required,min=1"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type ValkeySessionConfiguration struct {
	Hosts         []string `mapstructure:"hosts"           validate:"required,min=1"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type TelemetryConfiguration struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"     validate:"required_if=Enabled true"`
	ServiceName string `mapstructure:"service_name"`
}

type ActivityConfiguration struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory" validate:"required_if=Enabled true"`
}
