package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabasePath string `env:"DATABASE_PATH" envDefault:"backoffice.db"`

	Commerce Commerce `envPrefix:"COMMERCE_"`
}

// Commerce points the gateway at the remote commerce API that owns all
// catalog, order and voucher state.
type Commerce struct {
	BaseApiURL     string        `env:"BASE_API_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
