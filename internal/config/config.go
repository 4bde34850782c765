package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"5005"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	JWTSecret       string `env:"JWT_SECRET,required"`
	JWTExpiryHours  int    `env:"JWT_TOKEN_EXPIRY_HOURS" envDefault:"48"`
	ResetMaxAgeSecs int    `env:"RESET_TOKEN_MAX_AGE" envDefault:"3600"`
	BcryptCost      int    `env:"BCRYPT_COST" envDefault:"10"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
