// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with caarlos0/env tags; dotenv files are
// read with godotenv and act as defaults below the real environment:
//
//	type Config struct {
//		Addr  string        `env:"HTTP_ADDR" envDefault:":8080"`
//		Idle  time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
//		Redis string        `env:"REDIS_URL,required"`
//	}
//
//	cfg, err := config.Load[Config](config.WithEnvFiles(".env", ".env.local"))
//
// Errors wrap ErrParsingConfig or ErrReadingEnvFile and can be matched with
// errors.Is.
package config
