// internal/workers/advising/resolve-semester/config.go
package resolvesemester

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
