// internal/workers/advising/reasoning-trace/config.go
package reasoningtrace

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
