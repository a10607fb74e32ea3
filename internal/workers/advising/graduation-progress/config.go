// internal/workers/advising/graduation-progress/config.go
package graduationprogress

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
