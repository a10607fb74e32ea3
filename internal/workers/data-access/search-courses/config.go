// internal/workers/data-access/search-courses/config.go
package searchcourses

import "time"

type Config struct {
	Timeout time.Duration
	Index   string
	MaxHits int
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
		Index:   "courses",
		MaxHits: 20,
	}
}
