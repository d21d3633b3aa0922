package config

import (
	"log"
	"os"
	"strconv"
	"sync"
)

type AppConfig struct {
	Name                string
	Env                 string
	Port                string
	ScrapeIntervalHours int
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}

		interval := 24
		if s := os.Getenv("SCRAPE_INTERVAL_HOURS"); s != "" {
			if v, err := strconv.Atoi(s); err == nil && v >= 1 {
				interval = v
			}
		}

		port := os.Getenv("APP_PORT")
		if port == "" {
			port = ":8080"
		}

		appConfig = &AppConfig{
			Name:                "jobhunter",
			Env:                 env,
			Port:                port,
			ScrapeIntervalHours: interval,
		}
	})
	return appConfig
}
