package config

import (
	"os"
	"sync"
)

// SourcesConfig holds credentials for the tier-2 upstreams. An empty key
// means the source skips its fetch instead of failing the run.
type SourcesConfig struct {
	JoobleAPIKey string
	AdzunaAppID  string
	AdzunaAppKey string
	SerpAPIKey   string
}

var (
	sourcesConfig *SourcesConfig
	sourcesOnce   sync.Once
)

func LoadSourcesConfig() *SourcesConfig {
	sourcesOnce.Do(func() {
		sourcesConfig = &SourcesConfig{
			JoobleAPIKey: os.Getenv("JOOBLE_API_KEY"),
			AdzunaAppID:  os.Getenv("ADZUNA_APP_ID"),
			AdzunaAppKey: os.Getenv("ADZUNA_APP_KEY"),
			SerpAPIKey:   os.Getenv("SERPAPI_KEY"),
		}
	})
	return sourcesConfig
}
