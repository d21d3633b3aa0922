package source

import (
	"go.uber.org/zap"

	"github.com/tomasrg/jobhunter/internal/config"
)

// Registry returns the closed set of feed adapters in their run order.
// Adding an upstream means adding a type here, not registering one at
// runtime. Tier-2 sources come last; they silently skip without credentials.
func Registry(logger *zap.Logger) []Source {
	creds := config.LoadSourcesConfig()

	return []Source{
		NewRemoteOK(logger),
		NewArbeitnow(logger),
		NewHimalayas(logger),
		NewWeWorkRemotely(logger),
		NewRemotive(logger),
		NewJooble(creds.JoobleAPIKey, logger),
		NewAdzuna(creds.AdzunaAppID, creds.AdzunaAppKey, logger),
		NewSerpAPI(creds.SerpAPIKey, logger),
	}
}
