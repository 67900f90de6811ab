package providers

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"homefeed/internal/models"
	"homefeed/internal/structures"
)

// NewCatalogStore builds the catalog collaborator stand-in, loading the
// seed file when one is configured. A missing seed path starts an empty
// catalog; a present but unreadable seed is a boot failure.
func NewCatalogStore(conf *structures.Config, logger Logger) (*models.CatalogStore, error) {
	store := models.NewCatalogStore()
	if conf.Catalog.SeedPath == "" {
		logger.Warnf(TypeApp, "No catalog seed configured, starting with an empty catalog")
		return store, nil
	}

	data, err := os.ReadFile(conf.Catalog.SeedPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warnf(TypeApp, "Catalog seed %s not found, starting with an empty catalog", conf.Catalog.SeedPath)
			return store, nil
		}
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}

	var seed models.CatalogSeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}
	store.Load(&seed)
	logger.Infof(TypeApp, "Catalog seed loaded: %d categories, %d series, %d episodes",
		len(seed.Categories), len(seed.Series), len(seed.Episodes))
	return store, nil
}

func NewWatchStore() *models.WatchStore {
	return models.NewWatchStore()
}
