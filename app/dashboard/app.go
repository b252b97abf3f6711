package dashboard

import (
	"context"

	"go.uber.org/zap"

	"github.com/worldpulse/devdash/app/dashboard/types"
	"github.com/worldpulse/devdash/pkg/charts"
	"github.com/worldpulse/devdash/pkg/dataset"
	"github.com/worldpulse/devdash/pkg/logging"
	"github.com/worldpulse/devdash/pkg/retry"
	"github.com/worldpulse/devdash/pkg/utils"
	"github.com/worldpulse/devdash/pkg/worldbank"
)

// The dashboard covers a fixed window of three development indicators. The
// indicator labels become the canonical column names of the observation table.
const (
	StartYear = 2000
	EndYear   = 2020

	GDPField   = "GDP per capita (current US$)"
	LifeField  = "Life expectancy at birth (years)"
	WaterField = "Access to clean water (% pop)"
)

// Indicators maps World Bank indicator codes to their display labels.
var Indicators = map[string]string{
	"NY.GDP.PCAP.CD": GDPField,
	"SP.DYN.LE00.IN": LifeField,
	"SH.H2O.SMDW.ZS": WaterField,
}

// Initialize initializes the application: logger, then the observation table
// via cache-or-fetch. Any failure on that path aborts startup.
func Initialize(ctx context.Context) *types.App {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	table, err := LoadTable(ctx, logger)
	if err != nil {
		logger.Fatal("Unable to load dataset", zap.Error(err))
	}

	years := table.Years()
	if len(years) > 0 {
		logger.Info("Loaded data",
			zap.Int("first_year", years[0]),
			zap.Int("last_year", years[len(years)-1]),
			zap.Int("rows", table.Len()),
			zap.Int("countries", len(table.Countries())))
	} else {
		logger.Warn("Loaded empty dataset")
	}

	return &types.App{
		Logger:  logger,
		Dataset: table,
		Charts: charts.Config{
			GDPField:   GDPField,
			LifeField:  LifeField,
			WaterField: WaterField,
			StartYear:  StartYear,
			EndYear:    EndYear,
		},
	}
}

// LoadTable returns the normalized observation table: the cache wins when
// present (no staleness check), otherwise one fetch populates it. Both paths
// run the same normalization on the raw snapshot.
func LoadTable(ctx context.Context, logger *zap.Logger) (*dataset.Table, error) {
	cache := &dataset.Cache{
		Path:   utils.Env("CACHE_FILE", "wbdata_cache.json"),
		Logger: logger,
	}

	raw, hit, err := cache.Load()
	if err != nil {
		return nil, err
	}
	if !hit {
		logger.Info("Cache miss, fetching from World Bank API")
		retryCfg := retry.DefaultConfig()
		retryCfg.MaxRetries = utils.EnvInt("WB_FETCH_RETRIES", retryCfg.MaxRetries)
		client := worldbank.New(worldbank.Opts{
			BaseURL: utils.Env("WB_API_URL", "https://api.worldbank.org/v2"),
			Logger:  logger,
			Retry:   &retryCfg,
		})
		raw, err = client.FetchAll(ctx, Indicators, StartYear, EndYear)
		if err != nil {
			return nil, err
		}
		if err := cache.Store(raw); err != nil {
			return nil, err
		}
	}

	return dataset.Normalize(raw, Indicators)
}
