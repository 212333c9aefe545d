package actions

import (
	"github.com/Memily89/smart-sales-memily89/logger"
	"github.com/Memily89/smart-sales-memily89/seed"
)

type SeedConfig struct {
	Log       logger.Logger
	Dir       string
	Seed      uint64
	Customers int
	Products  int
	Sales     int
}

// RunSeed writes demo source CSVs ready for a load run.
func RunSeed(cfg *SeedConfig) ([]string, error) {
	guid := NewRunGuid()
	cfg.Log.Info("Starting seed run ", guid)
	files, err := seed.Generate(&seed.Config{
		Log:       cfg.Log,
		Dir:       cfg.Dir,
		Seed:      cfg.Seed,
		Customers: cfg.Customers,
		Products:  cfg.Products,
		Sales:     cfg.Sales,
	})
	if err != nil {
		return nil, err
	}
	cfg.Log.Info("Seed run ", guid, " complete")
	return files, nil
}
