package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/adapters/feed"
	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/adapters/observability"
	redisad "github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/adapters/redis"
	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/app"
	"github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/shared"
	mysqlrepo "github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("feed", cfg.FeedBase).
		Str("file", cfg.SeedFile).
		Int("workers", cfg.Workers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	seeder := app.NewSeedService(repo, cache)

	hotels, err := loadHotels(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("loading catalog feed failed")
	}
	log.Info().Int("hotels", len(hotels)).Msg("feed loaded")

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, h := range hotels {
		h := h

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(hotel feed.Hotel) {
			defer wg.Done()
			defer sem.Release(1)

			if err := seeder.SeedHotel(ctx, hotel); err != nil {
				log.Warn().Int64("id", hotel.ID).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int64("id", hotel.ID).Msg("seed ok")
		}(h)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}

// loadHotels prefers the local file when both sources are configured.
func loadHotels(ctx context.Context, cfg shared.Config) ([]feed.Hotel, error) {
	if cfg.SeedFile != "" {
		return feed.LoadFile(cfg.SeedFile)
	}
	client, err := feed.New(cfg.FeedBase, cfg.FeedKey, 5)
	if err != nil {
		return nil, err
	}
	return client.FetchCatalog(ctx)
}
