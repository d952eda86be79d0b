package main

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/adapters/routing"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/planner"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (routing client, Redis cache, Postgres seed
// store) behind ports and starts the HTTP server. The planner session itself
// is in-memory; only the seed catalog and route estimates touch a store.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	routingBaseURL := config.Get("ROUTING_BASE_URL", "http://localhost:9090")
	routingAPIKey := config.Get("ROUTING_API_KEY", "")
	redisAddr := config.Get("REDIS_ADDR", "")
	databaseURL := config.Get("DATABASE_URL", "")
	maxSkids := config.GetInt("MAX_SKIDS_PER_TRIP", planner.DefaultMaxSkidsPerTrip)
	maxHours := config.GetFloat("MAX_DRIVING_HOURS_PER_TRIP", planner.DefaultMaxDrivingHoursPerTrip)

	// Estimate caching is optional; without Redis every mutation pays the
	// routing call (or the offline fallback).
	var estimateCache ports.EstimateCache
	if redisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: redisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unreachable, estimate cache disabled: %v", err)
		} else {
			estimateCache = cache.NewRedisEstimateCache(client)
		}
	}

	estimator, err := routing.NewClient(routingBaseURL, routingAPIKey, estimateCache)
	if err != nil {
		log.Fatal(err)
	}

	p := planner.New(estimator)
	if err := p.SetLimits(maxSkids, maxHours); err != nil {
		log.Fatal(err)
	}

	// Preload the catalog from the Postgres seed store when configured;
	// otherwise the session starts empty until a POST /catalog.
	if databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		repo := repositories.NewPgDeliveryRepository(pg)
		deliveries, err := repo.ListDeliveries(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		p.ResetCatalog(deliveries)
		log.Printf("catalog preloaded deliveries=%d", len(deliveries))
	}

	router := api.NewRouter(p)

	// Write timeout leaves room for a cold routing call plus slack.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
