package container

import (
	"context"
	"fmt"
	"time"

	"phoneprices/scraper/internal/cache"
	"phoneprices/scraper/internal/client"
	"phoneprices/scraper/internal/config"
	"phoneprices/scraper/internal/metrics"
	"phoneprices/scraper/internal/proxy"
	"phoneprices/scraper/internal/repository"
	"phoneprices/scraper/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Client     client.ShopClient
	Repository repository.PriceRepository
	Cache      cache.PriceCache

	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized. Database
// and redis are only dialed when their config sections enable them; the
// default run needs neither.
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	proxySupplier := proxy.NewSupplier(context.Background(), cfg.Shop.Proxies, cfg.Shop.BaseURL)

	if cfg.Database.Enabled {
		db, err := pgxpool.New(context.Background(),
			fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
			))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		container.db = db
		container.Repository = repository.NewPriceRepository(db)
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		container.Cache = cache.NewRedisPriceCache(rdb, time.Duration(cfg.Redis.TTL)*time.Second)
	}

	shopClient := client.NewShopClient(cfg.Shop, proxySupplier)
	container.Client = shopClient

	container.Service = service.NewService(
		shopClient,
		container.Repository,
		container.Cache,
		cfg.Shop.MaxWorkers,
		cfg.Input.DevicesFile,
		cfg.Output.File,
	)

	return container, nil
}

// Run executes the full lookup batch
func (c *Container) Run(ctx context.Context) error {
	if c.Config.Metrics.Enabled {
		go func() {
			log.Infof("Serving metrics on %s", c.Config.Metrics.Addr)
			if err := metrics.StartMetricsServer(c.Config.Metrics.Addr); err != nil {
				log.Errorf("❌ Metrics server failed: %v", err)
			}
		}()
	}

	return c.Service.Run(ctx)
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
