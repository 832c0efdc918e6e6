package service

import (
	"context"
	"fmt"
	"time"

	"phoneprices/scraper/internal/cache"
	"phoneprices/scraper/internal/client"
	"phoneprices/scraper/internal/devices"
	"phoneprices/scraper/internal/domain"
	"phoneprices/scraper/internal/export"
	"phoneprices/scraper/internal/metrics"
	"phoneprices/scraper/internal/repository"

	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

// Service drives the batch: read the device list, look up every device in
// input order, write the CSV. cache and repository may be nil.
type Service struct {
	client      client.ShopClient
	repository  repository.PriceRepository
	cache       cache.PriceCache
	maxWorkers  int
	devicesFile string
	outputFile  string
}

func NewService(
	client client.ShopClient,
	repository repository.PriceRepository,
	cache cache.PriceCache,
	maxWorkers int,
	devicesFile string,
	outputFile string,
) *Service {
	return &Service{
		client:      client,
		repository:  repository,
		cache:       cache,
		maxWorkers:  maxWorkers,
		devicesFile: devicesFile,
		outputFile:  outputFile,
	}
}

func (s *Service) Run(ctx context.Context) error {
	list, err := devices.ReadFile(s.devicesFile)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("no devices found in %s", s.devicesFile)
	}

	log.Infof("Looking up prices for %d devices", len(list))

	results, err := s.collect(ctx, list)
	if err != nil {
		return err
	}

	if err := export.WriteFile(s.outputFile, results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if s.repository != nil {
		for i := range results {
			if err := s.repository.SavePriceRange(ctx, &results[i]); err != nil {
				log.Errorf("❌ Failed to persist price range for %s: %v", results[i].Device.ModelName, err)
			}
		}
	}

	return nil
}

// collect produces one result per device at the device's input index, so
// output order matches input order even when lookups fan out.
func (s *Service) collect(ctx context.Context, list []domain.Device) ([]domain.PriceRange, error) {
	results := make([]domain.PriceRange, len(list))

	if s.maxWorkers <= 1 {
		for i, device := range list {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			results[i] = s.lookup(ctx, device)
		}
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	semaphore := make(chan struct{}, s.maxWorkers)

	for i, device := range list {
		i, device := i, device
		g.Go(func() error {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.lookup(ctx, device)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// lookup never fails the batch: a fetch error becomes a marked empty result
// for that device and the run moves on.
func (s *Service) lookup(ctx context.Context, device domain.Device) domain.PriceRange {
	log.Infof("Looking up price for '%s'", device.ModelName)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, device)
		if err != nil {
			log.Warnf("Failed to read price cache for %s: %v", device.ModelName, err)
		} else if cached != nil {
			log.Infof("Using cached prices for '%s'", device.ModelName)
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			cached.Device = device
			return *cached
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	result, err := s.client.LookupPrices(ctx, device)
	metrics.LookupDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		log.Errorf("❌ Failed to look up prices for %s: %v", device.ModelName, err)
		metrics.LookupsTotal.WithLabelValues("error").Inc()
		return domain.PriceRange{Device: device, FetchFailed: true}
	}

	metrics.LookupsTotal.WithLabelValues("success").Inc()
	metrics.PricesExtracted.Add(float64(len(result.Prices)))

	if lo, ok := result.Min(); ok {
		hi, _ := result.Max()
		log.Infof("Determined price range of %.2f - %.2f for '%s'", lo, hi, device.ModelName)
	} else {
		log.Infof("No prices found for '%s'", device.ModelName)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, result); err != nil {
			log.Warnf("Failed to cache prices for %s: %v", device.ModelName, err)
		}
	}

	return *result
}
