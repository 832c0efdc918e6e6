package proxy

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// Supplier hands out proxy URLs round-robin. Shopping search engines throttle
// aggressively by IP, so every blocked request can be retried through the
// next proxy in the pool.
type Supplier interface {
	Get() string
}

type supplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewSupplier probes the configured proxies against testURL and keeps only
// the ones that respond. An empty pool is valid: Get then always returns "".
func NewSupplier(ctx context.Context, proxies []string, testURL string) Supplier {
	if len(proxies) == 0 {
		return &supplier{}
	}

	log.Infof("Probing %d proxies...", len(proxies))

	working := make(chan string, len(proxies))
	var wg sync.WaitGroup
	for _, proxyURL := range proxies {
		wg.Add(1)
		go func(proxyURL string) {
			defer wg.Done()
			if probe(ctx, proxyURL, testURL) {
				working <- proxyURL
			} else {
				log.Warnf("Proxy %s is not reachable, skipping", proxyURL)
			}
		}(proxyURL)
	}
	wg.Wait()
	close(working)

	valid := make([]string, 0, len(proxies))
	for proxyURL := range working {
		valid = append(valid, proxyURL)
	}

	log.Infof("✅ Proxy pool ready with %d of %d proxies", len(valid), len(proxies))
	return &supplier{proxies: valid}
}

func (s *supplier) Get() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.proxies) == 0 {
		return ""
	}
	proxyURL := s.proxies[s.current]
	s.current = (s.current + 1) % len(s.proxies)
	return proxyURL
}

func probe(ctx context.Context, proxyURL, testURL string) bool {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetProxy(proxyURL)

	resp, err := client.R().
		SetContext(ctx).
		Get(testURL)

	return err == nil && !resp.IsError()
}
