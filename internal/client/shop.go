package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"phoneprices/scraper/internal/config"
	"phoneprices/scraper/internal/domain"
	"phoneprices/scraper/internal/proxy"

	log "github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// ShopClient is the fetch side of a price lookup: it retrieves the shopping
// search page for one device and hands the HTML to the price parser.
type ShopClient interface {
	LookupPrices(ctx context.Context, device domain.Device) (*domain.PriceRange, error)
}

type shopClient struct {
	rl            ratelimit.Limiter
	config        config.ShopConfig
	baseURL       string
	httpClient    *resty.Client
	parser        *priceParser
	proxySupplier proxy.Supplier

	robotsOnce  sync.Once
	robotsGroup *robotstxt.Group
}

func NewShopClient(cfg config.ShopConfig, proxySupplier proxy.Supplier) ShopClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(2*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", cfg.Language+","+cfg.Language+"-"+strings.ToUpper(cfg.Country)+";q=0.5")

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using initial proxy: %s", proxyURL)
		}
	}

	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &shopClient{
		rl:            ratelimit.New(rps),
		config:        cfg,
		baseURL:       cfg.BaseURL,
		httpClient:    client,
		parser:        newPriceParser(cfg.CurrencySymbol),
		proxySupplier: proxySupplier,
	}
}

func (c *shopClient) LookupPrices(ctx context.Context, device domain.Device) (*domain.PriceRange, error) {
	if c.config.RespectRobots && !c.searchAllowed() {
		return nil, fmt.Errorf("robots.txt disallows %s for our user agent", c.config.SearchPath)
	}

	url := c.searchURL(device.ModelName)

	html, err := c.fetchHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search page for %q: %w", device.ModelName, err)
	}

	prices := c.parser.ExtractPrices(html)
	if c.config.OutlierDeviation > 0 {
		prices = domain.TrimOutliers(prices, c.config.OutlierDeviation)
	}

	log.Debugf("Extracted %d prices for %q", len(prices), device.ModelName)
	return &domain.PriceRange{Device: device, Prices: prices}, nil
}

// searchURL builds the shopping search request the way a browser would type
// it: spaces become '+', country and language pin the locale whose decimal
// convention the parser expects.
func (c *shopClient) searchURL(modelName string) string {
	query := strings.ReplaceAll(strings.TrimSpace(modelName), " ", "+")
	return fmt.Sprintf("%s%s?q=%s&tbm=shop&gl=%s&hl=%s",
		c.baseURL, c.config.SearchPath, query, c.config.Country, c.config.Language)
}

func (c *shopClient) fetchHTML(ctx context.Context, url string) (string, error) {
	c.rl.Take()

	reqCtx, cancel := context.WithTimeout(ctx, time.Duration(c.config.Timeout)*time.Second)
	defer cancel()

	resp, err := c.httpClient.R().
		SetContext(reqCtx).
		Get(url)

	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	html := resp.String()
	if isBlockPage(html) {
		log.Warnf("🚫 Search blocked the request for URL: %s", url)

		if c.proxySupplier != nil {
			if newProxy := c.proxySupplier.Get(); newProxy != "" {
				log.Infof("🔄 Switching to proxy %s and retrying", newProxy)
				c.httpClient.SetProxy(newProxy)

				retryResp, retryErr := c.httpClient.R().
					SetContext(reqCtx).
					Get(url)

				if retryErr == nil && !retryResp.IsError() {
					retryHTML := retryResp.String()
					if !isBlockPage(retryHTML) {
						return retryHTML, nil
					}
				}
			}
		}

		return "", fmt.Errorf("search page rejected the request as automated traffic")
	}

	return html, nil
}

// isBlockPage spots the interstitial the search engine serves instead of
// results when it suspects a bot.
func isBlockPage(html string) bool {
	return strings.Contains(html, "unusual traffic") ||
		strings.Contains(html, "ungewöhnlichen Datenverkehr")
}

// searchAllowed fetches robots.txt once and checks the search path against
// it. Unreachable or unparsable robots.txt counts as allowed, matching how
// most crawlers treat a missing file.
func (c *shopClient) searchAllowed() bool {
	c.robotsOnce.Do(func() {
		resp, err := c.httpClient.R().Get(c.baseURL + "/robots.txt")
		if err != nil || resp.IsError() {
			log.Warnf("Could not fetch robots.txt: %v", err)
			return
		}
		data, err := robotstxt.FromString(resp.String())
		if err != nil {
			log.Warnf("Could not parse robots.txt: %v", err)
			return
		}
		c.robotsGroup = data.FindGroup(c.config.UserAgent)
	})

	if c.robotsGroup == nil {
		return true
	}
	return c.robotsGroup.Test(c.config.SearchPath)
}
