package domain

import "math"

// Price is a single observed listing price. Shipping is zero unless the page
// carried a "+ x,xx €" token right after the base price.
type Price struct {
	Base     float64 `json:"base"`
	Shipping float64 `json:"shipping,omitempty"`
}

func (p Price) Total() float64 {
	return p.Base + p.Shipping
}

// PriceRange holds every price observed for one device during a single run.
// An empty Prices slice means the page contained no extractable price, which
// is a valid result. FetchFailed marks the distinct case where the search
// page could not be retrieved at all.
type PriceRange struct {
	Device      Device  `json:"device"`
	Prices      []Price `json:"prices"`
	FetchFailed bool    `json:"fetch_failed,omitempty"`
}

// Min returns the cheapest observed total. ok is false when no price was
// observed; Min ok implies Max ok and Max >= Min.
func (r PriceRange) Min() (float64, bool) {
	if len(r.Prices) == 0 {
		return 0, false
	}
	lo := r.Prices[0].Total()
	for _, p := range r.Prices[1:] {
		if t := p.Total(); t < lo {
			lo = t
		}
	}
	return lo, true
}

// Max returns the most expensive observed total.
func (r PriceRange) Max() (float64, bool) {
	if len(r.Prices) == 0 {
		return 0, false
	}
	hi := r.Prices[0].Total()
	for _, p := range r.Prices[1:] {
		if t := p.Total(); t > hi {
			hi = t
		}
	}
	return hi, true
}

// TrimOutliers drops prices whose distance from the mean total exceeds
// deviation times the mean. Shopping search pages mix accessory listings in
// with the actual device, and those show up as implausibly cheap entries.
// A deviation of zero or less disables trimming.
func TrimOutliers(prices []Price, deviation float64) []Price {
	if deviation <= 0 || len(prices) == 0 {
		return prices
	}

	var sum float64
	for _, p := range prices {
		sum += p.Total()
	}
	mean := sum / float64(len(prices))

	kept := make([]Price, 0, len(prices))
	for _, p := range prices {
		if math.Abs(mean-p.Total()) < deviation*mean {
			kept = append(kept, p)
		}
	}
	return kept
}
