package client

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"phoneprices/scraper/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// priceParser turns raw search result HTML into price values. The page
// structure is not a stable contract, so it matches loose text patterns
// instead of selectors: any text node carrying the currency symbol is a
// candidate price token.
type priceParser struct {
	currency string
}

// amountRegex matches the locale's price notation: dots as thousands
// separators, comma as the decimal separator ("1.199,99").
var amountRegex = regexp.MustCompile(`(\d+(?:\.\d+)*)(?:,(\d+))?`)

func newPriceParser(currency string) *priceParser {
	return &priceParser{currency: currency}
}

// ExtractPrices scans the document body for currency-bearing text nodes in
// document order. A token starting with "+" is a shipping surcharge and
// attaches to the price collected immediately before it. Tokens that fail
// numeric conversion are skipped individually; unparsable HTML yields no
// prices rather than an error.
func (p *priceParser) ExtractPrices(pageHTML string) []domain.Price {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		log.Warnf("Failed to parse search page HTML: %v", err)
		return nil
	}

	var prices []domain.Price
	for _, token := range p.currencyTokens(doc) {
		amount, err := parseAmount(token)
		if err != nil {
			log.Debugf("Skipping malformed price token %q: %v", token, err)
			continue
		}

		if strings.HasPrefix(token, "+") {
			if len(prices) == 0 {
				log.Debugf("Ignoring shipping token %q with no preceding price", token)
				continue
			}
			prices[len(prices)-1].Shipping = amount
			continue
		}

		prices = append(prices, domain.Price{Base: amount})
	}

	return prices
}

// currencyTokens walks the body's text nodes depth-first so tokens come back
// in document order, which the shipping attachment rule depends on.
func (p *priceParser) currencyTokens(doc *goquery.Document) []string {
	var tokens []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" && strings.Contains(text, p.currency) {
				tokens = append(tokens, text)
			}
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, node := range doc.Find("body").Nodes {
		walk(node)
	}

	return tokens
}

// parseAmount converts one price token to a number: thousands dots are
// stripped, the comma group becomes the fraction ("1.234,56 €" -> 1234.56).
// A token without decimals is a whole amount ("1.000 €" -> 1000).
func parseAmount(text string) (float64, error) {
	match := amountRegex.FindStringSubmatch(text)
	if match == nil {
		return 0, fmt.Errorf("no numeric value in %q", text)
	}

	integer := strings.ReplaceAll(match[1], ".", "")
	decimal := match[2]
	if decimal == "" {
		decimal = "0"
	}

	value, err := strconv.ParseFloat(integer+"."+decimal, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to convert %q: %w", text, err)
	}
	return value, nil
}
