package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"phoneprices/scraper/internal/domain"

	log "github.com/sirupsen/logrus"
)

// WriteFile writes one row per result, in result order, with a point as the
// decimal separator. Rows without prices (none found, or fetch failed) keep
// empty min/max cells.
func WriteFile(path string, results []domain.PriceRange) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{"phone", "min_price", "max_price"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write(row(result)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", result.Device.ModelName, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}

	log.Infof("Wrote %d price rows to %s", len(results), path)
	return nil
}

func row(result domain.PriceRange) []string {
	var minCell, maxCell string
	if v, ok := result.Min(); ok {
		minCell = strconv.FormatFloat(v, 'f', 2, 64)
	}
	if v, ok := result.Max(); ok {
		maxCell = strconv.FormatFloat(v, 'f', 2, 64)
	}
	return []string{result.Device.ModelName, minCell, maxCell}
}
