package devices

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"phoneprices/scraper/internal/domain"

	log "github.com/sirupsen/logrus"
)

// column count of the ARCore device list export
const columns = 11

// ReadFile loads the device list CSV. The first row is a header and is
// skipped. Rows with fewer columns than expected or without a model name are
// logged and dropped instead of failing the whole list.
func ReadFile(path string) ([]domain.Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open device list: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read device list: %w", err)
	}

	list := make([]domain.Device, 0, len(records))
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) < columns {
			log.Warnf("Skipping malformed device row %d: expected %d columns, got %d", i+1, columns, len(rec))
			continue
		}

		device := domain.Device{
			Manufacturer:    strings.TrimSpace(rec[0]),
			ModelName:       strings.TrimSpace(rec[1]),
			ModelCode:       strings.TrimSpace(rec[2]),
			RAM:             strings.TrimSpace(rec[3]),
			FormFactor:      strings.TrimSpace(rec[4]),
			SoC:             strings.TrimSpace(rec[5]),
			ScreenSizes:     strings.TrimSpace(rec[6]),
			ScreenDensities: strings.TrimSpace(rec[7]),
			ABIs:            strings.TrimSpace(rec[8]),
			SDKVersions:     strings.TrimSpace(rec[9]),
			OpenGLVersions:  strings.TrimSpace(rec[10]),
		}

		if device.ModelName == "" {
			log.Warnf("Skipping device row %d without a model name", i+1)
			continue
		}

		list = append(list, device)
	}

	return list, nil
}
