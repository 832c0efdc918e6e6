package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"phoneprices/scraper/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	results := []domain.PriceRange{
		{
			Device: domain.Device{ModelName: "PhoneA"},
			Prices: []domain.Price{{Base: 199.00}, {Base: 249.99}, {Base: 199.00}},
		},
		{
			Device: domain.Device{ModelName: "PhoneB"},
		},
		{
			Device:      domain.Device{ModelName: "PhoneC"},
			FetchFailed: true,
		},
		{
			Device: domain.Device{ModelName: "PhoneD"},
			Prices: []domain.Price{{Base: 50.00}},
		},
	}

	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, WriteFile(path, results))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Equal(t, [][]string{
		{"phone", "min_price", "max_price"},
		{"PhoneA", "199.00", "249.99"},
		{"PhoneB", "", ""},
		{"PhoneC", "", ""},
		{"PhoneD", "50.00", "50.00"},
	}, rows)
}

func TestWriteFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "prices.csv")
	require.NoError(t, WriteFile(path, nil))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestWriteFileUnwritablePath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing\x00dir", "prices.csv"), nil)
	require.Error(t, err)
}
