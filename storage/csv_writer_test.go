package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopquery/models"
)

func TestCSVWriterWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "raw_listings.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	records := []models.ListingRecord{
		{Site: "Amazon", Title: "Laptop A", Price: "$499", Timestamp: "2026-08-30 10:00:00"},
		{Site: "Flipkart", Title: "Laptop B", Price: "₹39,999", Timestamp: "2026-08-30 10:00:01"},
	}
	require.NoError(t, w.Write("Find me laptops", records))
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"query", "site", "title", "price", "captured_at"}, rows[0])
	assert.Equal(t, "Amazon", rows[1][1])
	assert.Equal(t, "₹39,999", rows[2][3])
	assert.Equal(t, "Find me laptops", rows[1][0])
}
