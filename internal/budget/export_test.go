package budget

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelagg/internal/catalog"
	"travelagg/pkg/cache"
)

func exportable(t *testing.T) PackageCombination {
	t.Helper()
	combos := generate(t, mixedSnapshot(t), Request{Budget: catalog.Rupees(100000), NumPersons: 2, NumDays: 6}, DefaultLimits())
	c, ok := findCombination(combos, "goa-cruise", "kerala-backwaters", "munnar-tea")
	require.True(t, ok)
	return c
}

func TestGenerateItineraryPDF(t *testing.T) {
	pdf, err := GenerateItineraryPDF(ExportData{
		Combination: exportable(t),
		NumPersons:  2,
		GeneratedAt: time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Greater(t, len(pdf), 1000)
}

func TestValidateCombination(t *testing.T) {
	good := exportable(t)
	require.NoError(t, validateCombination(good))

	empty := good
	empty.Packages = nil
	assert.ErrorIs(t, validateCombination(empty), ErrInvalidRequest)

	wrongDays := good
	wrongDays.TotalDays++
	assert.ErrorIs(t, validateCombination(wrongDays), ErrInvalidRequest)

	negative := good
	negative.TotalCost = -1
	assert.ErrorIs(t, validateCombination(negative), ErrInvalidRequest)
}

func TestServiceExport(t *testing.T) {
	svc := NewService(catalog.NewStaticProvider(mixedSnapshot(t)), cache.NewMemoryCache(), 10, testLogger())

	pdf, err := svc.Export(context.Background(), exportable(t), 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = svc.Export(context.Background(), PackageCombination{}, 2)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestModeLabel(t *testing.T) {
	assert.Equal(t, "Train", modeLabel(catalog.ModeTrain))
	assert.Equal(t, "none", modeLabel(""))
}
