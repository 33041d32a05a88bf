package sales

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTotals() []DailyTotal {
	return []DailyTotal{
		{Date: "2024-05-09", Paid: 30, Unpaid: 10},
		{Date: "2024-05-10", Paid: 45},
	}
}

func TestChartRendererBar(t *testing.T) {
	html, err := NewChartRenderer().RenderDaily("Ventas", sampleTotals())
	require.NoError(t, err)
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, SeriesPaid)
	assert.Contains(t, html, SeriesUnpaid)
	assert.Contains(t, html, "2024-05-09")
}

func TestChartRendererLine(t *testing.T) {
	html, err := NewChartRenderer(WithChartType("LINE"), WithChartCache(nil)).RenderDaily("Ventas", sampleTotals())
	require.NoError(t, err)
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "line")
}

func TestChartRendererUnsupportedType(t *testing.T) {
	_, err := NewChartRenderer(WithChartType("bubble")).RenderDaily("Ventas", sampleTotals())
	assert.Error(t, err)
}

func TestChartRendererAssetsHost(t *testing.T) {
	html, err := NewChartRenderer(WithChartAssetsHost("https://cdn.example.com/echarts/")).RenderDaily("Ventas", sampleTotals())
	require.NoError(t, err)
	assert.Contains(t, html, "https://cdn.example.com/echarts/")
}

func TestChartCacheStoresEntry(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	first, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	second, err := cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, "html", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestChartCacheExpires(t *testing.T) {
	cache := NewChartCache(time.Minute)
	now := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	assert.Zero(t, cache.Purge())
	_, err = cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, cache.Purge())
}

func TestChartCacheDoesNotStoreErrors(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("render failed")
		}
		return "ok", nil
	}
	_, err := cache.GetOrRender("key", render)
	assert.Error(t, err)
	html, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	assert.Equal(t, "ok", html)
}

func TestChartCacheDisabled(t *testing.T) {
	cache := NewChartCache(0)
	calls := 0
	render := func() (string, error) {
		calls++
		return "x", nil
	}
	_, _ = cache.GetOrRender("key", render)
	_, _ = cache.GetOrRender("key", render)
	assert.Equal(t, 2, calls)
}
