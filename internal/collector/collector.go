package collector

import (
	"fmt"
	"time"

	"trendwatch/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Points []model.PricePoint
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchIntraday(_ string, days int) ([]model.PricePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Points != nil {
		return m.Points, nil
	}
	return generateMockPoints(100, days*78), nil
}

func (m *MockFetcher) FetchDaily(_ string, days int) ([]model.PricePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Points != nil {
		return m.Points, nil
	}
	return generateMockPoints(100, days), nil
}

func generateMockPoints(basePrice float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Time:  time.Now().Add(-time.Duration(count-i) * 5 * time.Minute),
			Price: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return points
}

// Collector fetches and validates price series for a single symbol.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol}
}

// CollectIntraday fetches the recent 5-minute closing series. Any fetch
// failure or unusable payload surfaces as ErrDataUnavailable.
func (c *Collector) CollectIntraday(lookbackDays int) (*model.PriceSeries, error) {
	points, err := c.Fetcher.FetchIntraday(c.Symbol, lookbackDays)
	return c.build(points, err)
}

// CollectDaily fetches the daily closing series for backtesting.
func (c *Collector) CollectDaily(lookbackDays int) (*model.PriceSeries, error) {
	points, err := c.Fetcher.FetchDaily(c.Symbol, lookbackDays)
	return c.build(points, err)
}

func (c *Collector) build(points []model.PricePoint, err error) (*model.PriceSeries, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s via %s: %v", model.ErrDataUnavailable, c.Symbol, c.Fetcher.Name(), err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points for %s", model.ErrDataUnavailable, c.Symbol)
	}
	series := &model.PriceSeries{Symbol: c.Symbol, Points: points, FetchedAt: time.Now()}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrDataUnavailable, c.Symbol, err)
	}
	return series, nil
}
