package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SectorScope/internal/domain/models"
	"SectorScope/pkg/logger"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-agent", 2*time.Second, logger.Nop()).(*Client)
}

func TestClosesFromEndpointParsesPayload(t *testing.T) {
	day1 := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/XOM", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		// Day 2 close is null, as Yahoo reports for halted days.
		fmt.Fprintf(w, `{"chart":{"result":[{"timestamp":[%d,%d,%d],
			"indicators":{"quote":[{"close":[101.5,null,103.25]}]}}]}}`,
			day1.Unix(), day2.Unix(), day3.Unix())
	})

	series, err := c.closesFromEndpoint(context.Background(), "XOM", day1, day3)
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())
	assert.Equal(t, 101.5, series.Points[0].Close)
	assert.Equal(t, 103.25, series.Points[1].Close)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), series.Points[0].Date)
}

func TestClosesFromEndpointProviderError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	})

	_, err := c.closesFromEndpoint(context.Background(), "NOPE", time.Now().AddDate(0, -1, 0), time.Now())
	assert.True(t, errors.Is(err, models.ErrDataUnavailable))
}

func TestClosesFromEndpointEmptyResult(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[]}}`)
	})

	_, err := c.closesFromEndpoint(context.Background(), "XOM", time.Now().AddDate(0, -1, 0), time.Now())
	assert.True(t, errors.Is(err, models.ErrDataUnavailable))
}

func TestClosesFromEndpointHTTPError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	_, err := c.closesFromEndpoint(context.Background(), "XOM", time.Now().AddDate(0, -1, 0), time.Now())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, models.ErrDataUnavailable))
}
