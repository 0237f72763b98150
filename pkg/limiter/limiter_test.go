package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimit(t *testing.T) {
	cases := map[string]float64{
		"5-S":    5,
		"120-M":  2,
		"3600-H": 1,
		"8640-D": 0.1,
	}
	for limit, perSecond := range cases {
		rate, err := ParseLimit(limit)
		require.NoError(t, err, limit)
		assert.InDelta(t, perSecond, rate.Rate, 1e-9, limit)
	}

	for _, bad := range []string{"", "5", "x-S", "5-Y"} {
		_, err := ParseLimit(bad)
		assert.Error(t, err, bad)
	}
}

func TestCheckRateCountsOncePerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/cards", nil)

	first, err := CheckRate(c, "check-rate-test", "2-M")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Remaining)

	// 同一请求再次经过只 Peek
	again, err := CheckRate(c, "check-rate-test", "2-M")
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.Remaining)
	assert.False(t, again.Reached)
}

func TestRouteToKeyString(t *testing.T) {
	assert.Equal(t, "-v1-cards-_id", routeToKeyString("/v1/cards/:id"))
}
