package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTimeToDownload_ZeroBytes_ColdSSL(t *testing.T) {
	c := NewConnection(100, 1_638_400, 0, true)
	result := c.CalculateTimeToDownload(0, 0, math.Inf(1))

	// handshake = 3*(rtt/2) + rtt (ssl) = 150 + 100 = 250
	// ttfb = handshake + responseTime + rtt/2 = 250 + 0 + 50 = 300
	assert.Equal(t, 300.0, result.TimeElapsed)
	assert.Equal(t, 0.0, result.BytesDownloaded)
	assert.Equal(t, 3, result.RoundTrips)
}

func TestCalculateTimeToDownload_ExactlyOneInitialWindow_NoExtraRTT(t *testing.T) {
	c := NewConnection(100, 1_638_400, 0, true)
	result := c.CalculateTimeToDownload(InitialCongestionWindow*TCPSegmentSize, 0, math.Inf(1))

	assert.Equal(t, 300.0, result.TimeElapsed)
	assert.Equal(t, float64(InitialCongestionWindow*TCPSegmentSize), result.BytesDownloaded)
	assert.Equal(t, 3, result.RoundTrips)
	assert.Equal(t, float64(InitialCongestionWindow), result.CongestionWindow)
}

func TestCalculateTimeToDownload_OneByteOverInitialWindow_TakesExtraRTT(t *testing.T) {
	c := NewConnection(100, 1_638_400, 0, true)
	result := c.CalculateTimeToDownload(InitialCongestionWindow*TCPSegmentSize+1, 0, math.Inf(1))

	assert.Equal(t, 400.0, result.TimeElapsed) // one extra RTT of 100ms
	assert.Equal(t, 4, result.RoundTrips)
	assert.True(t, result.CongestionWindow > InitialCongestionWindow)
}

func TestCalculateTimeToDownload_Warmed_SkipsHandshake(t *testing.T) {
	cold := NewConnection(100, 1_638_400, 0, true)
	coldResult := cold.CalculateTimeToDownload(1, 0, math.Inf(1))

	warm := NewConnection(100, 1_638_400, 0, true)
	warm.SetWarmed(true)
	warmResult := warm.CalculateTimeToDownload(1, 0, math.Inf(1))

	assert.Less(t, warmResult.TimeElapsed, coldResult.TimeElapsed)
	// warmed TTFB = oneWay + responseTime + oneWay = 50 + 0 + 50 = 100
	assert.Equal(t, 100.0, warmResult.TimeElapsed)
}

func TestCalculateTimeToDownload_NoSSL_SkipsTLSRoundTrip(t *testing.T) {
	ssl := NewConnection(100, 1_638_400, 0, true)
	plain := NewConnection(100, 1_638_400, 0, false)

	sslResult := ssl.CalculateTimeToDownload(1, 0, math.Inf(1))
	plainResult := plain.CalculateTimeToDownload(1, 0, math.Inf(1))

	assert.Equal(t, sslResult.TimeElapsed-100, plainResult.TimeElapsed)
}

func TestCalculateTimeToDownload_WarmedNoSSL_100000Bytes(t *testing.T) {
	c := NewConnection(100, 1_638_400, 0, false)
	c.SetWarmed(true)
	result := c.CalculateTimeToDownload(100000, 0, math.Inf(1))

	// handshake = oneWay = 50, ttfb = 50+0+50 = 100; cwnd caps at 14 (BDP),
	// doubling 10->14(capped)->14->14->14->14 crosses 100000 bytes on the
	// 6th round trip, at downloadPhaseElapsed = 500ms.
	assert.Equal(t, 100000.0, result.BytesDownloaded)
	assert.Equal(t, 6, result.RoundTrips)
	assert.Equal(t, 600.0, result.TimeElapsed)
	assert.Equal(t, 14.0, result.CongestionWindow)
}

func TestCalculateTimeToDownload_QueryDoesNotMutateConnection(t *testing.T) {
	c := NewConnection(100, 1_638_400, 0, true)
	before := c.CongestionWindow
	c.CalculateTimeToDownload(1_000_000, 0, math.Inf(1))
	assert.Equal(t, before, c.CongestionWindow)
	assert.False(t, c.Warmed)
}

func TestCalculateTimeToDownload_Deadline_StopsPartway(t *testing.T) {
	c := NewConnection(100, 1_638_400, 0, true)
	full := c.CalculateTimeToDownload(1_000_000, 0, math.Inf(1))
	partial := c.CalculateTimeToDownload(1_000_000, 0, full.TimeElapsed/2)

	assert.Less(t, partial.BytesDownloaded, full.BytesDownloaded)
	assert.LessOrEqual(t, partial.TimeElapsed, full.TimeElapsed)
}

func TestCalculateTimeToDownload_ContinuationQuery_NoResidualTTFB(t *testing.T) {
	c := NewConnection(100, 1_638_400, 0, true)
	// timeAlreadyElapsed == ttfb (300), so residual TTFB is zero: no free
	// initial-window credit, and the round-trip counter resets to zero for
	// this call, per spec.md §4.1's "continuing a prior partial transfer".
	continuation := c.CalculateTimeToDownload(1_000_000, 300, math.Inf(1))

	assert.Equal(t, 0.0, continuation.TimeElapsed-float64(continuation.RoundTrips)*100)
	assert.Greater(t, continuation.RoundTrips, 0)
	assert.Greater(t, continuation.BytesDownloaded, 0.0)
}

func TestMaximumCongestionWindow_IsBandwidthDelayProduct(t *testing.T) {
	c := NewConnection(100, 1_638_400, 0, false)
	// floor((1638400/8) * (100/1000) / 1460) = floor(204800*0.1/1460) = floor(14.027) = 14
	assert.Equal(t, 14.0, c.MaximumCongestionWindow())
}

func TestMaximumSaturatedConnections(t *testing.T) {
	// floor(1638400 / (((1000/100)*1460)*8)) = floor(1638400 / 116800) = 14
	assert.Equal(t, 14, MaximumSaturatedConnections(100, 1_638_400))
}

func TestCalculateTimeToDownload_DoublingThroughput_NeverIncreasesTime(t *testing.T) {
	slow := NewConnection(100, 800_000, 0, true)
	fast := NewConnection(100, 1_600_000, 0, true)

	slowResult := slow.CalculateTimeToDownload(5_000_000, 0, math.Inf(1))
	fastResult := fast.CalculateTimeToDownload(5_000_000, 0, math.Inf(1))

	assert.LessOrEqual(t, fastResult.TimeElapsed, slowResult.TimeElapsed)
}
