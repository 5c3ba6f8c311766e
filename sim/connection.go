// Per-connection transfer-time arithmetic: TCP slow-start, TLS handshake
// cost, and per-host throughput sharing. One Connection exists per distinct
// Record.ConnectionID for the life of a simulation.
//
// Grounded in the congestion-window bookkeeping style of TCP/QUIC sender
// implementations (setter-driven mutable state, a cwnd field capped by a
// bandwidth-delay product), generalized here to the closed-form arithmetic
// this simulator needs rather than a full ack-clocked sender.

package sim

import "math"

const (
	// InitialCongestionWindow is the slow-start starting point, in segments.
	InitialCongestionWindow = 10
	// TCPSegmentSize is the assumed MSS in bytes.
	TCPSegmentSize = 1460
)

// Connection models one reusable transport: its RTT, its current share of
// throughput, whether it is TLS, and whether a prior transfer has already
// paid its handshake cost.
type Connection struct {
	RTT                float64 // ms
	Throughput         float64 // bits/sec, current share
	ServerResponseTime float64 // ms
	SSL                bool
	Warmed             bool
	CongestionWindow   float64 // segments
}

// NewConnection creates a Connection with the initial congestion window and
// cold (unwarmed) state.
func NewConnection(rtt, throughput, serverResponseTime float64, ssl bool) *Connection {
	return &Connection{
		RTT:                rtt,
		Throughput:         throughput,
		ServerResponseTime: serverResponseTime,
		SSL:                ssl,
		CongestionWindow:   InitialCongestionWindow,
	}
}

// SetThroughput updates the connection's available throughput. Called by
// the scheduler whenever the set of in-flight connections changes.
func (c *Connection) SetThroughput(bitsPerSec float64) { c.Throughput = bitsPerSec }

// SetCongestionWindow commits a congestion window computed by a prior
// CalculateTimeToDownload call. The query itself never mutates state.
func (c *Connection) SetCongestionWindow(segments float64) { c.CongestionWindow = segments }

// SetWarmed marks the connection as having completed at least one transfer.
// Monotonic: never call with false after true.
func (c *Connection) SetWarmed(warmed bool) { c.Warmed = warmed }

// MaximumCongestionWindow is the bandwidth-delay product expressed in
// segments, recomputed from current throughput on every query.
func (c *Connection) MaximumCongestionWindow() float64 {
	return math.Floor((c.Throughput / 8) * (c.RTT / 1000) / TCPSegmentSize)
}

// MaximumSaturatedConnections returns how many connections can each send one
// segment per RTT given total throughput — the minimum per-connection
// bandwidth for TCP to make forward progress. Used to clamp configured
// concurrency at simulation start.
func MaximumSaturatedConnections(rtt, throughput float64) int {
	perConnection := (1000 / rtt) * TCPSegmentSize * 8
	return int(math.Floor(throughput / perConnection))
}

// TransferResult is the outcome of a CalculateTimeToDownload query.
type TransferResult struct {
	RoundTrips       int
	TimeElapsed      float64 // ms: residual TTFB + download-phase elapsed
	BytesDownloaded  float64 // clamped to the requested bytesToDownload
	CongestionWindow float64 // final cwnd; caller decides whether to commit it
}

// CalculateTimeToDownload computes how long it takes to transfer
// bytesToDownload more bytes on this connection, given that
// timeAlreadyElapsed ms have already been charged to this transfer's TTFB
// phase in prior partial queries, and stopping early once download-phase
// elapsed time exceeds maximumTimeToElapse minus the residual TTFB. Progress
// is in whole round trips, so the last one may carry the elapsed time past
// that deadline. Pass math.Inf(1) for maximumTimeToElapse to mean "no
// deadline."
//
// This query never mutates the connection: the caller commits the
// returned CongestionWindow explicitly via SetCongestionWindow.
func (c *Connection) CalculateTimeToDownload(bytesToDownload, timeAlreadyElapsed, maximumTimeToElapse float64) TransferResult {
	oneWay := c.RTT / 2
	twoWay := c.RTT

	var handshake float64
	if c.Warmed {
		handshake = oneWay
	} else {
		handshake = 3*oneWay + boolToRTT(c.SSL, twoWay)
	}
	ttfb := handshake + c.ServerResponseTime + oneWay
	residualTTFB := math.Max(ttfb-timeAlreadyElapsed, 0)

	cwnd := c.CongestionWindow
	maxCwnd := c.MaximumCongestionWindow()

	var bytesCredited float64
	var roundTrips int
	if residualTTFB > 0 {
		bytesCredited = cwnd * TCPSegmentSize
		roundTrips = int(math.Ceil(handshake / twoWay))
	}

	remainingDeadline := math.Inf(1)
	if !math.IsInf(maximumTimeToElapse, 1) {
		remainingDeadline = maximumTimeToElapse - residualTTFB
	}

	var downloadPhaseElapsed float64
	for bytesCredited < bytesToDownload && downloadPhaseElapsed <= remainingDeadline {
		downloadPhaseElapsed += twoWay
		cwnd = math.Max(math.Min(maxCwnd, cwnd*2), 1)
		bytesCredited += cwnd * TCPSegmentSize
		roundTrips++
	}

	return TransferResult{
		RoundTrips:       roundTrips,
		TimeElapsed:      residualTTFB + downloadPhaseElapsed,
		BytesDownloaded:  math.Min(bytesCredited, bytesToDownload),
		CongestionWindow: cwnd,
	}
}

func boolToRTT(ssl bool, twoWay float64) float64 {
	if ssl {
		return twoWay
	}
	return 0
}
