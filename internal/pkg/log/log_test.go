package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", getRequestID(ctx))

	assert.Equal(t, "", getRequestID(context.Background()))
}

func TestFormatLog(t *testing.T) {
	assert.Equal(t,
		"[INFO] [req_id=req-123] toggled like on abc",
		formatLog("INFO", "req-123", "toggled like on %s", "abc"))

	assert.Equal(t,
		"[WARN] ledger unavailable",
		formatLog("WARN", "", "ledger unavailable"))
}
