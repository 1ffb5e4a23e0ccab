// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package ratelimit

import (
	"context"
	"strings"
	"time"

	platformconfig "github.com/betasocial/beta-api/internal/platform/config"
)

// Key purposes for the password reset flow. The per-IP ledger and the
// per-email ledger are independent keys.
const (
	purposePasswordResetIP    = "ratelimit:pwd-reset:ip"
	purposePasswordResetEmail = "ratelimit:pwd-reset:email"
)

// PasswordResetLimiter throttles password reset requests under two
// simultaneous ceilings: a coarser per-IP limit that catches one source
// hammering many accounts, and a tighter per-email limit that catches many
// sources targeting one account. Both must pass; the first failure wins.
type PasswordResetLimiter struct {
	counter     *WindowCounter
	ipMax       int
	ipWindow    time.Duration
	emailMax    int
	emailWindow time.Duration
}

// NewPasswordResetLimiter creates a limiter with the configured ceilings.
func NewPasswordResetLimiter(counter *WindowCounter, config platformconfig.RateLimitsConfig) *PasswordResetLimiter {
	return &PasswordResetLimiter{
		counter:     counter,
		ipMax:       config.PasswordResetIPMax,
		ipWindow:    config.PasswordResetIPWindow,
		emailMax:    config.PasswordResetEmailMax,
		emailWindow: config.PasswordResetEmailWindow,
	}
}

// Check applies both ceilings for one password reset attempt. A rejection
// from the IP ceiling short-circuits; the email ledger is not touched, so a
// blocked source cannot burn another account's allowance.
func (l *PasswordResetLimiter) Check(ctx context.Context, ip, email string) (*CheckResult, error) {
	result, err := l.counter.Check(ctx, purposePasswordResetIP, ip, l.ipWindow, l.ipMax)
	if err != nil {
		return nil, err
	}
	if !result.Allowed {
		return result, nil
	}

	return l.counter.Check(ctx, purposePasswordResetEmail, NormalizeEmail(email), l.emailWindow, l.emailMax)
}

// NormalizeEmail canonicalizes an email for use as a ledger key so case and
// whitespace variants share one window.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
