package service

import "time"

// maxBackoffShift bounds the doubling exponent so the shift below can never
// overflow regardless of how high the attempt counter climbs.
const maxBackoffShift = 20

// backoffDuration computes the lockout window for a given consecutive-failure
// count: zero below the threshold, then base doubling with every further
// failure, capped at limit.
//
//	attempts = threshold   -> base
//	attempts = threshold+1 -> 2*base
//	attempts = threshold+n -> min(base << n, limit)
func backoffDuration(attempts, threshold int, base, limit time.Duration) time.Duration {
	if attempts < threshold {
		return 0
	}

	shift := attempts - threshold
	if shift > maxBackoffShift {
		return limit
	}

	window := base << shift
	if window > limit || window <= 0 {
		return limit
	}

	return window
}
