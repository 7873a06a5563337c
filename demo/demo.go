// Package demo is the example library the template ships with.
// Replace it with your actual implementation.
package demo

import (
	"context"
	"time"
)

// Add returns the sum of a and b.
func Add(a, b float64) float64 {
	return a + b
}

// Multiply returns the product of a and b.
func Multiply(a, b float64) float64 {
	return a * b
}

// Delay waits for the given duration or until the context is cancelled,
// returning the context's error in the latter case.
func Delay(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
