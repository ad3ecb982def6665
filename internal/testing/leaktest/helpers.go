// Package leaktest holds goroutine leak assertions for tests that start
// background loops (scheduler, pool fan-out).
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// settleTimeout bounds how long Check waits for goroutines to exit.
const settleTimeout = 2 * time.Second

// GoroutineChecker records a goroutine baseline and later asserts the count returned to it.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker creates a new checker and records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check polls until the goroutine count is within tolerance of the baseline,
// failing the test if it has not settled by settleTimeout.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	if leaked := settle(g.before+tolerance, settleTimeout) - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, leaked=%d (tolerance=%d)",
			g.before, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and asserts it left no goroutines behind.
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// settle waits for the goroutine count to drop to target and returns the last observed count.
func settle(target int, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target || time.Now().After(deadline) {
			return n
		}
		time.Sleep(10 * time.Millisecond)
	}
}
