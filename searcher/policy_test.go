package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics with zero parent playouts", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(CSquared, 0)
		}, "Should panic when the parent has no playouts")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		policy := newUCT(CSquared, 100)
		got := policy.evaluate(5.0, 10)

		expected := 5.0/10 + math.Sqrt(2)*math.Sqrt(math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute w/n + C*sqrt(ln(N)/n) with C = sqrt(2)")
	})

	t.Run("single parent playout has no exploration bonus", func(t *testing.T) {
		policy := newUCT(CSquared, 1)

		require.InDelta(t, 0.5, policy.evaluate(0.5, 1), 1e-12, "ln(1) should cancel the exploration term")
	})

	t.Run("panics with zero child playouts", func(t *testing.T) {
		policy := newUCT(CSquared, 100)

		require.Panics(t, func() {
			policy.evaluate(5.0, 0)
		}, "Should panic when the child has no playouts")
	})

	t.Run("exploration term increases with parent playouts", func(t *testing.T) {
		policy1 := newUCT(CSquared, 100)
		policy2 := newUCT(CSquared, 1000)

		require.Greater(t, policy2.evaluate(5, 10), policy1.evaluate(5, 10),
			"More parent playouts should increase exploration term")
	})

	t.Run("exploration term decreases with child playouts", func(t *testing.T) {
		policy := newUCT(CSquared, 100)

		require.Greater(t, policy.evaluate(5, 10), policy.evaluate(5, 20),
			"More child playouts should decrease exploration term")
	})

	t.Run("exploitation term increases with wins", func(t *testing.T) {
		policy := newUCT(CSquared, 100)

		require.Greater(t, policy.evaluate(10, 10), policy.evaluate(5, 10),
			"More wins should increase exploitation term")
	})
}
