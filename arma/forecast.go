package arma

import (
	"errors"
	"fmt"
)

// Predict forecasts the next steps values beyond the end of the training
// series, on the original (undifferenced) scale.
//
// Future shocks are set to their expectation of zero, so MA terms fade out
// after q steps and pure MA forecasts revert to the constant. For d > 0 the
// differenced forecasts are re-integrated from the last observed values at
// each differencing level.
func (m *Model) Predict(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("arma: model must be fitted before prediction")
	}
	if steps < 1 {
		return nil, fmt.Errorf("arma: steps must be positive, got %d", steps)
	}

	p := m.Order.P
	q := m.Order.Q
	n := len(m.y)

	history := make([]float64, n, n+steps)
	copy(history, m.y)

	forecasts := make([]float64, 0, steps)
	for h := 0; h < steps; h++ {
		t := n + h
		pred := m.Constant
		for j := 1; j <= p; j++ {
			pred += m.ARCoeffs[j-1] * history[t-j]
		}
		for j := 1; j <= q; j++ {
			if idx := t - j; idx < n {
				pred += m.MACoeffs[j-1] * m.eps[idx]
			}
		}
		history = append(history, pred)
		forecasts = append(forecasts, pred)
	}

	// Undo differencing one level at a time, innermost first. diffTails[j]
	// holds the last observed value of the j-times-differenced series.
	for level := len(m.diffTails) - 1; level >= 0; level-- {
		running := m.diffTails[level]
		for i := range forecasts {
			running += forecasts[i]
			forecasts[i] = running
		}
	}

	return forecasts, nil
}
