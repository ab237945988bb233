package indicators

import "fmt"

// ADX returns the Average Directional Index, a 0-100 measure of trend
// strength. Uses Wilder smoothing for the directional movement and true
// range accumulators, then averages the last period DX values. Needs
// 2*period candles.
func ADX(highs, lows, closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	need := 2 * period
	if len(closes) < need {
		return 0, insufficient(need, len(closes))
	}
	if len(highs) != len(closes) || len(lows) != len(closes) {
		return 0, fmt.Errorf("mismatched series lengths: %d/%d/%d", len(highs), len(lows), len(closes))
	}

	n := len(closes)
	plusDM := make([]float64, 0, n-1)
	minusDM := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		if up > down && up > 0 {
			plusDM = append(plusDM, up)
		} else {
			plusDM = append(plusDM, 0)
		}
		if down > up && down > 0 {
			minusDM = append(minusDM, down)
		} else {
			minusDM = append(minusDM, 0)
		}
	}
	trs := trueRanges(highs, lows, closes)

	// Wilder smoothing: seed with the sum of the first period values.
	smTR := 0.0
	smPlus := 0.0
	smMinus := 0.0
	for i := 0; i < period; i++ {
		smTR += trs[i]
		smPlus += plusDM[i]
		smMinus += minusDM[i]
	}

	dxs := make([]float64, 0, len(trs)-period+1)
	appendDX := func() {
		if smTR == 0 {
			dxs = append(dxs, 0)
			return
		}
		plusDI := 100 * smPlus / smTR
		minusDI := 100 * smMinus / smTR
		sum := plusDI + minusDI
		if sum == 0 {
			dxs = append(dxs, 0)
			return
		}
		dxs = append(dxs, 100*abs(plusDI-minusDI)/sum)
	}
	appendDX()

	for i := period; i < len(trs); i++ {
		smTR = smTR - smTR/float64(period) + trs[i]
		smPlus = smPlus - smPlus/float64(period) + plusDM[i]
		smMinus = smMinus - smMinus/float64(period) + minusDM[i]
		appendDX()
	}

	if len(dxs) < period {
		return 0, insufficient(need, len(closes))
	}
	return mean(dxs[len(dxs)-period:]), nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
