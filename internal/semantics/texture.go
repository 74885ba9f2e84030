package semantics

import "gocv.io/x/gocv"

// maskedTextureVariance returns the variance of the Laplacian response over
// pixels selected by mask. High variance means pitted, fissured surface.
func maskedTextureVariance(gray, mask gocv.Mat) float64 {
	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)

	lapData, err := lap.DataPtrFloat64()
	if err != nil {
		return 0
	}
	maskData, err := mask.DataPtrUint8()
	if err != nil || len(maskData) != len(lapData) {
		return 0
	}

	var sum, count float64
	for i, v := range lapData {
		if maskData[i] != 0 {
			sum += v
			count++
		}
	}
	if count < 2 {
		return 0
	}
	mean := sum / count

	var varsum float64
	for i, v := range lapData {
		if maskData[i] != 0 {
			d := v - mean
			varsum += d * d
		}
	}
	return varsum / count
}

// columnProjection counts nonzero mask pixels per column.
func columnProjection(mask gocv.Mat) []float64 {
	data, err := mask.DataPtrUint8()
	if err != nil {
		return nil
	}
	cols := mask.Cols()
	proj := make([]float64, cols)
	for i, v := range data {
		if v != 0 {
			proj[i%cols]++
		}
	}
	return proj
}

// countValleys smooths the projection with a moving average and counts local
// minima that dip below depthRatio of the projection's maximum. Valleys in the
// tooth profile are the gaps between adjacent teeth.
func countValleys(proj []float64, depthRatio float64) int {
	if len(proj) < 3 {
		return 0
	}
	window := len(proj) / 50
	if window < 5 {
		window = 5
	}
	if window%2 == 0 {
		window++
	}
	smoothed := movingAverage(proj, window)

	var max float64
	for _, v := range smoothed {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return 0
	}
	threshold := max * depthRatio

	valleys := 0
	for i := 1; i < len(smoothed)-1; i++ {
		if smoothed[i] < threshold && smoothed[i] <= smoothed[i-1] && smoothed[i] < smoothed[i+1] {
			valleys++
		}
	}
	return valleys
}

func movingAverage(values []float64, window int) []float64 {
	half := window / 2
	out := make([]float64, len(values))
	for i := range values {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(values) {
			hi = len(values)
		}
		var sum float64
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}
