package frames

import "gocv.io/x/gocv"

// Quality scores frame sharpness in [0,1] from Laplacian variance. Empirical
// scaling: variance under ~100 reads as blurry, over ~500 as sharp.
func Quality(frame gocv.Mat) float64 {
	if frame.Empty() {
		return 0
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() == 3 {
		gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)

	data, err := lap.DataPtrFloat64()
	if err != nil || len(data) == 0 {
		return 0
	}

	var sum, sumSq float64
	for _, v := range data {
		sum += v
		sumSq += v * v
	}
	n := float64(len(data))
	mean := sum / n
	variance := sumSq/n - mean*mean

	quality := variance / 500.0
	if quality > 1 {
		quality = 1
	}
	if quality < 0 {
		quality = 0
	}
	return quality
}
