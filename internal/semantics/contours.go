package semantics

import (
	"sort"

	"gocv.io/x/gocv"
)

// contourShape summarizes one tooth contour: area, bounding-box aspect ratio
// (height over width), hull solidity, and the count of deep convexity defects.
type contourShape struct {
	area        float64
	aspect      float64
	solidity    float64
	deepDefects int
}

// toothContours measures the largest contours of the tooth mask, skipping any
// below minArea and keeping at most top of them, largest first.
func toothContours(mask gocv.Mat, p Policy) []contourShape {
	found := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer found.Close()

	shapes := make([]contourShape, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		contour := found.At(i)
		area := gocv.ContourArea(contour)
		if area < p.ContourMinArea {
			continue
		}
		shapes = append(shapes, measureContour(contour, area, p))
	}
	sort.Slice(shapes, func(i, j int) bool { return shapes[i].area > shapes[j].area })
	if len(shapes) > p.ContourTopCount {
		shapes = shapes[:p.ContourTopCount]
	}
	return shapes
}

func measureContour(contour gocv.PointVector, area float64, p Policy) contourShape {
	shape := contourShape{area: area, solidity: 1}

	rect := gocv.BoundingRect(contour)
	if rect.Dx() > 0 {
		shape.aspect = float64(rect.Dy()) / float64(rect.Dx())
	}

	hullPoints := gocv.NewMat()
	defer hullPoints.Close()
	gocv.ConvexHull(contour, &hullPoints, false, true)
	hull := gocv.NewPointVectorFromMat(hullPoints)
	defer hull.Close()
	if hullArea := gocv.ContourArea(hull); hullArea > 0 {
		shape.solidity = area / hullArea
	}

	// Convexity defects need hull indices, not points.
	hullIdx := gocv.NewMat()
	defer hullIdx.Close()
	gocv.ConvexHull(contour, &hullIdx, false, false)
	if hullIdx.Rows() > 3 {
		defects := gocv.NewMat()
		defer defects.Close()
		gocv.ConvexityDefects(contour, hullIdx, &defects)
		for r := 0; r < defects.Rows(); r++ {
			// Fourth component is fixed-point depth (depth*256).
			if float64(defects.GetVeciAt(r, 0)[3]) > p.DefectDepthMin {
				shape.deepDefects++
			}
		}
	}

	return shape
}

func meanAspect(shapes []contourShape) float64 {
	if len(shapes) == 0 {
		return 0
	}
	var sum float64
	for _, s := range shapes {
		sum += s.aspect
	}
	return sum / float64(len(shapes))
}

func meanSolidity(shapes []contourShape) float64 {
	if len(shapes) == 0 {
		return 0
	}
	var sum float64
	for _, s := range shapes {
		sum += s.solidity
	}
	return sum / float64(len(shapes))
}
