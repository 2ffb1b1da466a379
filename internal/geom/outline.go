package geom

import "math"

// cornerSegments is the number of line segments approximating each corner arc.
const cornerSegments = 6

// CardRadius is the corner radius used for note cards: at most limit and
// never more than a quarter of the card height.
func CardRadius(r Rect, limit float64) float64 {
	q := math.Floor(r.Height() / 4)
	if q < limit {
		return math.Max(0, q)
	}
	return limit
}

// RoundedRectOutline returns a closed, clockwise polygon tracing r with
// rounded corners. radius is clamped to [0, min(w, h)/2]. The first point is
// the right end of the top edge and the last its left end; the path closes
// implicitly. Degenerate rects yield coincident points.
func RoundedRectOutline(r Rect, radius float64) []Point {
	rad := math.Max(0, math.Min(radius, math.Min(r.Width(), r.Height())/2))

	pts := make([]Point, 0, 4*(cornerSegments+1))
	// Corner centers in clockwise order starting from top-right, each with
	// the angle its arc starts at.
	corners := [4]struct {
		cx, cy, start float64
	}{
		{r.X2 - rad, r.Y1 + rad, -math.Pi / 2},
		{r.X2 - rad, r.Y2 - rad, 0},
		{r.X1 + rad, r.Y2 - rad, math.Pi / 2},
		{r.X1 + rad, r.Y1 + rad, math.Pi},
	}
	for _, c := range corners {
		for i := 0; i <= cornerSegments; i++ {
			a := c.start + float64(i)*(math.Pi/2)/cornerSegments
			pts = append(pts, Point{
				X: c.cx + rad*math.Cos(a),
				Y: c.cy + rad*math.Sin(a),
			})
		}
	}
	return pts
}
