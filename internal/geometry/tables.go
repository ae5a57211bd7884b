package geometry

import "github.com/paulmach/orb"

// CumulativeDistances returns the arc-length of every point along line,
// starting at 0 for the first point. The result has len(line) entries.
func CumulativeDistances(line orb.LineString) []float64 {
	if len(line) == 0 {
		return nil
	}
	dists := make([]float64, len(line))
	for i := 1; i < len(line); i++ {
		dists[i] = dists[i-1] + Distance(line[i-1], line[i])
	}
	return dists
}

// Headings returns, for every point of line, the bearing towards the next
// point. The last point has no successor and reuses the previous heading.
// The result has len(line) entries.
func Headings(line orb.LineString) []float64 {
	switch len(line) {
	case 0:
		return nil
	case 1:
		return []float64{0}
	}
	headings := make([]float64, len(line))
	for i := 0; i < len(line)-1; i++ {
		headings[i] = Bearing(line[i], line[i+1])
	}
	headings[len(line)-1] = headings[len(line)-2]
	return headings
}
