package heatmap

// Quantizer maps a continuous metric value onto a small fixed set of
// intensity buckets by dividing [0, max] into equal-width sub-intervals.
type Quantizer struct {
	buckets int
	max     float64
}

// NewQuantizer builds a quantizer over [0, domainMax] with the given number
// of buckets. Out-of-domain values clamp to the nearest bucket.
func NewQuantizer(buckets int, domainMax float64) Quantizer {
	return Quantizer{buckets: buckets, max: domainMax}
}

// Bucket returns the intensity tier for v, in [0, buckets-1].
func (q Quantizer) Bucket(v float64) int {
	if v <= 0 {
		return 0
	}
	if v >= q.max {
		return q.buckets - 1
	}
	idx := int(v * float64(q.buckets) / q.max)
	if idx > q.buckets-1 {
		idx = q.buckets - 1
	}
	return idx
}

// Buckets returns the number of tiers this quantizer produces.
func (q Quantizer) Buckets() int {
	return q.buckets
}
