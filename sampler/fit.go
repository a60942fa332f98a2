package sampler

import "math"

// Shape names a member of the closed growth family spec.md §4.10 fits
// against: c, c*n, c*n*log(n), c*n^2, c*n^3, c*2^n.
type Shape uint8

const (
	Constant Shape = iota
	Linear
	Linearithmic
	Quadratic
	Cubic
	Exponential
)

// shapesByGrowth lists every Shape in increasing growth order — the order
// FitGrowth prefers when residuals tie within tolerance.
var shapesByGrowth = []Shape{Constant, Linear, Linearithmic, Quadratic, Cubic, Exponential}

func (s Shape) String() string {
	switch s {
	case Constant:
		return "c"
	case Linear:
		return "c*n"
	case Linearithmic:
		return "c*n*log(n)"
	case Quadratic:
		return "c*n^2"
	case Cubic:
		return "c*n^3"
	case Exponential:
		return "c*2^n"
	default:
		return "unknown"
	}
}

// f evaluates the shape's unscaled growth function at n. Constant's
// f(n)=1 makes its log-space term vanish, which is exactly the point:
// log(value) = log(c) + log(f(n)) degenerates to log(value) = log(c).
func (s Shape) f(n int) float64 {
	x := float64(n)
	switch s {
	case Constant:
		return 1
	case Linear:
		return x
	case Linearithmic:
		if x <= 1 {
			return 1
		}
		return x * math.Log2(x)
	case Quadratic:
		return x * x
	case Cubic:
		return x * x * x
	case Exponential:
		return math.Exp2(x)
	default:
		return 1
	}
}

// FitResult is the outcome of fitting one per-size measurement series
// against the full shape family.
type FitResult struct {
	Best       Shape
	Constant   float64
	Confidence float64
	Residuals  map[Shape]float64
}

// FitGrowth fits (sizes[i], values[i]) pairs — one aggregate value per
// schedule point, e.g. the mean step count at that input size — against
// every Shape by ordinary least squares in log space, then picks the
// lowest-growth shape whose residual sits within cfg.Tolerance of the
// best (lowest) residual observed across the whole family.
//
// Per shape, the fit reduces to a single scalar: taking logs turns
// value = c*f(n) into log(value) = log(c) + log(f(n)), a constant
// offset from log(f(n)), whose least-squares solution is the mean of
// (log(value) - log(f(n))) over the series. Non-positive values are
// skipped for every shape, since their log is undefined; sizes are used
// as given, and every shape's f is positive for n>=1.
func FitGrowth(sizes []int, values []float64, cfg Config) FitResult {
	residuals := make(map[Shape]float64, len(shapesByGrowth))
	logC := make(map[Shape]float64, len(shapesByGrowth))

	for _, shape := range shapesByGrowth {
		var logF, diffSum []float64
		for i, n := range sizes {
			v := values[i]
			if v <= 0 {
				continue
			}
			logF = append(logF, math.Log(shape.f(n)))
			diffSum = append(diffSum, math.Log(v))
		}
		if len(logF) == 0 {
			residuals[shape] = math.Inf(1)
			continue
		}
		var offsetSum float64
		for i := range logF {
			offsetSum += diffSum[i] - logF[i]
		}
		c := offsetSum / float64(len(logF))
		logC[shape] = c

		var resid float64
		for i := range logF {
			d := diffSum[i] - logF[i] - c
			resid += d * d
		}
		residuals[shape] = resid
	}

	best := shapesByGrowth[0]
	for _, shape := range shapesByGrowth {
		if residuals[shape] < residuals[best] {
			best = shape
		}
	}
	bestResidual := residuals[best]

	chosen := best
	for _, shape := range shapesByGrowth {
		if residuals[shape] <= bestResidual+cfg.Tolerance {
			chosen = shape
			break
		}
	}

	confidence := confidenceScore(residuals, best)

	return FitResult{
		Best:       chosen,
		Constant:   math.Exp(logC[chosen]),
		Confidence: confidence,
		Residuals:  residuals,
	}
}

// confidenceScore measures how decisively best beat the runner-up: how
// much smaller best's residual is relative to the second-best residual,
// clamped to [0,1]. A best residual far smaller than the runner-up's
// gives confidence near 1; a near-tie gives confidence near 0. When best
// is a perfect fit (residual 0) confidence is 1 outright.
func confidenceScore(residuals map[Shape]float64, best Shape) float64 {
	bestResidual := residuals[best]
	secondBest := math.Inf(1)
	for shape, r := range residuals {
		if shape == best {
			continue
		}
		if r < secondBest {
			secondBest = r
		}
	}
	if math.IsInf(secondBest, 1) {
		return 1
	}
	if bestResidual == 0 {
		return 1
	}
	conf := 1 - bestResidual/secondBest
	if conf < 0 {
		return 0
	}
	if conf > 1 {
		return 1
	}
	return conf
}
