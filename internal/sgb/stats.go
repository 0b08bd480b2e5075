package sgb

import "math"

// Tally is a running mean/variance (Welford). Tallies from independent
// workers merge without caring about order.
type Tally struct {
	N    int
	mean float64
	m2   float64
	Min  float64
	Max  float64
}

func (t *Tally) Add(x float64) {
	if t.N == 0 || x < t.Min {
		t.Min = x
	}
	if t.N == 0 || x > t.Max {
		t.Max = x
	}
	t.N++
	d := x - t.mean
	t.mean += d / float64(t.N)
	t.m2 += d * (x - t.mean)
}

func (t *Tally) Merge(o Tally) {
	if o.N == 0 {
		return
	}
	if t.N == 0 {
		*t = o
		return
	}
	n := t.N + o.N
	d := o.mean - t.mean
	t.mean += d * float64(o.N) / float64(n)
	t.m2 += o.m2 + d*d*float64(t.N)*float64(o.N)/float64(n)
	t.Min = math.Min(t.Min, o.Min)
	t.Max = math.Max(t.Max, o.Max)
	t.N = n
}

func (t *Tally) Mean() float64 { return t.mean }

func (t *Tally) Variance() float64 {
	if t.N < 2 {
		return 0
	}
	return t.m2 / float64(t.N-1)
}

func (t *Tally) StdErr() float64 {
	if t.N == 0 {
		return 0
	}
	return math.Sqrt(t.Variance() / float64(t.N))
}
