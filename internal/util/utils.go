package util

import "probsched/internal/responses"

// Averages are the mean per-process timings of one run.
type Averages struct {
	Waiting    float64
	Response   float64
	Turnaround float64
}

// CalculateAverages averages the per-process timings. An empty slice
// yields zeros rather than NaN.
func CalculateAverages(details []responses.ProcessResponse) Averages {
	var sum Averages
	for _, d := range details {
		sum.Waiting += d.WaitingTime
		sum.Response += d.ResponseTime
		sum.Turnaround += d.TurnAroundTime
	}
	n := len(details)
	return Averages{
		Waiting:    Divide(sum.Waiting, n),
		Response:   Divide(sum.Response, n),
		Turnaround: Divide(sum.Turnaround, n),
	}
}

// Divide returns sum/n, or 0 when n is not positive.
func Divide(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return sum / float64(n)
}
