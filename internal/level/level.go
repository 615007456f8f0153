// Package level estimates block loudness as dBFS from raw mono samples.
package level

import "math"

// RMS returns the root-mean-square amplitude of a block of mono samples.
// An empty block has an RMS of zero.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	sumSq := 0.0
	for _, s := range samples {
		v := float64(s)
		sumSq += v * v
	}
	return math.Sqrt(sumSq / float64(len(samples)))
}

// RMSToDBFS converts an RMS amplitude to decibels relative to full scale
// (reference amplitude 1.0). Zero or negative input means silence and maps
// to negative infinity, which sits at or below every threshold.
func RMSToDBFS(rms float64) float64 {
	if rms <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms)
}

// BlockDBFS is a convenience combining RMS and RMSToDBFS for one block.
func BlockDBFS(samples []float32) float64 {
	return RMSToDBFS(RMS(samples))
}
