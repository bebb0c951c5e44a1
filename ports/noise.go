package ports

// NoiseSource produces a deterministic stream of samples in [0, 1).
// Two sources started from the same seed yield identical streams.
type NoiseSource interface {
	Next() float64
}
