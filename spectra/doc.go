// Package spectra aggregates instantaneous phase, frequency and amplitude
// estimates into Hilbert-Huang spectra and holospectra.
//
// The top-level entry point is [FrequencyStats], which builds an analytic
// signal for each IMF column and returns matched (phase, frequency,
// amplitude) arrays. Continuous estimates are binned with edges from
// [DefineHistBins] and accumulated by the spectral aggregators:
// [HilbertHuang1D] (dense 1D), [HilbertHuang] (sparse-backed 2D
// time-frequency), [Holospectrum] (sparse-backed carrier/AM second-layer
// spectrum) and [HolospectrumAM] (direct dense reference accumulator).
//
// Everything here is a pure function over [time][component] (or
// [time][component][subComponent]) float64 arrays; time is always the outer
// axis. Samples falling outside the configured bin edges are dropped, never
// clipped into the edge bins.
package spectra
