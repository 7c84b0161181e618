// Package doctor runs diagnostic checks over the mcplat configuration, the
// host manifests, and platform detection, and aggregates the results into a
// report.
//
// Each [Check] is independent; a [Runner] executes them in registration order.
// Unlike detection itself, a failing check never stops the run.
package doctor
