// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Solar sky model, TOML catalogs, ffmpeg movies, terminal player
// 0.2.0 - Parallel frame sequencer, render metrics, environment overrides
// 0.1.0 - Initial release: spectral colours, magnitude scaling, PNG stills
