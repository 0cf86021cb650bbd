// Package cli constructs the gamm command-line interface, wiring the Cobra
// command hierarchy, the settings loader, structured logging, and the stores
// and services each subcommand operates on.
package cli
