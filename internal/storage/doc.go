// Package storage persists the gamm JSON documents on disk.
//
// Document loads and saves a single pretty-printed JSON file through a
// FileSystem abstraction, and Layout resolves where the profile and
// repository documents live.
package storage
