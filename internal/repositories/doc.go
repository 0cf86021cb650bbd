// Package repositories records which profile owns each repository remote URL.
//
// Entries are keyed by the verbatim remote URL; the owning profile name is a
// soft reference and may point at a profile that no longer exists.
package repositories
