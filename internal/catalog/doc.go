// Package catalog lists and edits the registered repositories and profiles.
package catalog
