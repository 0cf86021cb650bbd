// Package profiles stores named git identity profiles in a JSON document keyed by profile name.
package profiles
