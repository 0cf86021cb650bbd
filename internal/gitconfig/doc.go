// Package gitconfig reads and writes the global git identity settings owned by a profile.
//
// Two IdentityManager implementations exist. CommandIdentityManager shells out
// to git through execshell, FileIdentityManager edits the global config file
// directly. Both write settings in the same order and stop at the first failure.
package gitconfig
