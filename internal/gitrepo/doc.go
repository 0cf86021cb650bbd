// Package gitrepo interprets git remote URLs.
//
// gamm keys repositories by the verbatim remote URL; this package only derives
// presentation details from it, such as the default repository name offered
// when a new repository is registered.
package gitrepo
