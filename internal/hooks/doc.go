// Package hooks installs and removes the gamm block in a shared pre-commit hook.
//
// The block is delimited by marker comments so that it can coexist with other
// hook content and be removed without disturbing it.
package hooks
