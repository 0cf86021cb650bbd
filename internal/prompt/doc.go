// Package prompt collects interactive answers from the user.
//
// InputProvider is the seam the reconciliation and catalog services depend on;
// IOInputProvider implements it over any reader/writer pair and OpenTerminal
// binds it to the controlling terminal when standard input is not one, which
// is the case for git hooks.
package prompt
