// Package reconcile ensures the global git identity matches the profile that
// owns a repository before a commit is recorded.
//
// Known repositories are verified and corrected; unknown repositories are
// registered interactively. Whenever the identity changes the flow reports
// ErrCommitRetryRequired so the pre-commit hook aborts and the user commits
// again under the new identity.
package reconcile
