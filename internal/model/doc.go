// Package model defines the domain types shared across the pumpctl CLI:
// the decoded lifecycle Action, the observed state of a managed unit,
// process exit codes, and the CLIError type that carries an exit code
// from the point of failure to the process boundary.
//
// The controller deliberately owns no persistent state. Everything in
// this package is a transient, in-memory value with the lifetime of a
// single invocation; unit state is observed through the orchestration
// backend and never cached across calls.
package model
