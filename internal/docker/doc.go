// Package docker implements the orchestration backend for pumpctl.
//
// Mutating lifecycle calls (up, down, restart, build, log-follow) are
// delegated to the compose tool as child processes and collapse to a
// binary success/failure based on the terminal exit status. Status
// queries go through the Docker Engine SDK instead, filtering
// containers server-side by the compose project label.
//
// The package exposes the capability surface the cli dispatcher
// depends on; it never caches unit state between calls.
package docker
