// Package hostcheck verifies that the orchestration backend is present
// on the host before any lifecycle action runs: the docker CLI must be
// resolvable on PATH, and the compose tool must be available either as
// the "docker compose" plugin or as a standalone docker-compose binary.
//
// The check is a gate, not a health check: it proves the executables
// resolve, nothing more. Daemon reachability surfaces later through the
// delegated call itself.
package hostcheck
