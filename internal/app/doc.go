// Package app contains the core application logic. It wires archives,
// searches, diffs, and builds together behind a small orchestration
// surface, decoupled from any specific entrypoint like a CLI.
package app
