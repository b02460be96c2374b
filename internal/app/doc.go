// Package app contains the core application logic. It wires the module
// registry, the corpus configuration and the compiler together and runs the
// commands of the CLI, decoupled from any specific entrypoint.
package app
