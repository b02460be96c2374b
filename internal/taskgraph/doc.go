// Package taskgraph links compiled rules into a dependency graph by matching
// the inputs of each rule against the outputs of the others.
//
// The graph is informational: scheduling belongs to the external executor.
// It backs the graph listing of the CLI and lets callers check that a target
// set has no circular dependencies before handing it off.
package taskgraph
