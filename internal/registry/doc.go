// Package registry provides the central "glue" for the module system.
//
// Modules describe their annotators declaratively: an ordered list of typed
// parameters per function, the annotation classes they provide, and the
// config keys they read. Registration happens once at startup through a
// Builder; Build freezes the result into an immutable Registry that is passed
// explicitly to the compiler. Nothing mutates a Registry after construction.
package registry
