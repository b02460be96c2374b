// Package placeholder defines the declarative schema attached to every
// annotator at registration time: the closed set of parameter kinds, the
// parameter descriptors, and the annotator descriptors that group them.
//
// The package holds pure data. Dispatch over parameter kinds goes through the
// Visitor interface, which has one method per kind, so a new kind cannot be
// added without every dispatcher being updated.
package placeholder
