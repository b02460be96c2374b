package compiler

import (
	"fmt"
	"strings"
)

// DiagnosticKind classifies a non-fatal compilation finding.
type DiagnosticKind int

const (
	// MissingConfiguration: a config key or class reference could not be
	// resolved. The rule stays registered and fails if it is ever invoked.
	MissingConfiguration DiagnosticKind = iota + 1
	// AmbiguousOutputProducers: two rules share outputs without distinct
	// explicit orders.
	AmbiguousOutputProducers
	// UnknownCustomParameter: a custom rule binds a parameter the annotator
	// does not declare.
	UnknownCustomParameter
)

func (k DiagnosticKind) String() string {
	switch k {
	case MissingConfiguration:
		return "missing_configuration"
	case AmbiguousOutputProducers:
		return "ambiguous_output_producers"
	case UnknownCustomParameter:
		return "unknown_custom_parameter"
	}
	return fmt.Sprintf("diagnostic(%d)", int(k))
}

// Diagnostic is a non-fatal finding of a compilation pass.
type Diagnostic struct {
	Kind DiagnosticKind
	// Rules names the rules involved, one for most kinds and two for
	// ambiguities.
	Rules []string
	// Keys are the missing config keys, the shared outputs or the unknown
	// parameter, depending on Kind.
	Keys    []string
	Message string
}

func missingConfigMessage(keys []string) string {
	plural, verb := "", "s"
	if len(keys) > 1 {
		plural, verb = "s", ""
	}
	return fmt.Sprintf("The following config variable%s need%s to be set:\n- %s",
		plural, verb, strings.Join(keys, "\n- "))
}

// InvalidCustomRuleError reports a malformed custom rule declaration. It
// aborts the whole compilation pass.
type InvalidCustomRuleError struct {
	Rule   string
	Param  string
	Reason string
}

func (e *InvalidCustomRuleError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("Parameter '%s' in custom rule '%s' has no value!", e.Param, e.Rule)
	}
	return fmt.Sprintf("Invalid custom rule '%s': %s", e.Rule, e.Reason)
}
