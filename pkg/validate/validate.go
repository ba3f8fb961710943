// Package validate classifies submitted text as well-formed YAML.
//
// It checks syntax only: the document is parsed into a yaml.Node tree
// (scalar/sequence/mapping variants) and never decoded against a schema.
package validate

import (
	"gopkg.in/yaml.v3"

	"github.com/svcedit/svcedit/pkg/core"
)

// Checker implements core.Validator. It is stateless.
type Checker struct{}

// Check implements core.Validator.
func (Checker) Check(content string) core.ValidationResult {
	return Check(content)
}

// Check parses content as YAML and reports the result.
//
// The parser diagnostic is passed through verbatim; yaml.v3 includes the
// line (and for many errors the column) of the offending token, which the
// UI needs to point the user at the problem. Tab-indented input fails here
// like any other syntax error, it is never silently fixed.
//
// An empty document is valid YAML (it parses to null) but gets a warning
// so the caller can surface it. A document whose root is a bare scalar is
// rejected: a services file is always a mapping or a sequence.
func Check(content string) core.ValidationResult {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(content), &node); err != nil {
		return core.ValidationResult{Detail: err.Error()}
	}

	// Zero kind means no document at all (empty or comment-only input).
	if node.Kind == 0 || len(node.Content) == 0 {
		return core.ValidationResult{Valid: true, Warning: "document is empty"}
	}

	root := node.Content[0]
	if root.Kind == yaml.ScalarNode {
		if root.Tag == "!!null" {
			return core.ValidationResult{Valid: true, Warning: "document is empty"}
		}
		return core.ValidationResult{
			Detail: "top-level value must be a mapping or sequence, got a scalar",
		}
	}

	return core.ValidationResult{Valid: true}
}
