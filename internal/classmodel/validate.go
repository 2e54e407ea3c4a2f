package classmodel

import (
	"fmt"
	"strings"

	"config-generator/internal/common"
	"config-generator/internal/diagnostic"
	"config-generator/internal/match"
)

// Diagnostic codes reported by Validate.
const (
	CodeNoRoot                   = "no_root"
	CodeMultipleRoots            = "multiple_roots"
	CodeUnknownAggregationTarget = "unknown_aggregation_target"
	CodeUnknownChildClass        = "unknown_child_class"
	CodeContainmentCycle         = "containment_cycle"
	CodeOrphanClass              = "orphan_class"
	CodeEmptyClassName           = "empty_class_name"
	CodeEmptyAttributeName       = "empty_attribute_name"
)

// Validate checks the structure of a parsed model. It never mutates the model
// and reports every finding as a diagnostic instead of failing.
func Validate(m *Model) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if m == nil {
		res.AddError("model_is_nil", "class model is nil", "", "")
		return res
	}

	names := m.Names()

	validateNames(res, m)
	validateRoots(res, m)

	for _, agg := range m.aggregations {
		if _, ok := m.Class(agg.Target); !ok {
			res.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.DiagnosticWarning,
				Code:        CodeUnknownAggregationTarget,
				Message:     fmt.Sprintf("aggregation target %q is not a class; aggregation ignored", agg.Target),
				Class:       agg.Source,
				Element:     agg.Target,
				Suggestions: match.Suggest(agg.Target, names, match.DefaultMaxSuggestions),
			})

			continue
		}

		if _, ok := m.Class(agg.Source); !ok {
			res.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.DiagnosticError,
				Code:        CodeUnknownChildClass,
				Message:     fmt.Sprintf("class %q contains unknown class %q", agg.Target, agg.Source),
				Class:       agg.Target,
				Element:     agg.Source,
				Suggestions: match.Suggest(agg.Source, names, match.DefaultMaxSuggestions),
			})
		}
	}

	if _, err := m.ContainmentOrder(); err != nil {
		res.AddError(CodeContainmentCycle, err.Error(), "", "")
	}

	if root, err := m.Root(); err == nil {
		reach := m.reachable(root.Name)

		for _, c := range m.classes {
			if _, ok := reach[c.Name]; !ok && !c.IsRoot {
				res.AddInfo(CodeOrphanClass, "class is not reachable from the root and is not rendered", c.Name, "")
			}
		}
	}

	return res
}

func validateRoots(res *diagnostic.Diagnostics, m *Model) {
	roots := m.Roots()

	switch {
	case common.IsEmpty(roots):
		res.AddError(CodeNoRoot, ErrNoRootFound.Error(), "", "")
	case common.IsMultiple(roots):
		names := make([]string, len(roots))
		for i, r := range roots {
			names[i] = r.Name
		}

		res.AddWarning(CodeMultipleRoots,
			fmt.Sprintf("%d root classes (%s); using %q", len(roots), strings.Join(names, ", "), names[0]),
			"", "")
	}
}

func validateNames(res *diagnostic.Diagnostics, m *Model) {
	for _, c := range m.classes {
		if strings.TrimSpace(c.Name) == "" {
			res.AddWarning(CodeEmptyClassName, "class has an empty name", "", "")
		}

		for i, a := range c.Attributes {
			if strings.TrimSpace(a.Name) == "" {
				res.AddWarning(CodeEmptyAttributeName,
					fmt.Sprintf("attribute #%d has an empty name", i+1), c.Name, "")
			}
		}
	}
}
