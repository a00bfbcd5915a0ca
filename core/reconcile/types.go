package reconcile

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Policy selects how the incoming document is applied to the current one.
type Policy string

const (
	// DefaultSync makes the key set match the incoming document at every level,
	// with incoming values winning.
	DefaultSync Policy = "default-sync"
	// ForceUpdate overwrites values of keys present in both documents and
	// otherwise leaves the current key set untouched.
	ForceUpdate Policy = "force-update"
	// FullReplace discards the current document in favour of the incoming one.
	FullReplace Policy = "full-replace"
)

// String returns the string representation of a policy.
func (p Policy) String() string {
	return string(p)
}

// Valid reports whether p is one of the known policies.
func (p Policy) Valid() bool {
	switch p {
	case DefaultSync, ForceUpdate, FullReplace:
		return true
	default:
		return false
	}
}

// ResolvePolicy maps the two command line switches onto a policy.
// replace dominates force.
func ResolvePolicy(force, replace bool) Policy {
	switch {
	case replace:
		return FullReplace
	case force:
		return ForceUpdate
	default:
		return DefaultSync
	}
}

// ParsePolicy parses a policy name, ignoring case.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown policy %q", s)
	}
	return p, nil
}

// Logger is the diagnostics sink used by the reconciler. *zap.Logger satisfies it.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
}

// ChangeType represents the kind of change applied to a key.
type ChangeType string

const (
	// ChangeAdd adds a key that was absent from the current document.
	ChangeAdd ChangeType = "add"
	// ChangeRemove removes a key that is absent from the incoming document.
	ChangeRemove ChangeType = "remove"
	// ChangeUpdate replaces the value of a key present in both documents.
	ChangeUpdate ChangeType = "update"
)

// Change represents a single difference between the current document and the merge result.
type Change struct {
	// Type specifies the change.
	Type ChangeType `json:"type"`

	// Path is the dotted key path, e.g. "database.port".
	Path string `json:"path"`

	// Reason explains the change.
	Reason string `json:"reason"`
}

// Plan contains the merge result and the changes it makes to the current document.
type Plan struct {
	// Policy is the policy the plan was built with.
	Policy Policy `json:"policy"`

	// Changes lists every added, removed and updated key.
	Changes []Change `json:"changes"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Added counts keys added to the current document.
	Added int `json:"added"`

	// Removed counts keys removed from the current document.
	Removed int `json:"removed"`

	// Updated counts keys whose value changed.
	Updated int `json:"updated"`
}

// Empty reports whether the plan changes nothing.
func (p *Plan) Empty() bool {
	return len(p.Changes) == 0
}
