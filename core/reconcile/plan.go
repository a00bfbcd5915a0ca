package reconcile

import (
	"fmt"
	"strconv"
	"strings"

	"config-updater/core/tree"

	"go.uber.org/zap"
)

// ReconcileWithPlan reconciles and also returns a plan describing what the merge
// changed relative to current. It does NOT persist anything.
func (r *Reconciler) ReconcileWithPlan(current, incoming *tree.Mapping, policy Policy) (*tree.Mapping, *Plan) {
	merged := r.Reconcile(current, incoming, policy)

	changes := Diff(current, merged)
	plan := &Plan{
		Policy:  policy,
		Changes: changes,
		Summary: summarize(changes),
	}

	r.logger.Debug("Reconciliation planned",
		zap.String("policy", policy.String()),
		zap.Int("added", plan.Summary.Added),
		zap.Int("removed", plan.Summary.Removed),
		zap.Int("updated", plan.Summary.Updated),
	)

	return merged, plan
}

// Diff lists the changes turning before into after. Mappings on both sides are
// compared key by key; any other differing pair is reported as one update.
// Changes follow the key order of before, then of after.
func Diff(before, after *tree.Mapping) []Change {
	var changes []Change
	diffMappings(before, after, "", &changes)
	return changes
}

func diffMappings(before, after *tree.Mapping, prefix string, changes *[]Change) {
	for _, key := range before.Keys() {
		path := joinPath(prefix, key)
		prev, _ := before.Get(key)
		next, ok := after.Get(key)
		if !ok {
			*changes = append(*changes, Change{Type: ChangeRemove, Path: path, Reason: "absent from incoming document"})
			continue
		}

		prevMap, prevOK := tree.IsMapping(prev)
		nextMap, nextOK := tree.IsMapping(next)
		if prevOK && nextOK {
			diffMappings(prevMap, nextMap, path, changes)
			continue
		}
		if !tree.Equal(prev, next) {
			*changes = append(*changes, Change{Type: ChangeUpdate, Path: path, Reason: updateReason(prev, next)})
		}
	}

	for _, key := range after.Keys() {
		if before.Has(key) {
			continue
		}
		*changes = append(*changes, Change{Type: ChangeAdd, Path: joinPath(prefix, key), Reason: "new in incoming document"})
	}
}

func updateReason(prev, next tree.Node) string {
	if prev.Kind() != next.Kind() {
		return fmt.Sprintf("%s replaced by %s", prev.Kind(), next.Kind())
	}
	if p, ok := prev.(*tree.Scalar); ok {
		return fmt.Sprintf("%v -> %v", p.Value, next.(*tree.Scalar).Value)
	}
	return fmt.Sprintf("%s changed", prev.Kind())
}

func summarize(changes []Change) PlanSummary {
	var s PlanSummary
	for _, c := range changes {
		switch c.Type {
		case ChangeAdd:
			s.Added++
		case ChangeRemove:
			s.Removed++
		case ChangeUpdate:
			s.Updated++
		}
	}
	return s
}

// joinPath appends key to a dotted path. Keys that would make the path
// ambiguous are quoted; keys that are not strings show their text.
func joinPath(prefix, key string) string {
	key = tree.KeyText(key)
	if key == "" || strings.ContainsAny(key, ".[]\"") {
		key = "[" + strconv.Quote(key) + "]"
		return prefix + key
	}
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
