// Package reconcile merges a current configuration document with an incoming one.
//
// Reconciliation is a pure function of (current, incoming, policy): it builds and
// returns a new tree and never touches its inputs or any external state.
//
// # Policies
//
// Exactly one policy applies per invocation:
//
// 1. DefaultSync: at every mapping level the result has exactly the incoming key set.
//    Keys only in current are removed, keys only in incoming are added, and keys in
//    both take the incoming value unless both sides are mappings, in which case the
//    merge recurses.
//
// 2. ForceUpdate: the result has exactly the current key set. Keys present in both
//    take the incoming value (recursing when both are mappings); incoming-only keys
//    are ignored and current-only keys are kept.
//
// 3. FullReplace: the result is a copy of the incoming document.
//
// ResolvePolicy maps the --force and --replace switches onto a policy; replace wins
// when both are set.
//
// When a key holds a mapping on one side and a scalar or sequence on the other, the
// incoming value wins wholesale. Sequences are never merged element by element.
//
// # Plans
//
// ReconcileWithPlan additionally diffs the result against the current document and
// returns the added, removed and updated key paths with a summary, which callers use
// for reporting and dry runs.
//
// # Usage Example
//
//	r := reconcile.New(logger)
//	policy := reconcile.ResolvePolicy(force, replace)
//	merged, plan := r.ReconcileWithPlan(current, incoming, policy)
package reconcile
