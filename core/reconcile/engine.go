package reconcile

import (
	"config-updater/core/tree"

	"go.uber.org/zap"
)

// Reconciler merges two documents under a policy.
// It holds no state besides its diagnostics sink and is safe to reuse.
type Reconciler struct {
	logger Logger
}

// New creates a Reconciler logging to logger. A nil logger discards diagnostics.
func New(logger Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{logger: logger}
}

// Reconcile merges incoming into current with a diagnostics-free reconciler.
func Reconcile(current, incoming *tree.Mapping, policy Policy) *tree.Mapping {
	return New(nil).Reconcile(current, incoming, policy)
}

// Reconcile returns a new mapping holding the result of applying incoming to current
// under policy. Neither input is modified and the result shares no nodes with them.
// Nil inputs are treated as empty mappings; an unknown policy behaves as DefaultSync.
func (r *Reconciler) Reconcile(current, incoming *tree.Mapping, policy Policy) *tree.Mapping {
	if current == nil {
		current = tree.NewMapping()
	}
	if incoming == nil {
		incoming = tree.NewMapping()
	}

	switch policy {
	case FullReplace:
		r.logger.Debug("Replacing document wholesale", zap.Int("keys", incoming.Len()))
		return incoming.CloneMapping()
	case ForceUpdate:
		return r.forceUpdate(current, incoming, "")
	default:
		return r.sync(current, incoming, "")
	}
}

// sync builds a mapping whose key set is exactly keys(incoming). Surviving keys keep
// the position and formatting they had in current; new keys follow in incoming order.
func (r *Reconciler) sync(current, incoming *tree.Mapping, prefix string) *tree.Mapping {
	out := tree.NewMapping()
	out.Format = current.Format

	for _, key := range current.Keys() {
		next, ok := incoming.Get(key)
		if !ok {
			r.logger.Debug("Removing key absent from incoming document", zap.String("path", joinPath(prefix, key)))
			continue
		}
		prev, _ := current.Get(key)
		out.Set(key, r.merge(prev, next, joinPath(prefix, key), r.sync))
		out.SetKeyFormat(key, current.KeyFormat(key))
	}

	for _, key := range incoming.Keys() {
		if out.Has(key) {
			continue
		}
		next, _ := incoming.Get(key)
		r.logger.Debug("Adding key from incoming document", zap.String("path", joinPath(prefix, key)))
		out.Set(key, next.Clone())
		out.SetKeyFormat(key, incoming.KeyFormat(key))
	}

	return out
}

// forceUpdate builds a mapping whose key set is exactly keys(current).
func (r *Reconciler) forceUpdate(current, incoming *tree.Mapping, prefix string) *tree.Mapping {
	out := tree.NewMapping()
	out.Format = current.Format

	for _, key := range current.Keys() {
		prev, _ := current.Get(key)
		next, ok := incoming.Get(key)
		if ok {
			out.Set(key, r.merge(prev, next, joinPath(prefix, key), r.forceUpdate))
		} else {
			out.Set(key, prev.Clone())
		}
		out.SetKeyFormat(key, current.KeyFormat(key))
	}

	for _, key := range incoming.Keys() {
		if !current.Has(key) {
			r.logger.Debug("Ignoring key absent from current document", zap.String("path", joinPath(prefix, key)))
		}
	}

	return out
}

// merge resolves a key present on both sides: two mappings recurse with the
// active policy, anything else takes the incoming value.
func (r *Reconciler) merge(prev, next tree.Node, path string, recurse func(current, incoming *tree.Mapping, prefix string) *tree.Mapping) tree.Node {
	prevMap, prevOK := tree.IsMapping(prev)
	nextMap, nextOK := tree.IsMapping(next)
	if prevOK && nextOK {
		return recurse(prevMap, nextMap, path)
	}
	if prevOK != nextOK {
		r.logger.Debug("Shape mismatch, incoming value wins",
			zap.String("path", path),
			zap.Stringer("current", prev.Kind()),
			zap.Stringer("incoming", next.Kind()),
		)
	}
	return next.Clone()
}
