package updater

import (
	"context"
	"fmt"

	"config-updater/core/document"
	apperrors "config-updater/core/errors"
	"config-updater/core/logger"
	"config-updater/core/reconcile"
	"config-updater/core/storage"
	"config-updater/core/tree"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options describes one update invocation.
type Options struct {
	// CurrentPath is the document that is read and then overwritten.
	CurrentPath string
	// IncomingPath is the document supplying updates.
	IncomingPath string
	// Force selects ForceUpdate.
	Force bool
	// Replace selects FullReplace and wins over Force.
	Replace bool
	// DryRun computes the plan without writing anything.
	DryRun bool
}

// Result reports what an invocation did.
type Result struct {
	// Policy is the resolved reconciliation policy.
	Policy reconcile.Policy
	// Plan lists the changes made to the current document.
	Plan *reconcile.Plan
	// Written is true when the current document was overwritten.
	Written bool
}

// Service runs document updates.
type Service struct {
	client   storage.Client
	document document.Config
	logger   *zap.Logger
}

// NewService creates a new update service.
func NewService(client storage.Client, docCfg document.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:   client,
		document: docCfg,
		logger:   logger,
	}
}

// Run loads both documents, reconciles them and writes the result back to
// opts.CurrentPath. On error the current document is left untouched.
func (s *Service) Run(ctx context.Context, opts Options) (*Result, error) {
	l := logger.WithRunID(s.logger, uuid.NewString())
	l.Info("Starting configuration update",
		zap.String("current", opts.CurrentPath),
		zap.String("incoming", opts.IncomingPath),
	)

	current, err := s.load(l, opts.CurrentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load current document: %w", err)
	}
	incoming, err := s.load(l, opts.IncomingPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load incoming document: %w", err)
	}

	if !opts.DryRun {
		if err := s.client.CheckWritable(opts.CurrentPath); err != nil {
			l.Error("Current document is not writable", zap.String("path", opts.CurrentPath))
			return nil, fmt.Errorf("failed to check current document: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	policy := reconcile.ResolvePolicy(opts.Force, opts.Replace)
	if opts.Force && opts.Replace {
		l.Info("Both --force and --replace were provided; --replace takes precedence.")
	}

	merged, plan := reconcile.New(l).ReconcileWithPlan(current, incoming, policy)
	printPlan(l, plan)

	result := &Result{Policy: policy, Plan: plan}
	if opts.DryRun {
		l.Info("Dry-run mode: No changes were made.")
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := document.Marshal(merged, s.document)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize merged document: %w", err)
	}

	l.Debug("Saving updated configuration", zap.String("path", opts.CurrentPath), zap.Int("bytes", len(data)))
	if err := s.client.WriteFile(opts.CurrentPath, data); err != nil {
		return nil, fmt.Errorf("failed to write current document: %w", err)
	}
	result.Written = true

	l.Info(completionMessage(policy), zap.String("path", opts.CurrentPath))
	return result, nil
}

// load reads and parses one document. A missing file is NotFound and a parse
// failure is MalformedInput.
func (s *Service) load(l *zap.Logger, path string) (*tree.Mapping, error) {
	exists, err := s.client.Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		l.Error("Document does not exist", zap.String("path", path))
		return nil, apperrors.Newf(apperrors.CodeNotFound, path, "document does not exist")
	}

	l.Debug("Loading document", zap.String("path", path))
	data, err := s.client.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m, err := document.Parse(data)
	if err != nil {
		l.Error("Failed to parse document", zap.String("path", path), zap.Error(err))
		return nil, apperrors.New(apperrors.CodeMalformedInput, path, err)
	}

	l.Debug("Document loaded", zap.String("path", path), zap.Int("keys", m.Len()))
	return m, nil
}

func completionMessage(policy reconcile.Policy) string {
	switch policy {
	case reconcile.FullReplace:
		return "Configuration replaced with the new file."
	case reconcile.ForceUpdate:
		return "Existing fields updated with new configuration values."
	default:
		return "Configuration updated with new values."
	}
}

// printPlan logs the plan summary and, at debug level, every change.
func printPlan(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary

	l.Info("Reconciliation plan",
		zap.String("policy", plan.Policy.String()),
		zap.Int("added", s.Added),
		zap.Int("removed", s.Removed),
		zap.Int("updated", s.Updated),
	)

	for _, change := range plan.Changes {
		l.Debug("Planned change",
			zap.String("type", string(change.Type)),
			zap.String("path", change.Path),
			zap.String("reason", change.Reason),
		)
	}
}
