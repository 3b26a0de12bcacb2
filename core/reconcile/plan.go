package reconcile

import (
	"context"
	"fmt"
	"strings"
)

// ReconcileWithPlan reconciles every document and plans the actions opts asks
// for. It does NOT execute actions; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, spec *Spec, opts ReconcileOptions) (*ReconcilePlan, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}

	results := reconcileFromCache(cache)
	summary, actions := buildPlanFromResults(results, cache, opts)

	return &ReconcilePlan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the actions in a reconcile plan and returns how many ran.
// Nothing is written unless opts.Confirmed is set and opts.DryRun is not.
func ApplyPlan(ctx context.Context, spec *Spec, plan *ReconcilePlan, opts ReconcileOptions) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun || len(plan.Actions) == 0 {
		return 0, nil
	}

	mutator, ok := spec.Adapter.(Mutator)
	if !ok {
		return 0, fmt.Errorf("adapter %s does not implement Mutator interface", spec.Adapter.Name())
	}

	// Later reconciliations must see what was written.
	defer InvalidateCache(spec)

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionUploadStorage, ActionSyncStorage:
			err = mutator.PutStorage(ctx, action.Item)
		case ActionInsertDB, ActionSyncDB:
			err = mutator.PutDB(ctx, action.Item)
		default:
			err = fmt.Errorf("unsupported action type %q", action.Type)
		}
		if err != nil {
			return executed, fmt.Errorf("failed to %s %s: %w", action.Type, action.Name, err)
		}
		executed++
	}
	return executed, nil
}

// ReconcileAndApply plans and, when confirmed, applies the plan.
func ReconcileAndApply(ctx context.Context, spec *Spec, opts ReconcileOptions) (*ReconcilePlan, int, error) {
	plan, err := ReconcileWithPlan(ctx, spec, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, spec, plan, opts)
	return plan, executed, err
}

// buildPlanFromResults generates a summary and action plan from reconciliation results.
func buildPlanFromResults(results []ReconcileResult, cache *ReconcileCache, opts ReconcileOptions) (PlanSummary, []Action) {
	summary := PlanSummary{TotalItems: len(results)}
	actions := []Action{}

	plan := func(t ActionType, r ReconcileResult, reason string) {
		actions = append(actions, Action{Type: t, Name: r.Name, Reason: reason, Item: cache.Reference[r.Name]})
	}

	for _, r := range results {
		if r.Storage == StateExtra || r.Database == StateExtra {
			summary.Extra++
		}
		if len(r.Mismatch) > 0 {
			summary.Mismatches++
		}

		if r.Storage == StateMissing {
			summary.MissingStorage++
			if opts.DoRestore {
				plan(ActionUploadStorage, r, "missing in storage")
				summary.RestoreActions++
			}
		}
		if r.Database == StateMissing {
			summary.MissingDB++
			if opts.DoRestore {
				plan(ActionInsertDB, r, "missing in database")
				summary.RestoreActions++
			}
		}

		if !opts.DoSync {
			continue
		}
		if r.Storage == StateMismatch {
			plan(ActionSyncStorage, r, mismatchReason(r.Mismatch, "storage"))
			summary.SyncActions++
		}
		if r.Database == StateMismatch {
			plan(ActionSyncDB, r, mismatchReason(r.Mismatch, "database"))
			summary.SyncActions++
		}
	}

	return summary, actions
}

// mismatchReason keeps the mismatch descriptions of one backend.
func mismatchReason(mismatch []string, label string) string {
	var own []string
	for _, m := range mismatch {
		if strings.HasPrefix(m, label+" ") {
			own = append(own, m)
		}
	}
	return "mismatch: " + strings.Join(own, "; ")
}
