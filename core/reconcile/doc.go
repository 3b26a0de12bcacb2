// Package reconcile compares the rules documents held by three sources: the
// embedded reference defaults, the storage bucket and the database table.
//
// An Adapter loads one Index per source. The engine builds the union of names,
// classifies each backend copy as present, missing, mismatch (version or
// checksum), extra or skipped, and can turn the result into a plan of restore
// and sync actions.
//
// # Cache
//
// Indices are cached per adapter with a TTL. A stale or absent cache is rebuilt
// by exactly one caller; the others wait on the same singleflight section and
// re-check the store before building.
//
// # Usage Example
//
//	spec := &reconcile.Spec{Adapter: adapter, CacheTTL: time.Minute}
//
//	results, err := reconcile.ReconcileAll(ctx, spec)
//
//	plan, executed, err := reconcile.ReconcileAndApply(ctx, spec, reconcile.ReconcileOptions{
//	    DoRestore: true,
//	    Confirmed: true,
//	})
//
// ApplyPlan only writes through adapters that also implement Mutator.
package reconcile
