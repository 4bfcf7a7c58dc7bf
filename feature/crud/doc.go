// Package crud provides generic CRUD actions over a GORM connection.
//
// It wraps the common read and write patterns (keyed lookups, filtered and
// paged scans, batched inserts, bulk deletes) behind a single generic type,
// Actions[T], so feature code does not repeat GORM boilerplate per model.
//
// # Association Graphs
//
// Reads requested with WithFullGraph preload the model's association graph.
// The shape of that graph is analyzed once per model type from GORM's parsed
// schema metadata:
//   - Acyclic graphs are preloaded along every nested association path.
//   - Cyclic graphs (bidirectional navigation, e.g. parent <-> child) are
//     preloaded one level deep only, since recursive preloading would never
//     terminate.
//
// The verdict is memoized process-wide. Should a full-graph preload fail at
// runtime anyway, the query is retried once with one-level preloads and the
// model type is permanently switched to the shallow strategy.
//
// # Errors
//
// Read operations return ErrNotFound when the row is absent; it matches
// gorm.ErrRecordNotFound under errors.Is. No operation converts failures
// into zero values, so callers can always tell "not found" from "failed".
//
// # Usage
//
//	users := crud.New[User](db, log)
//	u, err := users.GetByKey(ctx, 42, crud.WithFullGraph())
//	if errors.Is(err, crud.ErrNotFound) {
//	    // ...
//	}
package crud
