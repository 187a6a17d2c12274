// Package panel implements the property panel of a single work item: a pure
// projection of the item snapshot, direct-write handlers for picker fields,
// and a buffered controller for the budget text field.
//
// Direct-write handlers issue exactly one single-field patch per call
// through a Dispatcher and never look at the result. Whether an unchanged
// picker selection calls a handler at all is up to the host.
//
// The budget controller keeps local edits apart from the snapshot, reseeds
// from the store when the upstream value changes, and writes only when a
// commit boundary (blur or Enter) finds the parsed buffer different from the
// snapshot. Values are compared after parsing: a blank buffer is null, so
// clearing a budget of 0 sends {budget: null}.
//
// Known limitation: an upstream budget change that arrives while the user
// is editing overwrites the uncommitted buffer. There is no conflict
// indication.
package panel
