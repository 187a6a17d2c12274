// Package store holds the in-process snapshots of work items and their
// related records that the property panel reads from.
//
// Lookups are synchronous and never fail: an unknown id yields ok == false.
// Snapshots are refreshed from the repositories after every write, and
// subscribers registered with Watch are told only about fields whose value
// actually changed between two snapshots.
package store
