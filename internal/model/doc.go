// Package model defines the data structures shared by the envsync pipeline.
//
// # Item
//
// An [Item] is one repository as reported by the remote organization. Items are
// read-only once fetched.
//
// # Override
//
// An [Override] is a manually declared policy fragment keyed by repository name.
// Every field is optional; DefaultEnabled is a *bool so that an explicit false
// can be told apart from "not set".
//
// # Environment
//
// An [Environment] is an Item plus the derived Category, Status and
// DefaultEnabled fields. Environments are recomputed from scratch on every run.
//
// # Snapshot
//
// A [Snapshot] is the ordered set of Environments plus run metadata. It is the
// value handed to the sinks and the publisher.
package model
