// Package core orchestrates an envsync run.
//
// Functions in this package return errors instead of printing to stdout or
// stderr. UI-specific output belongs in the cmd package.
//
// # Sync
//
// A [Syncer] runs the pipeline once:
//
//  1. Load the override policy
//  2. Fetch every repository of the organization
//  3. Classify repositories into environments
//  4. Build and render the snapshot
//  5. Write the report and state sinks when their content changed
//  6. Publish the environment list to the control plane, if configured
//
// Any failure before step 5 leaves the sinks untouched.
//
// # Watch
//
// [Watch] repeats a run on a cron schedule until its context is cancelled.
// Overlapping runs are skipped and a panicking run does not stop the schedule.
package core
