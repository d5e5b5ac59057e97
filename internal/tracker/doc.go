// Package tracker mirrors transfer tasks as panel items. It adds an item the
// first time a task is reported, keeps its progress and text current, and
// retires it when the task finishes: completed items linger briefly, failed
// items stay until dismissed, stopped items go at once.
package tracker
