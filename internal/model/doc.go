package model

// Package model defines domain data structures used across the app: panel
// items, summary state, and transfer tasks with their status enums.
// Structures are plain values so the panel can hand out snapshots and the
// UI can render them without holding locks.
