package platform

// Package platform contains OS integration glue: destination directory
// helpers, collision-free file naming, and revealing files in the system
// file manager.
