// Package services implements the core reconciliation logic.
//
// Services implement driving port interfaces and depend on driven port
// interfaces. They contain the cursor/lease state machine and the
// fetch/filter/resolve/parse orchestration, with no knowledge of any
// concrete provider or storage backend.
package services
