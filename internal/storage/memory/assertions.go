package memory

import "github.com/tinoosan/volley/internal/service/banks"

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ banks.Repo   = (*Store)(nil)
	_ banks.Writer = (*Store)(nil)
)
