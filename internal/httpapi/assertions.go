package httpapi

import (
	"github.com/tinoosan/volley/internal/storage/memory"
	"github.com/tinoosan/volley/internal/storage/postgres"
)

// Compile-time interface assertions for the stores against HTTP API interfaces.
var (
	_ ReadyChecker = (*memory.Store)(nil)
	_ ReadyChecker = (*postgres.Store)(nil)
)
