package postgres

import "github.com/tinoosan/volley/internal/service/banks"

var (
	_ banks.Repo   = (*Store)(nil)
	_ banks.Writer = (*Store)(nil)
)
