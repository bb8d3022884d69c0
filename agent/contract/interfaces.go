package contract

import (
	"context"

	sessionx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/session"
)

// ToolGateway is the only path through which the orchestration loop reaches
// the catalog subsystem. Implementations are pure with respect to the
// catalog and never touch the session store.
type ToolGateway interface {
	Execute(ctx context.Context, req ToolRequest) ToolResult
}

// SessionStore owns every conversation thread. Reads on an absent thread
// yield empty results, never errors; only a malformed user id is an error.
type SessionStore interface {
	Append(ctx context.Context, userID string, turn sessionx.Turn) error
	History(ctx context.Context, userID string) ([]sessionx.Turn, error)
	Clear(ctx context.Context, userID string) error
}
