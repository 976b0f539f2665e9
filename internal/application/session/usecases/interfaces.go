package usecases

import (
	"context"

	"tempus/internal/application/session/dto"
	"tempus/internal/domain/session"
)

// Notifier delivers session events to realtime subscribers. Delivery is
// best effort: a notifier failure never rolls back the transition that
// produced the event.
type Notifier interface {
	Publish(evt session.Event)
}

// AuditSink records operator and system actions off the request path.
type AuditSink interface {
	Record(action, actor string, sessionID *uint, metadata map[string]interface{})
}

// SessionLocker serializes mutating operations on a single session. The
// returned release function must be called exactly once.
type SessionLocker interface {
	Acquire(ctx context.Context, sessionID uint) (func(), error)
}

// TxRunner runs fn inside a database transaction. Repository calls made
// with the context fn receives join that transaction.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CreateSessionExecutor interface {
	Execute(ctx context.Context, cmd CreateSessionCommand) (*dto.SessionDTO, error)
}

type ValidateCodeExecutor interface {
	Execute(ctx context.Context, cmd ValidateCodeCommand) (*ValidateCodeResult, error)
}

type StartSessionExecutor interface {
	Execute(ctx context.Context, cmd StartSessionCommand) (*StartSessionResult, error)
}

type AddTimeExecutor interface {
	Execute(ctx context.Context, cmd AddTimeCommand) (*dto.SessionDTO, error)
}

type TerminateSessionExecutor interface {
	Execute(ctx context.Context, cmd TerminateSessionCommand) (*dto.SessionDTO, error)
}

type SuspendSessionExecutor interface {
	Execute(ctx context.Context, cmd SuspendSessionCommand) (*dto.SessionDTO, error)
}

type ResumeSessionExecutor interface {
	Execute(ctx context.Context, cmd ResumeSessionCommand) (*dto.SessionDTO, error)
}

type GetSessionExecutor interface {
	Execute(ctx context.Context, query GetSessionQuery) (*dto.SessionDTO, error)
}

type GetTimeExecutor interface {
	Execute(ctx context.Context, query GetTimeQuery) (*GetTimeResult, error)
}

type GetWorkstationSessionExecutor interface {
	Execute(ctx context.Context, query GetWorkstationSessionQuery) (*GetTimeResult, error)
}

type ListSessionsExecutor interface {
	Execute(ctx context.Context, query ListSessionsQuery) (*ListSessionsResult, error)
}

type ActiveSessionsExecutor interface {
	Execute(ctx context.Context) ([]*dto.SessionDTO, error)
}

type SessionStatsExecutor interface {
	Execute(ctx context.Context) (*SessionStatsResult, error)
}

type RequestExtensionExecutor interface {
	Execute(ctx context.Context, cmd RequestExtensionCommand) (*dto.ExtensionRequestDTO, error)
}

type RespondExtensionExecutor interface {
	Execute(ctx context.Context, cmd RespondExtensionCommand) (*RespondExtensionResult, error)
}

type ListExtensionRequestsExecutor interface {
	Execute(ctx context.Context, query ListExtensionRequestsQuery) ([]*dto.ExtensionRequestDTO, error)
}
