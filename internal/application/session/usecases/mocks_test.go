package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tempus/internal/domain/registry"
	"tempus/internal/domain/session"
	apperrors "tempus/internal/shared/errors"
	"tempus/internal/shared/logger"
)

type mockSessionRepository struct {
	SaveFunc              func(ctx context.Context, s *session.Session) error
	UpdateFunc            func(ctx context.Context, s *session.Session) error
	FindByIDFunc          func(ctx context.Context, id uint) (*session.Session, error)
	FindByCodeFunc        func(ctx context.Context, code string) (*session.Session, error)
	FindLiveByWSFunc      func(ctx context.Context, workstationID uint) (*session.Session, error)
	CodeInUseFunc         func(ctx context.Context, code string) (bool, error)
	ListActiveFunc        func(ctx context.Context) ([]*session.Session, error)
	ListFunc              func(ctx context.Context, filter session.Filter) ([]*session.Session, int64, error)
	DeleteEndedBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)
	StatsFunc             func(ctx context.Context) (*session.Stats, error)
}

func (m *mockSessionRepository) Save(ctx context.Context, s *session.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	return s.SetID(1)
}

func (m *mockSessionRepository) Update(ctx context.Context, s *session.Session) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id uint) (*session.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSessionRepository) FindByCode(ctx context.Context, code string) (*session.Session, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *mockSessionRepository) FindLiveByWorkstation(ctx context.Context, workstationID uint) (*session.Session, error) {
	if m.FindLiveByWSFunc != nil {
		return m.FindLiveByWSFunc(ctx, workstationID)
	}
	return nil, nil
}

func (m *mockSessionRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	if m.CodeInUseFunc != nil {
		return m.CodeInUseFunc(ctx, code)
	}
	return false, nil
}

func (m *mockSessionRepository) ListActive(ctx context.Context) ([]*session.Session, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockSessionRepository) List(ctx context.Context, filter session.Filter) ([]*session.Session, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockSessionRepository) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteEndedBeforeFunc != nil {
		return m.DeleteEndedBeforeFunc(ctx, cutoff)
	}
	return 0, nil
}

func (m *mockSessionRepository) Stats(ctx context.Context) (*session.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &session.Stats{ByStatus: map[string]int64{}}, nil
}

type mockExtensionRequestRepository struct {
	SaveFunc                 func(ctx context.Context, r *session.ExtensionRequest) error
	UpdateFunc               func(ctx context.Context, r *session.ExtensionRequest) error
	FindByIDFunc             func(ctx context.Context, id uint) (*session.ExtensionRequest, error)
	FindPendingBySessionFunc func(ctx context.Context, sessionID uint) (*session.ExtensionRequest, error)
	ListByStatusFunc         func(ctx context.Context, status session.RequestStatus) ([]*session.ExtensionRequest, error)
	ListBySessionFunc        func(ctx context.Context, sessionID uint) ([]*session.ExtensionRequest, error)
}

func (m *mockExtensionRequestRepository) Save(ctx context.Context, r *session.ExtensionRequest) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	return r.SetID(1)
}

func (m *mockExtensionRequestRepository) Update(ctx context.Context, r *session.ExtensionRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, r)
	}
	return nil
}

func (m *mockExtensionRequestRepository) FindByID(ctx context.Context, id uint) (*session.ExtensionRequest, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockExtensionRequestRepository) FindPendingBySession(ctx context.Context, sessionID uint) (*session.ExtensionRequest, error) {
	if m.FindPendingBySessionFunc != nil {
		return m.FindPendingBySessionFunc(ctx, sessionID)
	}
	return nil, apperrors.NewNotFoundError("no pending extension request")
}

func (m *mockExtensionRequestRepository) ListByStatus(ctx context.Context, status session.RequestStatus) ([]*session.ExtensionRequest, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockExtensionRequestRepository) ListBySession(ctx context.Context, sessionID uint) ([]*session.ExtensionRequest, error) {
	if m.ListBySessionFunc != nil {
		return m.ListBySessionFunc(ctx, sessionID)
	}
	return nil, nil
}

type mockUserRepository struct {
	FindByIDFunc func(ctx context.Context, id uint) (*registry.User, error)
	UpdateFunc   func(ctx context.Context, u *registry.User) error
}

func (m *mockUserRepository) Save(ctx context.Context, u *registry.User) error { return nil }

func (m *mockUserRepository) Update(ctx context.Context, u *registry.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*registry.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return testUser(id), nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*registry.User, error) { return nil, nil }

type mockWorkstationRepository struct {
	FindByIDFunc func(ctx context.Context, id uint) (*registry.Workstation, error)
	UpdateFunc   func(ctx context.Context, w *registry.Workstation) error
}

func (m *mockWorkstationRepository) Save(ctx context.Context, w *registry.Workstation) error {
	return nil
}

func (m *mockWorkstationRepository) Update(ctx context.Context, w *registry.Workstation) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, w)
	}
	return nil
}

func (m *mockWorkstationRepository) FindByID(ctx context.Context, id uint) (*registry.Workstation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return testWorkstation(id), nil
}

func (m *mockWorkstationRepository) FindByName(ctx context.Context, name string) (*registry.Workstation, error) {
	return nil, nil
}

func (m *mockWorkstationRepository) List(ctx context.Context) ([]*registry.Workstation, error) {
	return nil, nil
}

// mockNotifier records published events for assertions.
type mockNotifier struct {
	mu     sync.Mutex
	events []session.Event
}

func (m *mockNotifier) Publish(evt session.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
}

func (m *mockNotifier) Events() []session.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]session.Event(nil), m.events...)
}

func (m *mockNotifier) EventTypes() []session.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]session.EventType, 0, len(m.events))
	for _, evt := range m.events {
		types = append(types, evt.Type)
	}
	return types
}

type auditCall struct {
	Action    string
	Actor     string
	SessionID *uint
	Metadata  map[string]interface{}
}

type mockAudit struct {
	mu    sync.Mutex
	calls []auditCall
}

func (m *mockAudit) Record(action, actor string, sessionID *uint, metadata map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, auditCall{Action: action, Actor: actor, SessionID: sessionID, Metadata: metadata})
}

func (m *mockAudit) Calls() []auditCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]auditCall(nil), m.calls...)
}

// noopLocks always grants the lock.
type noopLocks struct{}

func (noopLocks) Acquire(ctx context.Context, sessionID uint) (func(), error) {
	return func() {}, nil
}

// deniedLocks refuses every acquisition.
type deniedLocks struct{ err error }

func (l deniedLocks) Acquire(ctx context.Context, sessionID uint) (func(), error) {
	return nil, l.err
}

// passthroughTx runs the function directly, no transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// trackingTx records whether a transaction is currently open so tests can
// assert a repository call happened inside one.
type trackingTx struct {
	mu   sync.Mutex
	open bool
}

func (t *trackingTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.open = true
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.open = false
		t.mu.Unlock()
	}()
	return fn(ctx)
}

func (t *trackingTx) Open() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func testUser(id uint) *registry.User {
	now := time.Now()
	return registry.ReconstructUser(id, "Ada", "Lovelace", true, 0, nil, now, now)
}

func testWorkstation(id uint) *registry.Workstation {
	now := time.Now()
	return registry.ReconstructWorkstation(id, "WS-01", "reading room", registry.WorkstationAvailable, "", 0, nil, now, now)
}

func buildSession(t *testing.T, id uint, status session.Status, remaining int) *session.Session {
	t.Helper()

	now := time.Now()
	var startedAt *time.Time
	if status != session.StatusPending {
		started := now.Add(-time.Minute)
		startedAt = &started
	}

	s, err := session.ReconstructSession(
		id, "ABCD23", 1, 1,
		3600, remaining, 0,
		startedAt, nil,
		status,
		"operator", "",
		1,
		now, now,
	)
	require.NoError(t, err)
	return s
}
