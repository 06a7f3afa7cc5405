package usertable

import (
	"context"
	"fmt"
	"sync/atomic"

	platformerrors "github.com/louisbranch/crm-console/internal/platform/errors"
	"github.com/louisbranch/crm-console/internal/platform/logger"
)

// Fetcher retrieves the complete user list from the users API.
type Fetcher interface {
	FetchUsers(ctx context.Context) ([]UserRecord, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) ([]UserRecord, error)

// FetchUsers calls f.
func (f FetcherFunc) FetchUsers(ctx context.Context) ([]UserRecord, error) {
	return f(ctx)
}

// LoadingSignal receives the loading indicator transitions of a load.
type LoadingSignal interface {
	SetLoading(loading bool)
}

// LoadingFlag is a LoadingSignal safe for concurrent readers.
type LoadingFlag struct {
	v atomic.Bool
}

// SetLoading stores the indicator.
func (f *LoadingFlag) SetLoading(loading bool) {
	f.v.Store(loading)
}

// Loading reports the indicator.
func (f *LoadingFlag) Loading() bool {
	return f.v.Load()
}

// LoadOutcome is the result of one Load call.
type LoadOutcome struct {
	Snapshot Snapshot
	// Canceled is set when the context ended before the fetch settled. The
	// caller must discard Snapshot and keep its current state.
	Canceled bool

	rows []UserRecord
	err  error
}

// ApplyTo replays the load result onto s, which may have changed while the
// fetch was in flight. Canceled outcomes return s unchanged.
func (o LoadOutcome) ApplyTo(s Snapshot) Snapshot {
	switch {
	case o.Canceled:
		return s
	case o.err != nil:
		return s.WithError(o.err)
	default:
		return s.WithRows(o.rows)
	}
}

// Loader replaces a Snapshot's rows with a fresh fetch.
type Loader struct {
	fetcher Fetcher
	signal  LoadingSignal
	log     logger.Logger
}

// NewLoader builds a loader. A nil signal or logger is replaced by a no-op.
func NewLoader(fetcher Fetcher, signal LoadingSignal, log logger.Logger) *Loader {
	if signal == nil {
		signal = noopSignal{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{fetcher: fetcher, signal: signal, log: log}
}

// Load fetches the user list and returns current with the rows replaced, or
// with the error recorded. The loading signal is raised for the duration of
// the call and always lowered on return.
func (l *Loader) Load(ctx context.Context, current Snapshot) (outcome LoadOutcome) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.signal.SetLoading(true)
	defer l.signal.SetLoading(false)
	defer func() {
		if r := recover(); r != nil {
			err := platformerrors.New(platformerrors.CodeUnknown, fmt.Sprintf("load users: %v", r))
			l.log.Error("users load panicked", "panic", r)
			outcome = failed(current, err)
		}
	}()

	if l.fetcher == nil {
		err := platformerrors.New(platformerrors.CodeUsersUnavailable, "users fetcher is not configured")
		l.log.Error("users load failed", "error", err)
		return failed(current, err)
	}

	rows, err := l.fetcher.FetchUsers(ctx)
	if ctx.Err() != nil {
		l.log.Debug("users load canceled", "error", ctx.Err())
		return LoadOutcome{Snapshot: current, Canceled: true}
	}
	if err != nil {
		if _, ok := platformerrors.As(err); !ok {
			err = platformerrors.Wrap(platformerrors.CodeUsersUnavailable, "fetch users", err)
		}
		l.log.Error("users load failed", "code", platformerrors.CodeOf(err), "error", err)
		return failed(current, err)
	}
	if err := ValidateRows(rows); err != nil {
		l.log.Error("users load rejected", "code", platformerrors.CodeOf(err), "error", err)
		return failed(current, err)
	}

	next := current.WithRows(rows)
	l.log.Info("users loaded", "count", next.Total(), "selected", next.SelectedCount())
	return LoadOutcome{Snapshot: next, rows: next.rows}
}

func failed(current Snapshot, err error) LoadOutcome {
	return LoadOutcome{Snapshot: current.WithError(err), err: err}
}

type noopSignal struct{}

func (noopSignal) SetLoading(bool) {}
