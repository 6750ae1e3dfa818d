package store

import (
	"context"

	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	"github.com/batoulgheleb/crisiszone/pkg/platform/tx"
)

// ChangeListener is told about writes that change a derived progress report.
// Inside a transaction runner the calls are deferred until commit and dropped
// on rollback.
type ChangeListener interface {
	// DoctorChanged fires for doctor updates and deletes and for any
	// verification write affecting the doctor.
	DoctorChanged(ctx context.Context, doctorID id.DoctorID)
	// ReferenceDataChanged fires for supervisor and curriculum writes, which
	// can appear in any doctor's report.
	ReferenceDataChanged(ctx context.Context)
}

// Option configures a repository.
type Option func(*notifier)

// WithChangeListener registers l for post-commit change notifications.
func WithChangeListener(l ChangeListener) Option {
	return func(n *notifier) {
		if l != nil {
			n.listeners = append(n.listeners, l)
		}
	}
}

type notifier struct {
	listeners []ChangeListener
}

func newNotifier(opts []Option) notifier {
	var n notifier
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

func (n *notifier) doctorChanged(ctx context.Context, doctorID id.DoctorID) {
	for _, l := range n.listeners {
		tx.AfterCommit(ctx, func(ctx context.Context) { l.DoctorChanged(ctx, doctorID) })
	}
}

func (n *notifier) referenceDataChanged(ctx context.Context) {
	for _, l := range n.listeners {
		tx.AfterCommit(ctx, l.ReferenceDataChanged)
	}
}
