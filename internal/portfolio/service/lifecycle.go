package service

import (
	"context"
	"fmt"

	"github.com/batoulgheleb/crisiszone/internal/platform/tracer"
	"github.com/batoulgheleb/crisiszone/internal/portfolio/models"
	id "github.com/batoulgheleb/crisiszone/pkg/domain"
	dErrors "github.com/batoulgheleb/crisiszone/pkg/domain-errors"
	"github.com/batoulgheleb/crisiszone/pkg/requestcontext"
)

// ExpireStaleRequests marks every pending request whose ExpiresAt has passed
// as Expired, in a single transaction. Expired requests are kept so the
// doctor can see them; they can no longer be verified.
func (s *Service) ExpireStaleRequests(ctx context.Context) (count int, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanExpireRequests)
	defer func() { span.End(err) }()

	now := requestcontext.Now(ctx)
	var expired []*models.Request
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		expired = nil
		pending, err := s.requests.ListRequestsByStatusForUpdate(ctx, models.RequestPending)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending requests")
		}
		for _, r := range pending {
			if !r.IsStale(now) {
				continue
			}
			r.Status = models.RequestExpired
			if err := s.requests.UpdateRequest(ctx, r); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to expire request")
			}
			expired = append(expired, r)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	span.SetAttributes(tracer.Int(tracer.AttrExpired, len(expired)))
	if len(expired) == 0 {
		return 0, nil
	}
	if s.metrics != nil {
		s.metrics.AddRequestsExpired(len(expired))
	}
	s.logger.InfoContext(ctx, "requests_expired", "count", len(expired))
	if s.events != nil {
		for _, r := range expired {
			s.events.RequestExpired(ctx, r)
		}
	}
	return len(expired), nil
}

// CancelRequest lets the owning doctor withdraw a pending request.
func (s *Service) CancelRequest(ctx context.Context, requestID id.RequestID, doctorID id.DoctorID) (cancelled *models.Request, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanCancelRequest,
		tracer.String(tracer.AttrRequestID, requestID.String()),
		tracer.String(tracer.AttrDoctorID, doctorID.String()),
	)
	defer func() { span.End(err) }()

	if requestID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "Request ID is required")
	}
	if doctorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "Doctor ID is required")
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		req, err := s.requests.FindRequestForUpdate(ctx, requestID)
		if err != nil {
			return requestNotFound(err, requestID)
		}
		if req.DoctorID != doctorID {
			return dErrors.New(dErrors.CodeForbidden, "Doctor is not allowed to cancel this request")
		}
		if !req.IsPending() {
			return dErrors.New(dErrors.CodeInvalidState, fmt.Sprintf("Request status is %s, cannot cancel", req.Status))
		}
		req.Status = models.RequestCancelled
		if err := s.requests.UpdateRequest(ctx, req); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to cancel request")
		}
		cancelled = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "request_cancelled",
		"request_id", requestID.String(),
		"doctor_id", doctorID.String(),
	)
	if s.metrics != nil {
		s.metrics.IncrementRequestsCancelled()
	}
	if s.events != nil {
		s.events.RequestCancelled(ctx, cancelled)
	}
	return cancelled, nil
}
