package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/ledger"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// RecordPayment stores a payment and allocates it over the tenant's open
// periods in one transaction. Periods due by the payment date are generated
// first. A non-empty idempotencyKey makes retried submissions return the
// payment created by the first one.
func (s *Service) RecordPayment(ctx context.Context, req RecordPaymentRequest, idempotencyKey string) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "record_payment")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, req.TenantID.String(),
		telemetry.SpanAttrAmount, req.Amount,
		telemetry.SpanAttrIdemKey, idempotencyKey,
	)
	ctx, _ = logger.WithTenantID(ctx, s.logger, req.TenantID.String())

	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ledger.ErrNonPositiveAmount
	}
	date, err := parseDate("payment_date", req.PaymentDate)
	if err != nil {
		return nil, err
	}

	useKey := idempotencyKey != "" && s.idempotency != nil
	if useKey {
		replay, err := s.claimIdempotencyKey(ctx, idempotencyKey)
		if err != nil || replay != nil {
			return replay, err
		}
	}

	started := time.Now()
	var (
		payment   *ledger.Payment
		result    *ledger.AllocationResult
		generated int
	)
	err = s.withRetry(ctx, "record_payment", func() error {
		return s.uow.Within(ctx, func(repo ledger.LedgerRepository) error {
			lease, err := repo.GetLease(ctx, req.TenantID)
			if err != nil {
				return err
			}
			n, err := s.generateDue(ctx, repo, lease, date)
			if err != nil {
				return err
			}

			p, err := ledger.NewPayment(req.TenantID, lease.PropertyID, amount, date, req.Notes)
			if err != nil {
				return err
			}
			// allocations reference the payment row, so it is inserted first
			if err := repo.SavePayment(ctx, p); err != nil {
				return fmt.Errorf("failed to save payment: %w", err)
			}
			r, err := s.allocate(ctx, repo, p)
			if err != nil {
				return err
			}
			payment, result, generated = p, r, n
			return nil
		})
	})
	if err != nil {
		if useKey {
			s.releaseIdempotencyKey(ctx, idempotencyKey)
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	if useKey {
		if err := s.idempotency.Complete(ctx, idempotencyKey, payment.ID.String(), s.idempotencyTTL); err != nil {
			s.log(ctx).Warn("Failed to complete idempotency key", zap.String("key", idempotencyKey), zap.Error(err))
		}
	}
	s.afterAllocation(ctx, payment, result, generated, time.Since(started))
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPaymentID, payment.ID.String(),
		telemetry.SpanAttrPeriods, len(result.Applied),
		telemetry.SpanAttrRemainder, result.Remainder.String(),
	)
	telemetry.SetOK(span)

	return s.paymentResponse(ctx, payment, result)
}

// EditPayment applies an administrative correction. A changed amount or date
// reverses the payment's allocations and runs the waterfall again.
func (s *Service) EditPayment(ctx context.Context, id uuid.UUID, req EditPaymentRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "edit_payment")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrPaymentID, id.String())
	ctx, _ = logger.WithPaymentID(ctx, s.logger, id.String())

	edit, err := req.toDomain()
	if err != nil {
		return nil, err
	}

	started := time.Now()
	var (
		payment   *ledger.Payment
		result    *ledger.AllocationResult
		generated int
	)
	err = s.withRetry(ctx, "edit_payment", func() error {
		return s.uow.Within(ctx, func(repo ledger.LedgerRepository) error {
			p, err := repo.FindPayment(ctx, id)
			if err != nil {
				return err
			}
			reallocate, err := p.Edit(edit)
			if err != nil {
				return err
			}
			if err := repo.SavePayment(ctx, p); err != nil {
				return fmt.Errorf("failed to save payment: %w", err)
			}
			payment, result, generated = p, nil, 0
			if !reallocate {
				return nil
			}

			lease, err := repo.GetLease(ctx, p.TenantID)
			if err != nil {
				return err
			}
			if generated, err = s.generateDue(ctx, repo, lease, p.PaymentDate); err != nil {
				return err
			}
			result, err = s.allocate(ctx, repo, p)
			return err
		})
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if result != nil {
		s.afterAllocation(ctx, payment, result, generated, time.Since(started))
	}
	telemetry.SetOK(span)
	return s.paymentResponse(ctx, payment, result)
}

// ReallocatePayment runs the waterfall again for a stored payment without
// changing it. The ledger converges on the same state each time.
func (s *Service) ReallocatePayment(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "reallocate_payment")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrPaymentID, id.String())
	ctx, _ = logger.WithPaymentID(ctx, s.logger, id.String())

	started := time.Now()
	var (
		payment   *ledger.Payment
		result    *ledger.AllocationResult
		generated int
	)
	err := s.withRetry(ctx, "reallocate_payment", func() error {
		return s.uow.Within(ctx, func(repo ledger.LedgerRepository) error {
			p, err := repo.FindPayment(ctx, id)
			if err != nil {
				return err
			}
			lease, err := repo.GetLease(ctx, p.TenantID)
			if err != nil {
				return err
			}
			n, err := s.generateDue(ctx, repo, lease, p.PaymentDate)
			if err != nil {
				return err
			}
			r, err := s.allocate(ctx, repo, p)
			if err != nil {
				return err
			}
			payment, result, generated = p, r, n
			return nil
		})
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.afterAllocation(ctx, payment, result, generated, time.Since(started))
	return s.paymentResponse(ctx, payment, result)
}

// GetPayment returns a payment with its stored allocations
func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.repo.FindPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.paymentResponse(ctx, payment, nil)
}

// allocate runs the engine for p inside repo's transaction and saves the outcome on p
func (s *Service) allocate(ctx context.Context, repo ledger.LedgerRepository, p *ledger.Payment) (*ledger.AllocationResult, error) {
	var (
		result *ledger.AllocationResult
		err    error
	)
	labels := telemetry.OperationLabels("allocate", map[string]string{
		telemetry.ProfilingLabelStrategy: s.engine.StrategyName(),
	})
	telemetry.WithProfilingLabels(ctx, labels, func(ctx context.Context) {
		result, err = s.engine.AllocateWith(ctx, repo, ledger.AllocationRequest{
			TenantID:    p.TenantID,
			PaymentID:   p.ID,
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate,
		})
	})
	if err != nil {
		return nil, err
	}
	p.RecordAllocation(result)
	if err := repo.SavePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save payment totals: %w", err)
	}
	return result, nil
}

func (s *Service) afterAllocation(ctx context.Context, p *ledger.Payment, result *ledger.AllocationResult, generated int, elapsed time.Duration) {
	if logger.GetTenantID(ctx) == "" {
		ctx, _ = logger.WithTenantID(ctx, s.logger, p.TenantID.String())
	}
	if logger.GetPaymentID(ctx) == "" {
		ctx, _ = logger.WithPaymentID(ctx, s.logger, p.ID.String())
	}
	s.invalidateArrears(ctx, p.TenantID)
	s.metrics.RecordPeriodsGenerated(ctx, generated)
	s.metrics.RecordAllocation(ctx, result.Strategy, elapsed, result.Remainder)
	s.log(ctx).Info("Payment allocated",
		zap.String("amount", p.Amount.String()),
		zap.String("applied", result.TotalApplied().String()),
		zap.String("remainder", result.Remainder.String()),
		zap.Int("periods", len(result.Applied)),
		zap.Int("reversed", result.Reversed),
		zap.Int("generated", generated),
	)
}

func (s *Service) paymentResponse(ctx context.Context, p *ledger.Payment, result *ledger.AllocationResult) (*PaymentResponse, error) {
	allocs, err := s.repo.ListAllocationsForPayment(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocations: %w", err)
	}
	resp := ToPaymentResponse(p, allocs)
	resp.Allocation = result
	return &resp, nil
}

// claimIdempotencyKey reserves key for this request. A non-nil response
// means the key already produced a payment, which is returned as a replay.
func (s *Service) claimIdempotencyKey(ctx context.Context, key string) (*PaymentResponse, error) {
	if replay, err := s.replay(ctx, key); err != nil || replay != nil {
		return replay, err
	}

	reserved, err := s.idempotency.Reserve(ctx, key, s.idempotencyTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	if reserved {
		return nil, nil
	}

	// another request holds the key; it may have finished in the meantime
	if replay, err := s.replay(ctx, key); err != nil || replay != nil {
		return replay, err
	}
	return nil, ErrIdempotencyInProgress
}

func (s *Service) replay(ctx context.Context, key string) (*PaymentResponse, error) {
	resourceID, ok, err := s.idempotency.Lookup(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	if !ok {
		return nil, nil
	}
	id, err := uuid.Parse(resourceID)
	if err != nil {
		return nil, fmt.Errorf("idempotency key %s holds invalid payment id %q: %w", key, resourceID, err)
	}

	resp, err := s.GetPayment(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("payment %s recorded for idempotency key %s is gone: %w", id, key, err)
		}
		return nil, err
	}
	s.metrics.RecordReplay(ctx)
	resp.Replayed = true
	return resp, nil
}

func (s *Service) releaseIdempotencyKey(ctx context.Context, key string) {
	if err := s.idempotency.Release(ctx, key); err != nil {
		s.log(ctx).Warn("Failed to release idempotency key", zap.String("key", key), zap.Error(err))
	}
}

// toDomain parses the optional edit fields
func (r EditPaymentRequest) toDomain() (ledger.PaymentEdit, error) {
	var edit ledger.PaymentEdit
	if r.Amount != nil {
		amount, err := parseAmount("amount", *r.Amount)
		if err != nil {
			return edit, err
		}
		edit.Amount = &amount
	}
	if r.PaymentDate != nil {
		date, err := parseDate("payment_date", *r.PaymentDate)
		if err != nil {
			return edit, err
		}
		edit.PaymentDate = &date
	}
	edit.Notes = r.Notes
	return edit, nil
}

