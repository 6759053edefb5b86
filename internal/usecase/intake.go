package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mpalashb/secureprime-digital-agency/internal/domain"
	"github.com/mpalashb/secureprime-digital-agency/pkg/apperror"
	"github.com/mpalashb/secureprime-digital-agency/pkg/email"
	"github.com/mpalashb/secureprime-digital-agency/pkg/logger"
	"github.com/mpalashb/secureprime-digital-agency/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const idempotencyStoreTimeout = 3 * time.Second

// Notifier sends best-effort notifications outside the request path
type Notifier interface {
	Dispatch(ctx context.Context, form string, msgs ...email.Message)
}

// IntakeDeps are the collaborators shared by every form pipeline
type IntakeDeps struct {
	Validate    *validator.Validate
	Notifier    Notifier
	Idempotency domain.IdempotencyStore // nil disables idempotency keys
	Brand       string
	StaffEmail  string // internal copy of each submission, empty disables it
}

// pipeline is the validate, persist, notify sequence shared by all forms.
// Req is the decoded request body, Rec the persisted row.
type pipeline[Req any, Rec any] struct {
	form        string
	failure     string
	validate    *validator.Validate
	notifier    Notifier
	idempotency domain.IdempotencyStore

	normalize func(*Req)
	build     func(*Req) *Rec
	create    func(context.Context, *Rec) error
	compose   func(*Rec) ([]email.Message, error)
	success   func(*Rec) string
}

func (p *pipeline[Req, Rec]) run(ctx context.Context, req *Req) (*domain.Receipt[Rec], error) {
	p.normalize(req)
	if err := p.validate.StructCtx(ctx, req); err != nil {
		res := validation.Summarize(err)
		return nil, apperror.Validation(res.Message, res.Fields)
	}

	key := p.idempotencyKey(ctx)
	if key != "" {
		prev, owned, err := p.claim(ctx, key)
		if err != nil {
			return nil, err
		}
		if prev != nil {
			return &domain.Receipt[Rec]{Message: p.success(prev), Record: prev, Replayed: true}, nil
		}
		if !owned {
			key = ""
		}
	}

	rec := p.build(req)
	if err := p.create(ctx, rec); err != nil {
		if key != "" {
			p.release(ctx, key)
		}
		return nil, apperror.Persistence(p.failure, err)
	}

	if key != "" {
		p.commit(ctx, key, rec)
	}

	p.notify(ctx, rec)

	return &domain.Receipt[Rec]{Message: p.success(rec), Record: rec}, nil
}

// notify hands the messages to the notifier. Nothing here can fail the request.
func (p *pipeline[Req, Rec]) notify(ctx context.Context, rec *Rec) {
	msgs, err := p.compose(rec)
	if err != nil {
		logger.Log.Error("Notification failed", "form", p.form, "error", err)
		return
	}
	if len(msgs) == 0 {
		return
	}
	p.notifier.Dispatch(ctx, p.form, msgs...)
}

func (p *pipeline[Req, Rec]) idempotencyKey(ctx context.Context) string {
	if p.idempotency == nil {
		return ""
	}
	key, _ := ctx.Value(domain.KeyIdempotencyKey).(string)
	if key == "" {
		return ""
	}
	return p.form + ":" + key
}

// claim reserves key for this request. It returns the earlier record when the
// key was already committed, and owned=false when the store is unreachable and
// the request should go ahead without deduplication.
func (p *pipeline[Req, Rec]) claim(ctx context.Context, key string) (prev *Rec, owned bool, err error) {
	ok, err := p.idempotency.Reserve(ctx, key)
	if err != nil {
		logger.Log.Warn("Idempotency store unavailable, accepting submission without deduplication", "form", p.form, "error", err)
		return nil, false, nil
	}
	if ok {
		return nil, true, nil
	}

	payload, found, err := p.idempotency.Load(ctx, key)
	if err != nil {
		logger.Log.Warn("Idempotency store unavailable, accepting submission without deduplication", "form", p.form, "error", err)
		return nil, false, nil
	}
	if !found {
		return nil, false, apperror.Conflict("This submission is already being processed", domain.ErrSubmissionInProgress)
	}

	var rec Rec
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, false, apperror.Unexpected(errors.Join(errors.New("decode idempotent replay"), err))
	}
	return &rec, false, nil
}

// commit stores the row under key. When that fails the key is released so
// retries insert again instead of waiting for the pending marker to expire.
func (p *pipeline[Req, Rec]) commit(ctx context.Context, key string, rec *Rec) {
	ctx, cancel := storeContext(ctx)
	defer cancel()

	payload, err := json.Marshal(rec)
	if err == nil {
		err = p.idempotency.Commit(ctx, key, payload)
	}
	if err != nil {
		logger.Log.Warn("Failed to record idempotency key", "form", p.form, "error", err)
		p.release(ctx, key)
	}
}

func (p *pipeline[Req, Rec]) release(ctx context.Context, key string) {
	ctx, cancel := storeContext(ctx)
	defer cancel()

	if err := p.idempotency.Release(ctx, key); err != nil {
		logger.Log.Warn("Failed to release idempotency key", "form", p.form, "error", err)
	}
}

// storeContext outlives the request: a client hanging up after the insert must not leave the key pending
func storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), idempotencyStoreTimeout)
}
