package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sevenstarlining/sevenstar-api/internal/api/dto/common"
	"github.com/sevenstarlining/sevenstar-api/internal/api/validation"
	"github.com/sevenstarlining/sevenstar-api/internal/business"
	"github.com/sevenstarlining/sevenstar-api/internal/logging"
	"github.com/sevenstarlining/sevenstar-api/internal/ratelimit"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Outcome is the result of one submission. The concrete type is one of Sent,
// RateLimited, Invalid, Unconfigured, DeliveryFailed or InternalError.
type Outcome interface {
	outcome()
}

type Sent struct {
	ID string
}

type RateLimited struct {
	Result     ratelimit.Result
	RetryAfter int
}

type Invalid struct {
	Errors common.FieldErrors
}

// Unconfigured carries the phone number visitors should call instead
type Unconfigured struct {
	Phone string
}

type DeliveryFailed struct {
	Err error
}

type InternalError struct {
	Err error
}

func (Sent) outcome()           {}
func (RateLimited) outcome()    {}
func (Invalid) outcome()        {}
func (Unconfigured) outcome()   {}
func (DeliveryFailed) outcome() {}
func (InternalError) outcome()  {}

// ContactDeps bundles the collaborators of ContactService
type ContactDeps struct {
	Limiter   *ratelimit.Limiter
	Policy    ratelimit.Policy
	Stats     ratelimit.StatsStore
	Validator *validation.Validator
	Mailer    Mailer // nil when email is not configured
	Business  business.Info
	From      string
	To        string
}

// ContactService runs the contact form pipeline
type ContactService struct {
	deps   ContactDeps
	logger *logging.Logger
	tracer trace.Tracer
}

func NewContactService(deps ContactDeps) *ContactService {
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.NewLimiter()
	}
	if deps.Validator == nil {
		deps.Validator = validation.New()
	}
	return &ContactService{
		deps:   deps,
		logger: logging.GetLogger(),
		tracer: otel.Tracer("sevenstar-api/service"),
	}
}

// EmailConfigured reports whether submissions can be delivered
func (s *ContactService) EmailConfigured() bool {
	return s.deps.Mailer != nil
}

// Submit runs one submission through parse, rate check, validation and delivery.
// It never panics; unexpected failures become InternalError.
func (s *ContactService) Submit(ctx context.Context, body []byte, clientID string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("[CONTACT] panic while handling submission from %s: %v", clientID, r)
			out = InternalError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	raw, err := decodeObject(body)
	if err != nil {
		return InternalError{Err: err}
	}

	res := s.deps.Limiter.Check(clientID, s.deps.Policy)
	s.record(ctx, clientID, res.Success)
	if !res.Success {
		s.logger.Warn("[CONTACT] rate limit exceeded for %s", clientID)
		return RateLimited{Result: res, RetryAfter: res.RetryAfter(s.deps.Limiter.Now())}
	}

	req, fieldErrs := s.deps.Validator.ValidateContact(raw)
	if fieldErrs != nil {
		return Invalid{Errors: fieldErrs}
	}

	if req.IsLikelyBot() {
		s.logger.Warn("[CONTACT] honeypot filled by %s (website=%q)", clientID, req.Website)
	}

	if s.deps.Mailer == nil {
		s.logger.Warn("[CONTACT] email service not configured, submission from %s not delivered", clientID)
		return Unconfigured{Phone: s.deps.Business.Contact.Phone}
	}

	msg, err := RenderNotification(req, s.deps.Business, s.deps.From, s.deps.To, time.Now())
	if err != nil {
		return InternalError{Err: err}
	}

	ctx, span := s.tracer.Start(ctx, "contact.send",
		trace.WithAttributes(
			attribute.String("email.provider", s.deps.Mailer.Name()),
			attribute.Bool("contact.has_email", req.HasEmail()),
			attribute.Bool("contact.has_service", req.HasService()),
		))
	defer span.End()

	result, err := s.deps.Mailer.Send(ctx, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		return DeliveryFailed{Err: err}
	}
	span.SetAttributes(attribute.String("email.id", result.ID))

	s.logger.Info("[CONTACT] submission from %s delivered via %s (id=%s)", clientID, s.deps.Mailer.Name(), result.ID)
	return Sent{ID: result.ID}
}

func (s *ContactService) record(ctx context.Context, clientID string, allowed bool) {
	if s.deps.Stats == nil {
		return
	}
	err := s.deps.Stats.Record(ctx, ratelimit.StatsEvent{
		Layer:   "contact",
		Key:     clientID,
		Allowed: allowed,
		At:      s.deps.Limiter.Now(),
	})
	if err != nil {
		s.logger.Debug("[CONTACT] failed to record rate limit stats: %v", err)
	}
}

// decodeObject parses body as a single JSON object
func decodeObject(body []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedBody)
	}
	return raw, nil
}
