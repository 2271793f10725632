package checkout

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-checkout/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-checkout/pkg/errors"
	"github.com/angelmondragon/storefront-checkout/pkg/logger"
)

// View is the routed result of one checkout page request. Exactly one of
// Payment, Checkout or Receipt is set, matching Route.Kind.
type View struct {
	Route    RouteIntent
	Payment  *AuthorizationOutcome
	Checkout *GateOutcome
	Receipt  *Receipt
}

// Receipt is the thank-you page. Order is nil when no matching order exists.
type Receipt struct {
	Order *OrderSnapshot
}

// Router dispatches a classified request to exactly one flow.
type Router struct {
	classifier *Classifier
	engine     *Engine
	gate       *Gate
	finalizer  *Finalizer
	recorder   Recorder
	logg       *logger.Logger
}

// RouterOption customises a Router.
type RouterOption func(*Router)

// WithRecorder reports routing decisions to rec.
func WithRecorder(rec Recorder) RouterOption {
	return func(r *Router) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// NewRouter wires the checkout flows.
func NewRouter(classifier *Classifier, engine *Engine, gate *Gate, finalizer *Finalizer, logg *logger.Logger, opts ...RouterOption) (*Router, error) {
	if classifier == nil {
		return nil, fmt.Errorf("classifier required")
	}
	if engine == nil {
		return nil, fmt.Errorf("authorization engine required")
	}
	if gate == nil {
		return nil, fmt.Errorf("checkout gate required")
	}
	if finalizer == nil {
		return nil, fmt.Errorf("receipt finalizer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	r := &Router{
		classifier: classifier,
		engine:     engine,
		gate:       gate,
		finalizer:  finalizer,
		recorder:   nopRecorder{},
		logg:       logg,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Handle classifies req and runs the matching flow. Shopper-facing refusals are
// added to scope.Notices; the returned error is always a *pkgerrors.Error.
func (r *Router) Handle(ctx context.Context, req Request, scope Scope) (*View, error) {
	intent, err := r.classifier.Classify(ctx, req)
	if err != nil {
		return nil, r.fail(ctx, "checkout.classify_failed", err)
	}

	ctx = r.logg.WithField(ctx, "route", string(intent.Kind))
	if intent.OrderID > 0 {
		ctx = r.logg.WithOrderID(ctx, intent.OrderID)
	}
	if intent.Deprecated {
		r.logg.Warn(ctx, "checkout.legacy_link")
	}
	r.logg.Info(ctx, "checkout.route")
	r.recorder.ObserveRoute(string(intent.Kind), intent.Deprecated)

	view := &View{Route: intent}
	switch intent.Kind {
	case RoutePayForOrder:
		outcome, err := r.engine.Authorize(ctx, req, intent.OrderID, scope)
		if err != nil {
			return nil, r.fail(ctx, "checkout.authorize_failed", err)
		}
		r.noticeFor(ctx, outcome, scope.Notices)
		r.recorder.ObserveOutcome(string(outcome.Kind), outcome.reason())
		view.Payment = &outcome

	case RouteOrderReceived:
		key, _ := req.Key()
		order, err := r.finalizer.Finalize(ctx, intent.OrderID, CleanKey(key), scope)
		if err != nil {
			return nil, r.fail(ctx, "checkout.finalize_failed", err)
		}
		view.Receipt = &Receipt{Order: order}

	default:
		outcome, err := r.gate.Prepare(ctx, req, scope)
		if err != nil {
			return nil, r.fail(ctx, "checkout.prepare_failed", err)
		}
		r.recorder.ObserveGate(string(outcome.Kind))
		view.Checkout = &outcome
	}

	return view, nil
}

func (r *Router) noticeFor(ctx context.Context, outcome AuthorizationOutcome, notices NoticeSink) {
	switch outcome.Kind {
	case OutcomeRejected:
		r.logg.Info(r.logg.WithField(ctx, "reason", outcome.reason()), "checkout.payment_rejected")
		notices.Add(outcome.Rejection.Message, enums.NoticeSeverityError)
	case OutcomeShowLoginPrompt:
		notices.Add(outcome.LoginPrompt.Message, enums.NoticeSeverityNotice)
	}
}

func (r *Router) fail(ctx context.Context, event string, err error) error {
	if pkgerrors.As(err) == nil {
		err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout request failed")
	}
	r.logg.Error(ctx, event, err)
	return err
}
