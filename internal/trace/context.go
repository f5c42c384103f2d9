package trace

import "context"

type (
	tracerKey struct{}
	spanKey   struct{}
)

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer returns a copy of ctx that carries t. A nil t stores Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// WithSpan records sp as the parent of spans started from the returned context.
func WithSpan(ctx context.Context, sp *Span) context.Context {
	return context.WithValue(ctx, spanKey{}, sp.ID())
}

// ParentID reports the id of the span recorded in ctx, or 0 at the root.
func ParentID(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(spanKey{}).(uint64)
	return id
}

// StartSpan begins a span on ctx's tracer, nested under ctx's current span,
// and returns a context in which the new span is current.
//
//	ctx, sp := trace.StartSpan(ctx, trace.ScopePass, "lex")
//	defer sp.End("")
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	sp := Begin(FromContext(ctx), scope, name, ParentID(ctx))
	if sp.ID() == 0 {
		return ctx, sp
	}
	return WithSpan(ctx, sp), sp
}
