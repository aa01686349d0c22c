package auth

import "context"

type serviceKey struct{}

// WithService installs svc as the request's session.
func WithService(ctx context.Context, svc Service) context.Context {
	return context.WithValue(ctx, serviceKey{}, svc)
}

// FromContext returns the request's session, or NullSession when none was
// installed.
func FromContext(ctx context.Context) Service {
	if svc, ok := ctx.Value(serviceKey{}).(Service); ok && svc != nil {
		return svc
	}
	return NullSession{}
}
