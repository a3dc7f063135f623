package restcall

import "context"

type contextKey struct {
	name string
}

var callInfoKey = &contextKey{"call_info"}

// CallInfo identifies the invocation currently in flight. It is placed on
// the context for the duration of Invoke so interceptors and loggers can
// name the call without threading extra parameters.
type CallInfo struct {
	Registry string
	Call     string
	Verb     string
	Path     string
}

// NewContext returns a context carrying call info, primarily for exercising
// interceptors outside an invocation.
func NewContext(ctx context.Context, info *CallInfo) context.Context {
	return withCallInfo(ctx, info)
}

// CallFromContext returns the in-flight call info, if any.
func CallFromContext(ctx context.Context) (*CallInfo, bool) {
	info, ok := ctx.Value(callInfoKey).(*CallInfo)
	return info, ok
}

func withCallInfo(ctx context.Context, info *CallInfo) context.Context {
	return context.WithValue(ctx, callInfoKey, info)
}
