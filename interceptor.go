package restcall

import "context"

// InvokeFunc represents the next stage in an interceptor chain: planning,
// sending, and decoding one call.
type InvokeFunc func(ctx context.Context, args Args) (*Result, error)

// Interceptor wraps call execution. Registry-level interceptors run before
// call-level ones; within each level they run in declaration order.
//
//	func timing(ctx context.Context, args restcall.Args, next restcall.InvokeFunc) (*restcall.Result, error) {
//	    start := time.Now()
//	    res, err := next(ctx, args)
//	    if info, ok := restcall.CallFromContext(ctx); ok {
//	        log.Printf("%s took %v", info.Call, time.Since(start))
//	    }
//	    return res, err
//	}
//
// Interceptors can inspect or replace args before calling next, inspect the
// result after, or short-circuit by returning without calling next.
type Interceptor func(ctx context.Context, args Args, next InvokeFunc) (*Result, error)

// chainInterceptors combines interceptors into one. The first interceptor in
// the slice is the outermost (runs first).
func chainInterceptors(interceptors []Interceptor) Interceptor {
	if len(interceptors) == 0 {
		return nil
	}
	if len(interceptors) == 1 {
		return interceptors[0]
	}
	return func(ctx context.Context, args Args, next InvokeFunc) (*Result, error) {
		chain := next
		for i := len(interceptors) - 1; i >= 1; i-- {
			current := interceptors[i]
			inner := chain
			chain = func(ctx context.Context, args Args) (*Result, error) {
				return current(ctx, args, inner)
			}
		}
		return interceptors[0](ctx, args, chain)
	}
}
