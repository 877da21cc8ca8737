package server

import "net/http"

// CallbackRouter serves the handful of routes the loopback listener exposes.
//
// Callback endpoints are GET-only: the authorization redirect arrives as a
// plain browser navigation, so every registered route carries a method guard.
type CallbackRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

// NewCallbackRouter creates an empty [CallbackRouter].
func NewCallbackRouter() *CallbackRouter {
	return &CallbackRouter{
		mux:         http.NewServeMux(),
		middlewares: []Middleware{},
	}
}

// Use adds [Middleware] to the router's stack. Middleware applies to handlers
// registered after the call, in the order it was added.
func (r *CallbackRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handler registers a [Handler] under every route it serves, wrapped with the
// middleware stack and the GET method guard.
func (r *CallbackRouter) Handler(handler Handler) {
	wrapped := r.apply(handler)

	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *CallbackRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// apply wraps a handler with the method guard and the middleware stack, in
// reverse order so the first middleware added observes the request first.
func (r *CallbackRouter) apply(handler http.Handler) http.Handler {
	wrapped := requireGet(handler)

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}

// requireGet rejects anything but GET before the handler runs.
func requireGet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, req)
	})
}
