package http

import (
	"net/http"

	"spendsmart/internal/auth"
	"spendsmart/internal/log"
	"spendsmart/internal/session"
)

// loadSession builds the request's auth.Session from the browser identity
// and restores whatever the store holds for it.
func (s *Server) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, ok := session.IDFromContext(ctx)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		opts := []auth.Option{
			auth.WithLogger(log.FromContext(ctx)),
			auth.WithClock(s.now),
		}
		if s.events != nil {
			opts = append(opts, auth.WithEvents(s.events))
		}
		sess := auth.NewSession(id, s.store, s.api, opts...)
		sess.Init(ctx)

		next.ServeHTTP(w, r.WithContext(auth.WithService(ctx, sess)))
	})
}

// requireAuth lets authenticated sessions through and sends everyone else
// to the login page.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := auth.FromContext(r.Context()).State()
		switch {
		case st.Loading:
			s.render(w, r, http.StatusOK, "loading", nil)
		case !st.IsAuthenticated:
			redirect(w, r, "/login")
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// requireGuest keeps authenticated sessions away from the login and
// registration pages.
func (s *Server) requireGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := auth.FromContext(r.Context()).State()
		switch {
		case st.Loading:
			s.render(w, r, http.StatusOK, "loading", nil)
		case st.IsAuthenticated:
			redirect(w, r, "/dashboard")
		default:
			next.ServeHTTP(w, r)
		}
	})
}
