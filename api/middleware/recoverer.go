package middleware

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/shopbalance-backend/api/responses"
	pkgerrors "github.com/angelmondragon/shopbalance-backend/pkg/errors"
	"github.com/angelmondragon/shopbalance-backend/pkg/logger"
)

// Recoverer turns a handler panic into an INTERNAL_ERROR envelope. A panic
// inside a rebuild has already rolled its transaction back by the time it
// reaches here.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err := fmt.Errorf("panic: %v", rec)
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"panic":  fmt.Sprint(rec),
						"method": r.Method,
						"path":   r.URL.Path,
					})
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
