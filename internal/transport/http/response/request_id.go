package response

import (
	"net/http"

	appCtx "github.com/ultimatetechie/ecommerce-api/internal/pkg/context"
)

// RequestIDFromContext extracts the request id the middleware stored, if any.
func RequestIDFromContext(r *http.Request) string {
	return appCtx.GetRequestID(r.Context())
}
