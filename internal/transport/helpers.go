package transport

import (
	"net/http"

	"go.uber.org/zap"

	"shopgate/internal/middleware"
	"shopgate/internal/upstream"
)

// respondUpstreamError converts a failed upstream call into an inline error
// response. Server-reported messages pass through with their status; anything
// else (network, decode) becomes a 502 with the fallback message.
func respondUpstreamError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	if apiErr, ok := upstream.AsAPIError(err); ok {
		message := apiErr.Message
		if message == "" {
			message = fallback
		}
		middleware.RespondWithError(w, apiErr.StatusCode, message)
		return
	}
	logger.Error("Upstream call failed", zap.Error(err))
	middleware.RespondWithError(w, http.StatusBadGateway, fallback)
}
