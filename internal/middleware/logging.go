// internal/middleware/logging.go

package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogMiddleware is an HTTP middleware that logs incoming requests using
// Logrus. Every route this server exposes is a websocket upgrade, so the
// offered subprotocol is logged alongside method, path, and duration.
func LogMiddleware(logger *logrus.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			fields := logrus.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"remote": r.RemoteAddr,
			}
			if proto := r.Header.Get("Sec-WebSocket-Protocol"); proto != "" {
				fields["subprotocol"] = proto
			}

			next.ServeHTTP(w, r)

			fields["duration"] = time.Since(start)
			logger.WithFields(fields).Info("HTTP Request")
		})
	}
}

// LogDuelConnect logs a duel socket upgrade together with the player id the
// session was assigned.
func LogDuelConnect(logger *logrus.Logger, remoteAddr string, playerID uuid.UUID) {
	logger.WithFields(logrus.Fields{
		"remote": remoteAddr,
		"player": playerID,
	}).Info("duel socket connected")
}

// LogDuelDisconnect logs a duel socket closing, with the read error when the
// connection did not end cleanly.
func LogDuelDisconnect(logger *logrus.Logger, remoteAddr string, playerID uuid.UUID, err error) {
	fields := logrus.Fields{
		"remote": remoteAddr,
		"player": playerID,
	}
	if err != nil {
		fields["error"] = err
	}
	logger.WithFields(fields).Info("duel socket disconnected")
}
