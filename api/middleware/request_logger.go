// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vechain/nftstake/log"
)

// RequestLoggerMiddleware logs every request while enabled is set. Requests slower
// than slowQueriesThreshold are logged as warnings even when disabled; a zero
// threshold turns slow query logging off.
func RequestLoggerMiddleware(logger log.Logger, enabled *atomic.Bool, slowQueriesThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			verbose := enabled.Load()
			if !verbose && slowQueriesThreshold == 0 {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			next.ServeHTTP(w, r)
			elapsed := time.Since(start)

			ctx := []any{"method", r.Method, "uri", r.URL.String(), "elapsed", elapsed.Milliseconds()}
			switch {
			case slowQueriesThreshold > 0 && elapsed > slowQueriesThreshold:
				logger.Warn("slow API request", ctx...)
			case verbose:
				logger.Info("API request", ctx...)
			}
		})
	}
}
