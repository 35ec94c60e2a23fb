package mid

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/jrazmi/tasktracker/sdk/telemetry"
)

// Logger writes information about the request to the logs and echoes the
// trace id back to the caller.
func Logger(log *logger.Logger) web.Middleware {
	var tel telemetry.Telemetry

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			now := time.Now()
			traceID := tel.GetTraceID(ctx)

			if w := web.GetWriter(ctx); w != nil {
				w.Header().Set(telemetry.TraceHeader, traceID)
			}

			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path = fmt.Sprintf("%s?%s", path, r.URL.RawQuery)
			}

			log.InfoContext(ctx, "request started", "trace_id", traceID, "method", r.Method, "path", path,
				"remoteaddr", r.RemoteAddr)

			resp := next(ctx, r)

			log.InfoContext(ctx, "request completed", "trace_id", traceID, "method", r.Method, "path", path,
				"remoteaddr", r.RemoteAddr, "statuscode", web.StatusCode(resp), "since", time.Since(now).String())

			return resp
		}
	}
}
