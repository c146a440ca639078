package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"bank-dashboard/internal/utils"
)

// RequestLog stamps every request with a correlation ID (reusing the
// caller's X-Request-ID when present) and logs the round trip.
func RequestLog(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		startTime := time.Now()

		requestID := string(ctx.Request.Header.Peek("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.SetUserValue("request_id", requestID)
		ctx.Response.Header.Set("X-Request-ID", requestID)

		method := string(ctx.Method())
		path := string(ctx.Path())
		utils.LogRequest(method, path, requestID)

		next(ctx)

		utils.LogResponse(path, ctx.Response.StatusCode(), time.Since(startTime))
	}
}
