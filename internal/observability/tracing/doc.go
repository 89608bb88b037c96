// Package tracing provides OpenTelemetry tracing for textsum.
//
// The HTTP middleware opens a server span per request; the summarize service
// opens child spans for the model call and the accuracy computation. Without a
// configured TracerProvider the global no-op provider is used.
//
//	handler := tracing.Middleware(mux)
//
//	ctx, span := tracing.GetTracer().Start(ctx, "summarize.model")
//	defer span.End()
package tracing
