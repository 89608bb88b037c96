// Package logging wraps log/slog with the helpers used across textsum:
// JSON or text output, level parsing, request ID propagation and
// context-carried loggers.
//
//	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.WithRequestID(ctx, slog.Default()).Info("processing submit")
//	}
package logging
