// Package httpserver wraps net/http.Server with graceful shutdown, signal
// handling, functional options, and probe handlers.
//
// Run blocks until the context is cancelled, an interrupt signal arrives,
// or the listener fails, then drains in-flight requests within the
// configured shutdown timeout.
//
//	srv := httpserver.NewFromConfig(cfg,
//	    httpserver.WithLogger(log),
//	    httpserver.WithStartHook(func(l *slog.Logger) {
//	        l.Info("listening", "addr", cfg.Addr)
//	    }),
//	)
//	if err := srv.Run(ctx, router); err != nil { ... }
package httpserver
