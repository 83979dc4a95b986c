// Package httpserver runs an http.Handler with graceful shutdown on context
// cancellation, SIGINT or SIGTERM.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	r.Get("/healthz", httpserver.LivenessHandler())
//	r.Get("/readyz", httpserver.ReadinessHandler(log,
//	    httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
//	))
//	if err := srv.Run(ctx, r); err != nil {
//	    return err
//	}
//
// Run wraps listen failures with ErrStart and Shutdown wraps drain failures
// with ErrShutdown.
package httpserver
