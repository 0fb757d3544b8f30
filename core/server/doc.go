// Package server runs an http.Handler with graceful shutdown.
//
//	srv, err := server.NewFromConfig(server.Config{Port: 8000}, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, mux))
//	return g.Wait()
//
// Start blocks until the context is cancelled; Stop drains in-flight requests
// within the shutdown timeout. Run wraps both for errgroup.
//
// With Config.Serial (SERVER_SERIAL=true) requests are handled one at a time,
// so a slow handler stalls the whole process.
package server
