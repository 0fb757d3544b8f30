// Package response provides the buffered response model used by the router.
//
// Handlers never write to the connection directly. They set a status, append
// headers and body content to a Buffer, and the dispatcher flushes it once:
//
//	buf := response.NewBuffer()      // status 500 until set
//	buf.AddHeader("Content-Type", "text/plain")
//	buf.Append("Parameters:\n")
//	buf.Append(map[string]any{"x": "1"})
//	buf.SetStatus(http.StatusOK)
//	n, err := buf.Flush(w)           // writes Content-Length, resets buf
package response
