// Package cookie parses Cookie request headers and formats Set-Cookie values.
//
// Parsing is deliberately lenient and mirrors what browsers actually send:
//
//	c := cookie.Parse(r.Header.Values("Cookie"))
//	// "a=1; b=2; c" -> {"a": "1", "b": "2", "c": nil}
//	if id, ok := c.Get("session"); ok {
//		// ...
//	}
//
// Format builds the response side:
//
//	cookie.Format("session", id, cookie.Options{})
//	// "session=<id>;"
//
//	cookie.Format("session", id, cookie.NewOptions(cookie.WithPath("/"), cookie.WithHTTPOnly(true)))
//	// "session=<id>; Path=/; HttpOnly;"
package cookie
