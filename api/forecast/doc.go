// Package forecast exposes the load forecast over HTTP:
//
//	POST /predict   form or JSON request, JSON forecast response
//	GET  /          HTML form posting to /predict
//	GET  /healthz   liveness with the loaded model name
//
// Every response carries an X-Request-ID header.
package forecast
