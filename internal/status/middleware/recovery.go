package middleware

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
)

// recoveryWriter запоминает, начат ли уже ответ
type recoveryWriter struct {
	http.ResponseWriter
	started  bool
	hijacked bool
}

func (rw *recoveryWriter) WriteHeader(code int) {
	rw.started = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recoveryWriter) Write(b []byte) (int, error) {
	rw.started = true
	return rw.ResponseWriter.Write(b)
}

// Hijack отдаёт соединение websocket-апгрейдеру, после этого писать ответ нельзя
func (rw *recoveryWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	conn, buf, err := hijacker.Hijack()
	if err == nil {
		rw.hijacked = true
	}
	return conn, buf, err
}

// RecoveryMiddleware перехватывает panic в обработчиках status-сервера.
// A 500 is written only while the response has not started; a panic after a
// websocket upgrade is logged and the hijacked connection is left to its owner.
// http.ErrAbortHandler is re-raised so net/http aborts the response silently.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &recoveryWriter{ResponseWriter: w}

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				logger.Error("Panic recovered",
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"hijacked", rw.hijacked,
					"response_started", rw.started,
					"stack", string(debug.Stack()),
				)

				if rw.hijacked || rw.started {
					return
				}
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
