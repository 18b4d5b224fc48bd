package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
)

func Recover(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					// recover стоит снаружи RequestID: id уже лежит в заголовке ответа
					rid := GetRequestID(r)
					if rid == "" {
						rid = w.Header().Get(HeaderRequestID)
					}
					logger.Error().
						Str("rid", rid).
						Interface("panic", rec).
						Bytes("stack", debug.Stack()).
						Msg("panic")
					w.Header().Set("Content-Type", "application/json; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal", "rid": rid})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
