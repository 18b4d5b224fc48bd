package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"dedup-service/internal/dedup/model"
)

func atoi(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// formInt: пустое поле даёт def; нечисло или значение меньше lo: ошибка (400).
// Верхнюю границу threshold проверяет сам Grouper.
func formInt(r *http.Request, name string, def, lo int) (int, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < lo {
		return 0, fmt.Errorf("invalid %s %q: want an integer >= %d", name, v, lo)
	}
	return i, nil
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// statusFor: ошибки данных пользователя: 4xx, всё прочее: 500.
func statusFor(err error) int {
	var (
		nsc *model.NoSuitableColumnError
		unk *model.UnknownColumnError
		bad *model.InvalidThresholdError
		mt  *model.MalformedTableError
	)
	switch {
	case errors.As(err, &nsc):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unk), errors.As(err, &bad), errors.As(err, &mt):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("dedup failed")
		msg = "internal error"
	}
	_ = writeJSON(w, status, map[string]string{"error": msg})
}
