package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dedup-service/internal/config"
	"dedup-service/internal/dedup/model"
	"dedup-service/internal/dedup/service"
	"dedup-service/internal/fileio"
	"dedup-service/internal/middleware"
	"dedup-service/internal/store"
)

// Dedup возвращает http.HandlerFunc для POST /dedup.
// Поля формы: document (файл), column, threshold, limit, header_row, save.
// st может быть nil: тогда отчёты не сохраняются.
func Dedup(cfg config.Config, logger zerolog.Logger, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With().Str("req_id", middleware.GetRequestID(r)).Logger()

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				_ = writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
				return
			}
			_ = writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad multipart form: " + err.Error()})
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("document")
		if err != nil {
			_ = writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing document: " + err.Error()})
			return
		}
		defer file.Close()

		threshold, err := formInt(r, "threshold", cfg.Threshold, 0)
		if err != nil {
			_ = writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		limit, err := formInt(r, "limit", cfg.Limit, 0)
		if err != nil {
			_ = writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		headerRow, err := formInt(r, "header_row", 1, 1)
		if err != nil {
			_ = writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		opt := model.Options{
			Column:    strings.TrimSpace(r.FormValue("column")),
			Threshold: threshold,
			Limit:     limit,
			Keywords:  cfg.Keywords,
		}

		tbl, err := readStaged(cfg.UploadDir, file, header.Filename, headerRow)
		if err != nil {
			writeError(w, log, err)
			return
		}

		res, err := service.Run(tbl, opt, log)
		if err != nil {
			writeError(w, log, err)
			return
		}
		res.File = header.Filename

		if st != nil && toBool(r.FormValue("save"), true) {
			id := uuid.NewString()
			if err := st.Save(id, res); err != nil {
				log.Error().Err(err).Msg("save report")
			} else {
				res.ID = id
			}
		}

		if err := writeJSON(w, http.StatusOK, res); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}
		log.Info().
			Str("file", header.Filename).
			Int("rows", res.Rows).
			Int("groups", len(res.Groups)).
			Dur("elapsed", time.Since(start)).
			Msg("dedup request done")
	}
}

// readStaged кладёт загрузку во временный файл, разбирает её и удаляет файл на любом исходе.
func readStaged(dir string, src io.Reader, filename string, headerRow int) (*model.Table, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	f, err := os.CreateTemp(dir, "upload-"+uuid.NewString()+"-*"+strings.ToLower(filepath.Ext(filename)))
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	return fileio.ReadTable(f, filename, headerRow)
}

// Report: GET /reports/{id}.
func Report(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		res, ok, err := st.Get(id)
		if err != nil {
			_ = writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		if !ok {
			_ = writeJSON(w, http.StatusNotFound, map[string]string{"error": "report not found"})
			return
		}
		_ = writeJSON(w, http.StatusOK, res)
	}
}

// Reports: GET /reports?limit=N, новые первыми.
func Reports(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := st.List(atoi(r.URL.Query().Get("limit"), 50))
		if err != nil {
			_ = writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		if list == nil {
			list = []store.Summary{}
		}
		_ = writeJSON(w, http.StatusOK, list)
	}
}
