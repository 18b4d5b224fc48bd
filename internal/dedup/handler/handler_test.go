package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dedup-service/internal/config"
	"dedup-service/internal/dedup/model"
	"dedup-service/internal/middleware"
	"dedup-service/internal/store"
)

const productsCSV = "sku,Product_Name,price\nA1,Acme Corp,10\nA2,acme corp,11\nB1,Beta LLC,12\nA3,ACME CORP ,10\n"

func testConfig(t *testing.T) config.Config {
	cfg := config.Defaults()
	cfg.UploadDir = t.TempDir()
	return cfg
}

func newRouter(cfg config.Config, st *store.Store) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/dedup", Dedup(cfg, zerolog.Nop(), st))
	if st != nil {
		r.Get("/reports", Reports(st))
		r.Get("/reports/{id}", Report(st))
	}
	return r
}

func upload(t *testing.T, filename, body string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("document", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/dedup", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "staged upload must be removed")
}

func TestDedup_OK(t *testing.T) {
	cfg := testConfig(t)
	rec := httptest.NewRecorder()
	newRouter(cfg, nil).ServeHTTP(rec, upload(t, "products.csv", productsCSV, nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "products.csv", res.File)
	assert.Equal(t, "Product_Name", res.Column)
	assert.Equal(t, 85, res.Threshold)
	assert.Empty(t, res.ID)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, []int{0, 1, 3}, res.Groups[0].Indices)
	assertDirEmpty(t, cfg.UploadDir)
}

func TestDedup_FormOptions(t *testing.T) {
	cfg := testConfig(t)
	rec := httptest.NewRecorder()
	req := upload(t, "products.csv", productsCSV, map[string]string{"column": "sku", "threshold": "100"})
	newRouter(cfg, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "sku", res.Column)
	assert.Equal(t, 100, res.Threshold)
	assert.Empty(t, res.Groups)
}

func TestDedup_Errors(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		body     string
		fields   map[string]string
		status   int
	}{
		{"no text column", "n.csv", "a,b\n1,2\n3,4\n", nil, http.StatusUnprocessableEntity},
		{"unknown column", "products.csv", productsCSV, map[string]string{"column": "nope"}, http.StatusBadRequest},
		{"bad threshold", "products.csv", productsCSV, map[string]string{"threshold": "101"}, http.StatusBadRequest},
		{"unsupported type", "doc.pdf", "%PDF-1.4", nil, http.StatusBadRequest},
		{"empty file", "empty.csv", "", nil, http.StatusBadRequest},
		{"missing document", "", "", map[string]string{"column": "x"}, http.StatusBadRequest},
		{"threshold not a number", "products.csv", productsCSV, map[string]string{"threshold": "abc"}, http.StatusBadRequest},
		{"fractional threshold", "products.csv", productsCSV, map[string]string{"threshold": "90.5"}, http.StatusBadRequest},
		{"negative limit", "products.csv", productsCSV, map[string]string{"limit": "-1"}, http.StatusBadRequest},
		{"zero header row", "products.csv", productsCSV, map[string]string{"header_row": "0"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(t)
			rec := httptest.NewRecorder()
			newRouter(cfg, nil).ServeHTTP(rec, upload(t, tc.filename, tc.body, tc.fields))

			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
			assertDirEmpty(t, cfg.UploadDir)
		})
	}
}

func TestDedup_ChunkedBodyTooLarge(t *testing.T) {
	cfg := testConfig(t)
	h := middleware.LimitBytes(1024)(Dedup(cfg, zerolog.Nop(), nil))

	big := "Item\n" + strings.Repeat("some long product name\n", 400)
	req := upload(t, "big.csv", big, nil)
	req.ContentLength = -1 // как при Transfer-Encoding: chunked
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
	assertDirEmpty(t, cfg.UploadDir)
}

func TestFormInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?a=7&b=x&c=2.5&d=-3", nil)
	v, err := formInt(req, "a", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = formInt(req, "missing", 85, 0)
	require.NoError(t, err)
	assert.Equal(t, 85, v)

	for _, name := range []string{"b", "c", "d"} {
		_, err = formInt(req, name, 1, 0)
		assert.Error(t, err, name)
	}
}

func TestDedup_NotMultipart(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dedup", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	newRouter(testConfig(t), nil).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDedup_SavesReport(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	defer st.Close()

	r := newRouter(testConfig(t), st)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, upload(t, "products.csv", productsCSV, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.ID)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/"+res.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, res, got)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []store.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, res.ID, list[0].ID)
	assert.Equal(t, "products.csv", list[0].File)
	assert.Equal(t, 1, list[0].Groups)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDedup_SaveDisabledPerRequest(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	defer st.Close()

	rec := httptest.NewRecorder()
	newRouter(testConfig(t), st).ServeHTTP(rec, upload(t, "products.csv", productsCSV, map[string]string{"save": "false"}))
	require.Equal(t, http.StatusOK, rec.Code)

	list, err := st.List(0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&model.NoSuitableColumnError{}))
	assert.Equal(t, http.StatusBadRequest, statusFor(&model.UnknownColumnError{Column: "x"}))
	assert.Equal(t, http.StatusBadRequest, statusFor(&model.InvalidThresholdError{Threshold: -1}))
	assert.Equal(t, http.StatusBadRequest, statusFor(&model.MalformedTableError{File: "f", Err: os.ErrClosed}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(os.ErrClosed))
}

func TestAtoiToBool(t *testing.T) {
	assert.Equal(t, 7, atoi(" 7 ", 1))
	assert.Equal(t, 1, atoi("x", 1))
	assert.Equal(t, 1, atoi("", 1))
	assert.True(t, toBool("", true))
	assert.False(t, toBool("off", true))
	assert.True(t, toBool("YES", false))
}
