package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Host         string   `yaml:"host"`
	Port         int      `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
	LogLevel     string   `yaml:"log_level"`
	LogFile      string   `yaml:"log_file"`
	MaxUploadMB  int      `yaml:"max_upload_mb"`
	UploadDir    string   `yaml:"upload_dir"` // куда складываем загрузку на время разбора
	Threshold    int      `yaml:"threshold"`  // порог схожести по умолчанию
	Limit        int      `yaml:"limit"`
	Keywords     []string `yaml:"keywords"`  // пусто: стандартный список
	ReportDB     string   `yaml:"report_db"` // пусто: архив отчётов выключен
}

func Defaults() Config {
	return Config{
		Host:         "127.0.0.1",
		Port:         8083,
		AllowOrigins: []string{"*"},
		LogLevel:     "info",
		LogFile:      "logs/dedup-service.log",
		MaxUploadMB:  64,
		UploadDir:    os.TempDir(),
		Threshold:    85,
	}
}

// Load: дефолты → YAML из CONFIG_FILE (если задан) → переменные окружения.
func Load() (Config, error) {
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setStr(&c.Host, "HOST")
	setInt(&c.Port, "PORT")
	setList(&c.AllowOrigins, "ALLOW_ORIGINS")
	setStr(&c.LogLevel, "LOG_LEVEL")
	setStr(&c.LogFile, "LOG_FILE")
	setInt(&c.MaxUploadMB, "MAX_UPLOAD_MB")
	setStr(&c.UploadDir, "UPLOAD_DIR")
	setInt(&c.Threshold, "DEDUP_THRESHOLD")
	setInt(&c.Limit, "DEDUP_LIMIT")
	setList(&c.Keywords, "DEDUP_KEYWORDS")
	setStr(&c.ReportDB, "REPORT_DB")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func setStr(dst *string, k string) { *dst = getenv(k, *dst) }

// нечисловое значение молча игнорируется, остаётся прежнее
func setInt(dst *int, k string) {
	if v, err := strconv.Atoi(getenv(k, "")); err == nil {
		*dst = v
	}
}

func setList(dst *[]string, k string) {
	v := getenv(k, "")
	if v == "" {
		return
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	*dst = out
}
