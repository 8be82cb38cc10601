// Package config assembles application settings from defaults, an optional
// TOML file, and environment overrides, in that order.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFile is consulted when no explicit config path is given.
const DefaultFile = "resumepress.toml"

// Config holds all application settings.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Payment PaymentConfig `toml:"payment"`
	PDF     PDFConfig     `toml:"pdf"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	Path     string `toml:"path"`
	InMemory bool   `toml:"in_memory"`
}

// PaymentConfig holds the external checkout contract. CheckoutURL is opaque;
// the provider redirects back with ?payment=success on completion.
type PaymentConfig struct {
	CheckoutURL string `toml:"checkout_url"`
	SupportLink string `toml:"support_link"`
}

// PDFConfig holds Chromium rendering settings.
type PDFConfig struct {
	ChromiumPath    string   `toml:"chromium_path"`
	Headless        bool     `toml:"headless"`
	TimeoutSeconds  int      `toml:"timeout_seconds"`
	PageSize        string   `toml:"page_size"`
	Scale           float64  `toml:"scale"`
	Supersample     float64  `toml:"supersample"`
	PrintBackground bool     `toml:"print_background"`
	Args            []string `toml:"args"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
		},
		Storage: StorageConfig{
			Path: "resumepress.db",
		},
		Payment: PaymentConfig{
			CheckoutURL: "https://checkout.stripe.com/pay/resumepress-demo",
			SupportLink: "https://wa.me/15550100200",
		},
		PDF: PDFConfig{
			Headless:        true,
			TimeoutSeconds:  60,
			PageSize:        "A4",
			Scale:           1.0,
			Supersample:     2.0,
			PrintBackground: true,
		},
	}
}

// Load builds the effective configuration. A missing default file is fine; a
// missing explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if host := os.Getenv("HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if url := os.Getenv("PAYMENT_CHECKOUT_URL"); url != "" {
		cfg.Payment.CheckoutURL = url
	}
	if link := os.Getenv("SUPPORT_LINK"); link != "" {
		cfg.Payment.SupportLink = link
	}
	if path := os.Getenv("PDF_CHROMIUM_PATH"); path != "" {
		cfg.PDF.ChromiumPath = path
	}
	if headless := os.Getenv("PDF_HEADLESS"); headless != "" {
		if parsed, err := strconv.ParseBool(headless); err == nil {
			cfg.PDF.Headless = parsed
		}
	}
	if timeout := os.Getenv("PDF_TIMEOUT"); timeout != "" {
		if parsed, err := strconv.Atoi(timeout); err == nil && parsed > 0 {
			cfg.PDF.TimeoutSeconds = parsed
		}
	}
	if size := os.Getenv("PDF_PAGE_SIZE"); size != "" {
		cfg.PDF.PageSize = size
	}
	if scale := os.Getenv("PDF_SCALE"); scale != "" {
		if parsed, err := strconv.ParseFloat(scale, 64); err == nil {
			cfg.PDF.Scale = parsed
		}
	}
	if supersample := os.Getenv("PDF_SUPERSAMPLE"); supersample != "" {
		if parsed, err := strconv.ParseFloat(supersample, 64); err == nil {
			cfg.PDF.Supersample = parsed
		}
	}
	if printBg := os.Getenv("PDF_PRINT_BACKGROUND"); printBg != "" {
		if parsed, err := strconv.ParseBool(printBg); err == nil {
			cfg.PDF.PrintBackground = parsed
		}
	}
	if args := os.Getenv("PDF_CHROMIUM_ARGS"); args != "" {
		cfg.PDF.Args = splitCSV(args)
	}
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
