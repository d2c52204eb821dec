// Package config resolves the runtime settings from three layers:
// built-in defaults, an optional YAML file, and DIAGNOSTICO_* environment
// overrides, in that precedence order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the settings file picked up from the working
// directory when --config is not given.
const DefaultFileName = "diagnostico.yaml"

// Settings are the resolved tunables for a diagnostic run.
type Settings struct {
	// CommandTimeoutSec bounds each external utility invocation.
	CommandTimeoutSec int `yaml:"command_timeout_sec" validate:"min=1,max=300"`

	// PingHost is the ICMP reachability target.
	PingHost string `yaml:"ping_host" validate:"required"`

	// PingCount is the number of echo requests sent.
	PingCount int `yaml:"ping_count" validate:"min=1,max=20"`

	// PingWaitSec is the per-reply wait passed to ping -W.
	PingWaitSec int `yaml:"ping_wait_sec" validate:"min=1,max=60"`

	// TCPAddr is the host:port target of the TCP connect check.
	TCPAddr string `yaml:"tcp_addr" validate:"required,hostname_port"`

	// HTTPURL is the target of the HTTP reachability check.
	HTTPURL string `yaml:"http_url" validate:"required,url"`

	// LookupHost is the name the DNS section resolves.
	LookupHost string `yaml:"lookup_host" validate:"required"`

	// NetTimeoutSec bounds the TCP dial, HTTP request and resolver lookup.
	NetTimeoutSec int `yaml:"net_timeout_sec" validate:"min=1,max=120"`

	// LogLines is how many recent lines each log source contributes.
	LogLines int `yaml:"log_lines" validate:"min=1,max=1000"`

	// HeadLines caps long listings in the report.
	HeadLines int `yaml:"head_lines" validate:"min=1,max=1000"`

	// ExportPath is the report file used when --export-txt is given
	// without --out.
	ExportPath string `yaml:"export_path" validate:"required"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		CommandTimeoutSec: 10,
		PingHost:          "1.1.1.1",
		PingCount:         3,
		PingWaitSec:       2,
		TCPAddr:           "1.1.1.1:443",
		HTTPURL:           "https://www.google.com",
		LookupHost:        "google.com",
		NetTimeoutSec:     5,
		LogLines:          50,
		HeadLines:         20,
		ExportPath:        "diagnostico-report.txt",
	}
}

// CommandTimeout returns the per-command bound as a duration.
func (s Settings) CommandTimeout() time.Duration {
	return time.Duration(s.CommandTimeoutSec) * time.Second
}

// NetTimeout returns the network check bound as a duration.
func (s Settings) NetTimeout() time.Duration {
	return time.Duration(s.NetTimeoutSec) * time.Second
}

// Load resolves settings. path is the --config value; empty means "use
// diagnostico.yaml from the working directory if it exists". A .env file
// in the working directory is folded into the environment first,
// best-effort, so DIAGNOSTICO_* variables can live there too.
func Load(path string) (Settings, error) {
	_ = godotenv.Load()

	s := Defaults()

	explicit := path != ""
	if path == "" {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to parse YAML in %q: %w", path, err)
		}
	case explicit:
		return Settings{}, fmt.Errorf("failed to read %q: %w", path, err)
	}

	if err := applyEnv(&s); err != nil {
		return Settings{}, err
	}

	if err := validateSettings(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// applyEnv lays DIAGNOSTICO_* variables over the settings. A set but
// unparseable value is an error, not a silent fallback.
func applyEnv(s *Settings) error {
	strVars := []struct {
		key string
		dst *string
	}{
		{"DIAGNOSTICO_PING_HOST", &s.PingHost},
		{"DIAGNOSTICO_TCP_ADDR", &s.TCPAddr},
		{"DIAGNOSTICO_HTTP_URL", &s.HTTPURL},
		{"DIAGNOSTICO_LOOKUP_HOST", &s.LookupHost},
		{"DIAGNOSTICO_EXPORT_PATH", &s.ExportPath},
	}
	for _, v := range strVars {
		if val, ok := os.LookupEnv(v.key); ok && val != "" {
			*v.dst = val
		}
	}

	intVars := []struct {
		key string
		dst *int
	}{
		{"DIAGNOSTICO_COMMAND_TIMEOUT_SEC", &s.CommandTimeoutSec},
		{"DIAGNOSTICO_PING_COUNT", &s.PingCount},
		{"DIAGNOSTICO_PING_WAIT_SEC", &s.PingWaitSec},
		{"DIAGNOSTICO_NET_TIMEOUT_SEC", &s.NetTimeoutSec},
		{"DIAGNOSTICO_LOG_LINES", &s.LogLines},
		{"DIAGNOSTICO_HEAD_LINES", &s.HeadLines},
	}
	for _, v := range intVars {
		val, ok := os.LookupEnv(v.key)
		if !ok || val == "" {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s: %q is not a number", v.key, val)
		}
		*v.dst = n
	}
	return nil
}

var validate = validator.New()

// validateSettings runs the struct tag validation with friendly messages.
func validateSettings(s Settings) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors converts validator errors into user-friendly messages.
func formatValidationErrors(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var messages []string
	for _, fe := range validationErrors {
		messages = append(messages, formatFieldError(fe))
	}

	return fmt.Errorf("invalid settings: %s", strings.Join(messages, "; "))
}

// formatFieldError converts a single field validation error to a
// human-readable message.
func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
