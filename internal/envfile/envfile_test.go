package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_DotEnv(t *testing.T) {
	path := writeTemp(t, ".env", `# This is a comment
KEY1=value1
KEY2 = value2
KEY3="quoted value"
KEY4='single quoted'

malformed line without equals
=no-key
KEY5=value5
`)

	vars, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load declarations: %v", err)
	}

	expected := map[string]string{
		"KEY1": "value1",
		"KEY2": "value2",
		"KEY3": "quoted value",
		"KEY4": "single quoted",
		"KEY5": "value5",
	}

	if len(vars) != len(expected) {
		t.Errorf("Expected %d vars, got %d: %v", len(expected), len(vars), vars)
	}
	for key, want := range expected {
		if got, ok := vars[key]; !ok {
			t.Errorf("Missing key: %s", key)
		} else if got != want {
			t.Errorf("Key %s: expected %q, got %q", key, want, got)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Error("Expected error for a declarations file that does not exist")
	}
}

func TestLoad_DockerCompose(t *testing.T) {
	path := writeTemp(t, "docker-compose.yml", `services:
  web:
    image: node:20
    environment:
      API_KEY: abc123
      PORT: 3000
  worker:
    environment:
      - DB_URL=postgres://localhost/db
      - QUEUE_NAME=jobs
`)

	vars, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load compose file: %v", err)
	}

	if vars["API_KEY"] != "abc123" {
		t.Errorf("API_KEY: expected abc123, got %q", vars["API_KEY"])
	}
	if vars["PORT"] != "3000" {
		t.Errorf("PORT: expected 3000, got %q", vars["PORT"])
	}
	if vars["DB_URL"] != "postgres://localhost/db" {
		t.Errorf("DB_URL: expected postgres URL, got %q", vars["DB_URL"])
	}
	if vars["QUEUE_NAME"] != "jobs" {
		t.Errorf("QUEUE_NAME: expected jobs, got %q", vars["QUEUE_NAME"])
	}
}

func TestLoad_ConfigMap(t *testing.T) {
	path := writeTemp(t, "configmap.yaml", `apiVersion: v1
kind: ConfigMap
metadata:
  name: app-config
data:
  LOG_LEVEL: debug
  FEATURE_FLAG: "on"
`)

	vars, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load configmap: %v", err)
	}

	if vars["LOG_LEVEL"] != "debug" {
		t.Errorf("LOG_LEVEL: expected debug, got %q", vars["LOG_LEVEL"])
	}
	if vars["FEATURE_FLAG"] != "on" {
		t.Errorf("FEATURE_FLAG: expected on, got %q", vars["FEATURE_FLAG"])
	}
}

func TestLoad_SecretDecodesBase64(t *testing.T) {
	// "c2VjcmV0" is base64 for "secret"
	path := writeTemp(t, "secret.yaml", `apiVersion: v1
kind: Secret
metadata:
  name: app-secret
data:
  DB_PASSWORD: c2VjcmV0
`)

	vars, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load secret: %v", err)
	}

	if vars["DB_PASSWORD"] != "secret" {
		t.Errorf("DB_PASSWORD: expected decoded value, got %q", vars["DB_PASSWORD"])
	}
}

func TestTrimQuotes(t *testing.T) {
	cases := map[string]string{
		`"value"`: "value",
		`'value'`: "value",
		"`value`": "value",
		`value`:   "value",
		`"half`:   `"half`,
		`""`:      "",
		`x`:       "x",
	}

	for in, want := range cases {
		if got := trimQuotes(in); got != want {
			t.Errorf("trimQuotes(%q) = %q, want %q", in, got, want)
		}
	}
}
