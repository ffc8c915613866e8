package envfile

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load parses a declarations file into a key -> value map. Files named
// *.yml/*.yaml are treated as docker-compose or Kubernetes ConfigMap/Secret
// documents; everything else is parsed as dotenv text.
func Load(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot read declarations file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yml" || ext == ".yaml" {
		return parseYAML(path)
	}
	return parseDotEnv(path)
}

// parseDotEnv parses KEY=VALUE text. Blank lines and #-comments are skipped;
// lines without an = are skipped silently.
func parseDotEnv(path string) (map[string]string, error) {
	vars := make(map[string]string)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := trimQuotes(strings.TrimSpace(parts[1]))

		if key != "" {
			vars[key] = value
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	return vars, nil
}

// parseYAML dispatches between docker-compose and Kubernetes layouts by
// shape: a top-level services map means compose, a ConfigMap/Secret kind
// means Kubernetes. Anything else yields an empty set.
func parseYAML(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if _, ok := doc["services"]; ok {
		return composeVars(doc), nil
	}

	kind, _ := doc["kind"].(string)
	if kind == "ConfigMap" || kind == "Secret" {
		return k8sVars(doc, kind), nil
	}

	return map[string]string{}, nil
}

// composeVars extracts environment entries from every compose service,
// accepting both the map form and the KEY=VALUE list form.
func composeVars(doc map[string]interface{}) map[string]string {
	vars := make(map[string]string)

	services, ok := doc["services"].(map[string]interface{})
	if !ok {
		return vars
	}

	for _, service := range services {
		serviceMap, ok := service.(map[string]interface{})
		if !ok {
			continue
		}
		switch env := serviceMap["environment"].(type) {
		case map[string]interface{}:
			for k, v := range env {
				vars[k] = fmt.Sprintf("%v", v)
			}
		case []interface{}:
			for _, item := range env {
				envStr, ok := item.(string)
				if !ok {
					continue
				}
				parts := strings.SplitN(envStr, "=", 2)
				if len(parts) == 2 {
					vars[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
				}
			}
		}
	}

	return vars
}

// k8sVars extracts the data section of a ConfigMap or Secret. Secret values
// are base64 encoded; undecodable values are kept as-is.
func k8sVars(doc map[string]interface{}, kind string) map[string]string {
	vars := make(map[string]string)

	data, ok := doc["data"].(map[string]interface{})
	if !ok {
		return vars
	}

	for k, v := range data {
		val, ok := v.(string)
		if !ok {
			continue
		}
		if kind == "Secret" {
			if decoded, err := base64.StdEncoding.DecodeString(val); err == nil {
				val = string(decoded)
			}
		}
		vars[k] = val
	}

	return vars
}

// trimQuotes removes surrounding quotes from a string
func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') ||
			(s[0] == '\'' && s[len(s)-1] == '\'') ||
			(s[0] == '`' && s[len(s)-1] == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
