package loader

import (
	"testing"
)

func getByPath(m map[string]any, path string) (any, bool) {
	var cur any = m
	start := 0
	for i := 0; i <= len(path); i++ {
		if i < len(path) && path[i] != '.' {
			continue
		}
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = mm[path[start:i]]
		if !ok {
			return nil, false
		}
		start = i + 1
	}
	return cur, true
}

func withEnviron(l *EnvLoader, env ...string) *EnvLoader {
	l.environ = func() []string { return env }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	loader := withEnviron(NewEnvLoader(DefaultEnvPrefix),
		"CODEINTEL_LOG_LEVEL=debug",
		"CODEINTEL_THEME=dracula",
		"CODEINTEL_HIGHLIGHT_SYNC_THRESHOLD=100",
		"CODEINTEL_LANGUAGE_DIRS=[\"/a\",\"/b\"]",
		"CODEINTEL_CACHE_TTL=1m",
		"HOME=/root",
	)

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"log.level", "debug"},
		{"highlight.theme", "dracula"},
		{"highlight.syncThreshold", int64(100)},
		{"highlight.cacheTTL", "1m"},
	}
	for _, tt := range tests {
		if val, ok := getByPath(config, tt.path); !ok || val != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, val, val, tt.want)
		}
	}

	dirs, ok := config["languageDirs"].([]any)
	if !ok || len(dirs) != 2 {
		t.Errorf("languageDirs = %v, want two entries", config["languageDirs"])
	}
	if _, ok := config["home"]; ok {
		t.Error("variables without the prefix must be ignored")
	}
}

func TestEnvLoader_RealEnvironment(t *testing.T) {
	t.Setenv("CODEINTEL_INDENT_TAB_WIDTH", "8")

	config, err := NewEnvLoader(DefaultEnvPrefix).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if val, ok := getByPath(config, "indent.tabWidth"); !ok || val != int64(8) {
		t.Errorf("indent.tabWidth = %v, want 8", val)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader(DefaultEnvPrefix)

	tests := []struct {
		env      string
		expected string
	}{
		{"CODEINTEL_INDENT_TAB_WIDTH", "indent.tabWidth"},
		{"CODEINTEL_LOG_LEVEL", "log.level"},
		{"CODEINTEL_SIMPLE", "simple"},
		{"CODEINTEL_HIGHLIGHT_DEBOUNCE_MS", "highlight.debounceMs"},
		{"CODEINTEL_HIGHLIGHT_THEME_FILE", "highlight.themeFile"},
	}

	for _, tt := range tests {
		got := loader.envToPath(tt.env)
		if got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"true", true},
		{"YES", true},
		{"off", false},
		{"1", int64(1)},
		{"0", int64(0)},
		{"-10", int64(-10)},
		{"3.14", 3.14},
		{"5m", "5m"},
		{"hello world", "hello world"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := parseValue(tt.input); got != tt.expected {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.expected, tt.expected)
		}
	}

	arr, ok := parseValue(`["a","b"]`).([]any)
	if !ok || len(arr) != 2 {
		t.Errorf("parseValue(array) = %v, want 2 elements", arr)
	}
	obj, ok := parseValue(`{"k":"v"}`).(map[string]any)
	if !ok || obj["k"] != "v" {
		t.Errorf("parseValue(object) = %v, want map", obj)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	loader := NewEnvLoaderWithMapping(DefaultEnvPrefix, nil)
	loader.AddMapping("CODEINTEL_STYLE", "highlight.theme")
	withEnviron(loader, "CODEINTEL_STYLE=github")

	config, _ := loader.Load()

	if val, ok := getByPath(config, "highlight.theme"); !ok || val != "github" {
		t.Errorf("highlight.theme = %v, want github", val)
	}
}
