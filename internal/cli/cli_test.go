package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tinyhook/tinyhook/internal/build"
	"github.com/tinyhook/tinyhook/internal/config"
)

// workspace switches into a fresh directory with no environment overrides.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(config.EnvRegistry, "")
	t.Setenv(config.EnvCatalog, "")
	t.Setenv(config.EnvLogDir, "")
	return dir
}

// execute runs tinyhook in-process and captures its output.
func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := ExecuteContext(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func readRegistry(t *testing.T, dir string) map[string]map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "data", "installed.json"))
	if err != nil {
		t.Fatalf("failed to read registry: %v", err)
	}
	var reg map[string]map[string]interface{}
	if err := json.Unmarshal(data, &reg); err != nil {
		t.Fatalf("registry is not valid JSON: %v", err)
	}
	return reg
}

func writeRegistry(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "data", "installed.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create data dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write registry: %v", err)
	}
	return path
}

func TestHookCommand(t *testing.T) {
	dir := workspace(t)

	stdout, _, code := execute(t, "hook", "numpy")
	if code != ExitOK {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, "Hooked numpy (version 1.0)") {
		t.Errorf("unexpected output: %q", stdout)
	}

	reg := readRegistry(t, dir)
	rec, ok := reg["numpy"]
	if !ok {
		t.Fatal("numpy not recorded")
	}
	if rec["version"] != "1.0" || rec["source_type"] != "local_path" || rec["source_value"] != "local/numpy" {
		t.Errorf("unexpected record: %v", rec)
	}

	t.Run("second hook reports already installed", func(t *testing.T) {
		before, _ := os.ReadFile(filepath.Join(dir, "data", "installed.json"))
		stdout, _, code := execute(t, "hook", "numpy")
		if code != ExitOK {
			t.Errorf("exit code = %d, want 0", code)
		}
		if !strings.Contains(stdout, `Package "numpy" is already installed (version 1.0)`) {
			t.Errorf("unexpected output: %q", stdout)
		}
		after, _ := os.ReadFile(filepath.Join(dir, "data", "installed.json"))
		if !bytes.Equal(before, after) {
			t.Error("registry changed on duplicate hook")
		}
	})

	t.Run("invalid name fails", func(t *testing.T) {
		_, stderr, code := execute(t, "hook", "../evil")
		if code != ExitFailure {
			t.Errorf("exit code = %d, want 1", code)
		}
		if stderr == "" {
			t.Error("expected an error message on stderr")
		}
	})
}

func TestDryRunLeavesDiskUntouched(t *testing.T) {
	dir := workspace(t)

	for _, args := range [][]string{
		{"hook", "numpy", "--dry-run"},
		{"run", "numpy", "--dry-run"},
		{"list", "--dry-run"},
		{"remove", "numpy", "--dry-run"},
	} {
		if _, _, code := execute(t, args...); code != ExitOK {
			t.Errorf("%v: exit code = %d", args, code)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "data")); !os.IsNotExist(err) {
		t.Errorf("dry run created files: %v", err)
	}

	stdout, _, _ := execute(t, "hook", "numpy", "--dry-run")
	if !strings.Contains(stdout, "[Dry Run] Would hook numpy") {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestRunCommand(t *testing.T) {
	dir := workspace(t)

	t.Run("not installed", func(t *testing.T) {
		stdout, _, code := execute(t, "run", "numpy")
		if code != ExitOK {
			t.Errorf("exit code = %d", code)
		}
		if !strings.Contains(stdout, `Package "numpy" is not installed`) {
			t.Errorf("unexpected output: %q", stdout)
		}
	})

	t.Run("installed", func(t *testing.T) {
		execute(t, "hook", "numpy")
		stdout, _, code := execute(t, "run", "numpy")
		if code != ExitOK {
			t.Errorf("exit code = %d", code)
		}
		if !strings.Contains(stdout, "Running numpy...") {
			t.Errorf("unexpected output: %q", stdout)
		}
	})

	t.Run("suggests close names", func(t *testing.T) {
		stdout, _, _ := execute(t, "run", "npy")
		if !strings.Contains(stdout, "Did you mean: numpy?") {
			t.Errorf("expected suggestion, got %q", stdout)
		}
	})

	t.Run("malformed registry degrades to not installed", func(t *testing.T) {
		writeRegistry(t, dir, "{broken")
		stdout, _, code := execute(t, "run", "numpy")
		if code != ExitOK {
			t.Errorf("exit code = %d", code)
		}
		if !strings.Contains(stdout, "Could not read registry") || !strings.Contains(stdout, "is not installed") {
			t.Errorf("unexpected output: %q", stdout)
		}
	})
}

func TestListCommand(t *testing.T) {
	workspace(t)

	stdout, _, code := execute(t, "list")
	if code != ExitOK || !strings.Contains(stdout, "No packages installed") {
		t.Errorf("empty list: code=%d output=%q", code, stdout)
	}

	execute(t, "hook", "beta")
	execute(t, "hook", "alpha")

	stdout, _, _ = execute(t, "list")
	a := strings.Index(stdout, "alpha - version 1.0")
	b := strings.Index(stdout, "beta - version 1.0")
	if a < 0 || b < 0 || a > b {
		t.Errorf("expected sorted listing, got %q", stdout)
	}

	t.Run("quiet suppresses listing", func(t *testing.T) {
		stdout, _, code := execute(t, "list", "-q")
		if code != ExitOK || stdout != "" {
			t.Errorf("quiet list: code=%d output=%q", code, stdout)
		}
	})
}

func TestRemoveCommand(t *testing.T) {
	dir := workspace(t)

	stdout, _, code := execute(t, "remove", "alpha")
	if code != ExitOK || !strings.Contains(stdout, `Package "alpha" not found: no packages installed`) {
		t.Errorf("remove on empty: code=%d output=%q", code, stdout)
	}

	execute(t, "hook", "alpha")
	execute(t, "hook", "beta")

	stdout, _, _ = execute(t, "remove", "alpha")
	if !strings.Contains(stdout, "Removed alpha") {
		t.Errorf("unexpected output: %q", stdout)
	}
	reg := readRegistry(t, dir)
	if _, ok := reg["alpha"]; ok {
		t.Error("alpha still recorded")
	}
	if _, ok := reg["beta"]; !ok {
		t.Error("beta should remain")
	}

	stdout, _, _ = execute(t, "remove", "alpha")
	if !strings.Contains(stdout, `Package "alpha" not found`) {
		t.Errorf("unexpected output: %q", stdout)
	}

	t.Run("notices survive quiet", func(t *testing.T) {
		stdout, _, _ := execute(t, "remove", "gamma", "-q")
		if !strings.Contains(stdout, `Package "gamma" not found`) {
			t.Errorf("notice suppressed by quiet: %q", stdout)
		}
	})
}

func TestMalformedRegistryIsNeverOverwritten(t *testing.T) {
	dir := workspace(t)
	path := writeRegistry(t, dir, "{not json")

	for _, args := range [][]string{
		{"hook", "numpy"},
		{"remove", "numpy"},
		{"list"},
	} {
		_, stderr, code := execute(t, args...)
		if code != ExitFailure {
			t.Errorf("%v: exit code = %d, want 1", args, code)
		}
		if stderr == "" {
			t.Errorf("%v: expected error on stderr", args)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read registry: %v", err)
	}
	if string(data) != "{not json" {
		t.Errorf("registry was modified: %q", data)
	}
}

func TestRegistryFlag(t *testing.T) {
	dir := workspace(t)
	custom := filepath.Join(dir, "state", "pkgs.json")

	if _, _, code := execute(t, "--registry", custom, "hook", "numpy"); code != ExitOK {
		t.Fatalf("exit code = %d", code)
	}
	data, err := os.ReadFile(custom)
	if err != nil {
		t.Fatalf("custom registry not written: %v", err)
	}
	if !strings.Contains(string(data), `"numpy"`) {
		t.Errorf("unexpected registry: %s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "installed.json")); !os.IsNotExist(err) {
		t.Error("default registry should not be created")
	}
}

func TestInfoCommand(t *testing.T) {
	dir := workspace(t)
	catalog := `{"packages": {"numpy": {"version": "1.23.0", "source_type": "remote_url", "source_value": "https://pypi.org/numpy/1.23.0/", "description": "Numerical computing library"}}}`
	if err := os.WriteFile(filepath.Join(dir, "repo.json"), []byte(catalog), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	stdout, _, code := execute(t, "info", "numpy")
	if code != ExitOK {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "1.23.0") || !strings.Contains(stdout, "Numerical computing library") {
		t.Errorf("unexpected output: %q", stdout)
	}

	stdout, _, code = execute(t, "info", "numpi")
	if code != ExitOK || !strings.Contains(stdout, "not found in catalog") {
		t.Errorf("absent package: code=%d output=%q", code, stdout)
	}

	if _, _, code := execute(t, "info", "numpy", "--catalog", filepath.Join(dir, "missing.json")); code != ExitFailure {
		t.Errorf("missing catalog: exit code = %d, want 1", code)
	}
}

func TestUsageErrors(t *testing.T) {
	workspace(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "unknown command", args: []string{"install", "numpy"}, want: ExitUsage},
		{name: "missing argument", args: []string{"hook"}, want: ExitUsage},
		{name: "too many arguments", args: []string{"remove", "a", "b"}, want: ExitUsage},
		{name: "unknown flag", args: []string{"list", "--bogus"}, want: ExitUsage},
		{name: "no arguments prints help", args: nil, want: ExitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, code := execute(t, tt.args...)
			if code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
		})
	}

	t.Run("unknown command suggests a close match", func(t *testing.T) {
		_, stderr, _ := execute(t, "hok")
		if !strings.Contains(stderr, `"hook"`) {
			t.Errorf("expected suggestion in %q", stderr)
		}
	})
}

func TestVersionCommand(t *testing.T) {
	workspace(t)

	stdout, _, code := execute(t, "--version")
	if code != ExitOK {
		t.Fatalf("exit code = %d", code)
	}
	if strings.TrimSpace(stdout) != build.Banner() {
		t.Errorf("--version = %q, want %q", stdout, build.Banner())
	}

	stdout, _, _ = execute(t, "version", "--short")
	if strings.TrimSpace(stdout) != build.Version() {
		t.Errorf("version --short = %q", stdout)
	}

	stdout, _, _ = execute(t, "version", "--json")
	var info VersionInfo
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("version --json is not JSON: %v", err)
	}
	if info.Version != build.Version() {
		t.Errorf("Version = %q", info.Version)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	workspace(t)

	stdout, _, _ := execute(t, "list", "-q")
	if stdout != "" {
		t.Errorf("quiet run printed %q", stdout)
	}
	stdout, _, _ = execute(t, "list")
	if !strings.Contains(stdout, "No packages installed") {
		t.Errorf("quiet leaked into next invocation: %q", stdout)
	}
}

func TestLogsCommand(t *testing.T) {
	dir := workspace(t)
	logs := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logs, 0755); err != nil {
		t.Fatalf("failed to create logs dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(logs, "agent_run.log"), []byte("[INFO] hello\n"), 0644); err != nil {
		t.Fatalf("failed to write log: %v", err)
	}

	var stdout, stderr bytes.Buffer
	s := &session{stdout: &stdout, stderr: &stderr}
	s.out = NewOutput(&stdout, &stderr, false, false)
	root := newRootCmd(s)
	root.SetIn(strings.NewReader("list\nexit\n"))
	root.SetArgs([]string{"logs", logs})

	if err := root.Execute(); err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "agent_run.log") {
		t.Errorf("log file not listed:\n%s", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "data")); !os.IsNotExist(err) {
		t.Error("logs must not touch the registry")
	}
}

func TestDryRunQuietPrintsNothing(t *testing.T) {
	dir := workspace(t)
	execute(t, "hook", "numpy")
	execute(t, "hook", "alpha")
	path := filepath.Join(dir, "data", "installed.json")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read registry: %v", err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{name: "hook", args: []string{"hook", "pandas", "--dry-run", "-q"}},
		{name: "run", args: []string{"run", "numpy", "--dry-run", "-q"}},
		{name: "list", args: []string{"list", "--dry-run", "-q"}},
		{name: "remove", args: []string{"remove", "numpy", "--dry-run", "--quiet"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := execute(t, tt.args...)
			if code != ExitOK {
				t.Errorf("exit code = %d, want 0", code)
			}
			if stdout != "" || stderr != "" {
				t.Errorf("expected no output, got stdout=%q stderr=%q", stdout, stderr)
			}
			after, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read registry: %v", err)
			}
			if !bytes.Equal(before, after) {
				t.Errorf("registry changed:\nbefore: %s\nafter:  %s", before, after)
			}
		})
	}
}

func TestNonStringRegistryField(t *testing.T) {
	dir := workspace(t)
	content := `{"pkg": {"version": null}, "n": {"version": 2}}`
	path := writeRegistry(t, dir, content)

	_, stderr, code := execute(t, "list")
	if code != ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, `registry entry "n" has a non-string field`) {
		t.Errorf("unexpected error: %q", stderr)
	}
	if strings.Contains(stderr, "invalid JSON syntax") {
		t.Errorf("type mismatch reported as syntax error: %q", stderr)
	}

	data, _ := os.ReadFile(path)
	if string(data) != content {
		t.Errorf("registry was modified: %q", data)
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	dir := workspace(t)

	_, stderr, code := execute(t, "--config", filepath.Join(dir, "tinyhok.yaml"), "list")
	if code != ExitFailure {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "configuration file not found") {
		t.Errorf("unexpected error: %q", stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "data")); !os.IsNotExist(err) {
		t.Error("registry must not be initialized when config fails")
	}

	cfgPath := filepath.Join(dir, "tinyhook.yaml")
	if err := os.WriteFile(cfgPath, []byte("registry_path: state/pkgs.json\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, _, code := execute(t, "--config", cfgPath, "hook", "numpy"); code != ExitOK {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if _, err := os.Stat(filepath.Join(dir, "state", "pkgs.json")); err != nil {
		t.Errorf("configured registry not written: %v", err)
	}
}

func TestInfoCatalogFailures(t *testing.T) {
	dir := workspace(t)
	malformed := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(malformed, []byte("{broken"), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	tests := []struct {
		name    string
		catalog string
		want    string
	}{
		{name: "missing", catalog: filepath.Join(dir, "missing.json"), want: "not found (use --catalog or TINYHOOK_CATALOG)"},
		{name: "malformed", catalog: malformed, want: "is malformed"},
		{name: "missing parent directory", catalog: filepath.Join(dir, "sub", "repo.json"), want: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := execute(t, "info", "numpy", "--catalog", tt.catalog)
			if code != ExitFailure {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.want)
			}
		})
	}
}

func TestUnknownCommandWritesHelpToStderr(t *testing.T) {
	workspace(t)

	stdout, stderr, code := execute(t, "hok", "numpy")
	if code != ExitUsage {
		t.Errorf("exit code = %d, want 2", code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "Usage:") || !strings.Contains(stderr, `unknown command "hok"`) {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestVersionHonorsQuiet(t *testing.T) {
	workspace(t)

	for _, args := range [][]string{
		{"version", "-q"},
		{"version", "--short", "-q"},
		{"--version", "-q"},
	} {
		if stdout, _, code := execute(t, args...); code != ExitOK || stdout != "" {
			t.Errorf("%v: code=%d stdout=%q", args, code, stdout)
		}
	}

	stdout, _, _ := execute(t, "version", "--json", "-q")
	var info VersionInfo
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Errorf("version --json should print under quiet: %v (%q)", err, stdout)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
