package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Luna88k/msbuild/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const manifest = `
assembly: Contoso.Widgets
version: 1.4.0
types:
  - name: Contoso.Widgets.Widget
    accessibility: public
    members:
      - {kind: constructor, accessibility: public}
      - {kind: method, name: Spin, accessibility: public}
  - name: Contoso.Widgets.Helper
    accessibility: internal
`

// workspace switches to a fresh directory holding widgets.yaml.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("widgets.yaml", []byte(manifest), 0o644))
	return dir
}

func execute(ctx context.Context, args ...string) (string, error) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return execute(context.Background(), args...)
}

func TestGenerateToStdout(t *testing.T) {
	workspace(t)

	out, err := run(t, "generate", "widgets.yaml")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "// Assembly: Contoso.Widgets 1.4.0\n"), out)
	assert.Contains(t, out, "public class Widget")
	assert.Contains(t, out, "public void Spin() { }")
	assert.NotContains(t, out, "Helper")
}

func TestGenerateFlags(t *testing.T) {
	dir := workspace(t)

	_, err := run(t, "generate", "widgets.yaml", "--include-internals", "--no-header", "-o", "ref/Widgets.cs")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "ref", "Widgets.cs"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "// Assembly:")
	assert.Contains(t, string(data), "internal class Helper")
}

func TestGenerateUsesConfigFile(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, os.WriteFile("exclude.txt", []byte("# dropped\nT:Contoso.Widgets.Widget\n"), 0o644))
	conf := `
[filter]
include_internals = true
exclude_api_list = "exclude.txt"

[output]
path = "out/Widgets.cs"
`
	require.NoError(t, os.WriteFile("genapi.toml", []byte(conf), 0o644))

	_, err := run(t, "generate", "widgets.yaml")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out", "Widgets.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "internal class Helper")
	assert.NotContains(t, string(data), "class Widget")
}

func TestGenerateAPIListFlagIsRelativeToWorkingDirectory(t *testing.T) {
	workspace(t)
	require.NoError(t, os.Mkdir("conf", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("conf", "genapi.toml"), []byte("[generate]\nheader = false\n"), 0o644))
	require.NoError(t, os.WriteFile("hide.txt", []byte("M:Contoso.Widgets.Widget.Spin\n"), 0o644))

	out, err := run(t, "generate", "--config", filepath.Join("conf", "genapi.toml"), "--exclude-api-list", "hide.txt", "widgets.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "public class Widget")
	assert.NotContains(t, out, "Spin")
}

func TestGenerateConfigAPIListIsRelativeToConfigFile(t *testing.T) {
	workspace(t)
	require.NoError(t, os.Mkdir("conf", 0o755))
	conf := "[filter]\nexclude_api_list = \"hide.txt\"\n"
	require.NoError(t, os.WriteFile(filepath.Join("conf", "genapi.toml"), []byte(conf), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join("conf", "hide.txt"), []byte("M:Contoso.Widgets.Widget.Spin\n"), 0o644))

	out, err := run(t, "generate", "--config", filepath.Join("conf", "genapi.toml"), "widgets.yaml")
	require.NoError(t, err)
	assert.NotContains(t, out, "Spin")
}

func TestGenerateVersionConstraint(t *testing.T) {
	workspace(t)
	require.NoError(t, os.WriteFile("genapi.toml", []byte("[generate]\nversion_constraint = \">= 2.0\"\n"), 0o644))

	_, err := run(t, "generate", "widgets.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
}

func TestGenerateErrors(t *testing.T) {
	workspace(t)

	_, err := run(t, "generate", "missing.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	_, err = run(t, "generate", "widgets.yaml", "--workers", "-1")
	assert.Error(t, err)

	_, err = run(t, "generate")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	workspace(t)

	out, err := run(t, "check", "widgets.yaml", "Widgets.cs")
	require.ErrorIs(t, err, ErrStale)
	assert.Equal(t, ExitStale, ExitCode(err))
	assert.Contains(t, out, "does not exist")

	_, err = run(t, "generate", "widgets.yaml", "-o", "Widgets.cs")
	require.NoError(t, err)

	out, err = run(t, "check", "widgets.yaml", "Widgets.cs")
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")

	data, err := os.ReadFile("Widgets.cs")
	require.NoError(t, err)
	edited := strings.Replace(string(data), "Spin", "Twirl", 1)
	require.NoError(t, os.WriteFile("Widgets.cs", []byte(edited), 0o644))

	out, err = run(t, "check", "widgets.yaml", "Widgets.cs")
	require.ErrorIs(t, err, ErrStale)
	assert.Contains(t, out, "out of date")
	assert.Contains(t, out, "Twirl")
}

func TestConfigInitAndShow(t *testing.T) {
	workspace(t)

	out, err := run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "genapi.toml")
	assert.FileExists(t, "genapi.toml")

	_, err = run(t, "config", "init")
	require.Error(t, err)
	_, err = run(t, "config", "init", "--force")
	require.NoError(t, err)

	out, err = run(t, "config", "show", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"include_internals": false`)

	out, err = run(t, "config", "show", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "continue_on_error: false")

	_, err = run(t, "config", "show", "--format", "ini")
	assert.Error(t, err)
}

func TestConfigCommandsIgnoreBrokenConfig(t *testing.T) {
	workspace(t)
	require.NoError(t, os.WriteFile("genapi.toml", []byte("[generate]\nworkers = -3\n"), 0o644))

	_, err := run(t, "config", "init", "fresh.toml")
	require.NoError(t, err)

	_, err = run(t, "generate", "widgets.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate.workers")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"go_version"`)

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "genapi "), out)
}

func TestWatchRequiresOutput(t *testing.T) {
	workspace(t)

	_, err := run(t, "watch", "widgets.yaml")
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "-o")
}

func TestWatchRegenerates(t *testing.T) {
	dir := workspace(t)
	output := filepath.Join(dir, "Widgets.cs")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := execute(ctx, "watch", "widgets.yaml", "-o", output, "--debounce", "50ms")
		done <- err
	}()

	contains := func(s string) func() bool {
		return func() bool {
			data, err := os.ReadFile(output)
			return err == nil && strings.Contains(string(data), s)
		}
	}
	require.Eventually(t, contains("public void Spin()"), 5*time.Second, 20*time.Millisecond)

	updated := strings.Replace(manifest, "name: Spin", "name: Twirl", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widgets.yaml"), []byte(updated), 0o644))
	assert.Eventually(t, contains("public void Twirl()"), 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitStale, ExitCode(errors.Wrap(ErrStale, "Widgets.cs")))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
}
