package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/autoload-priority/internal/autoload"
	"github.com/quantmind-br/autoload-priority/internal/domain"
	"github.com/quantmind-br/autoload-priority/internal/testutil"
)

// isolate keeps user config files and the working directory out of the test
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

// lockedBuffer serializes writes from concurrent batch workers
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func execute(t *testing.T, args ...string) (string, error) {
	out, _, err := executeWithStderr(t, args...)
	return out, err
}

func executeWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut lockedBuffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func staticPath(dir string) string {
	return filepath.Join(dir, "vendor", "composer", "autoload_static.php")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitDrift, exitCode(fmt.Errorf("x: %w", domain.ErrNotPromoted)))
	assert.Equal(t, exitError, exitCode(errors.New("boom")))
}

func TestPromoteCommand(t *testing.T) {
	isolate(t)
	dir := testutil.WriteProject(t, testutil.DefaultProject())

	out, err := execute(t, dir)

	require.NoError(t, err)
	assert.Contains(t, out, dir)
	assert.Contains(t, out, "promoted, 3 of 3 entries moved")
	assert.Equal(t, testutil.PromotedStaticManifest, testutil.ReadFile(t, staticPath(dir)))
}

func TestPromoteCommand_DryRun(t *testing.T) {
	isolate(t)
	dir := testutil.WriteProject(t, testutil.DefaultProject())

	out, err := execute(t, "--dry-run", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "would promote")
	assert.Equal(t, testutil.StaticManifest, testutil.ReadFile(t, staticPath(dir)))
}

func TestPromoteCommand_PackageFlag(t *testing.T) {
	isolate(t)
	fixture := testutil.DefaultProject()
	fixture.ComposerJSON = `{"name": "acme/app"}`
	dir := testutil.WriteProject(t, fixture)

	_, err := execute(t, "-p", "laravel/framework", "--package", "acme/helpers", dir)
	require.NoError(t, err)

	b, err := autoload.Parse(testutil.ReadFile(t, staticPath(dir)), autoload.StaticFormat)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"265b4faa2b3a9766332744949e83bf97",
		"f2a8c5e1b0c14a9d8d1c1d3f6a2b7e90",
		"0e6d7bf4a5811bfa5cf40c5ccd6fae6a",
	}, b.Entries.Keys())
}

func TestPromoteCommand_UnknownPackage(t *testing.T) {
	isolate(t)
	dir := testutil.WriteProject(t, testutil.DefaultProject())

	_, err := execute(t, "-p", "acme/missing", dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "acme/missing")
	assert.Equal(t, exitError, exitCode(err))
}

func TestPromoteCommand_ConfigFile(t *testing.T) {
	isolate(t)
	fixture := testutil.DefaultProject()
	fixture.ComposerJSON = `{"name": "acme/app"}`
	dir := testutil.WriteProject(t, fixture)

	cfgPath := filepath.Join(t.TempDir(), "custom.yaml")
	content := fmt.Sprintf("project:\n  dir: %s\npromote:\n  packages: [acme/helpers]\n", dir)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	_, err := execute(t, "--config", cfgPath)

	require.NoError(t, err)
	assert.Equal(t, testutil.PromotedStaticManifest, testutil.ReadFile(t, staticPath(dir)))
}

func TestPromoteCommand_MissingConfigFile(t *testing.T) {
	isolate(t)

	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestPromoteCommand_Manifest(t *testing.T) {
	isolate(t)
	a := testutil.WriteProject(t, testutil.DefaultProject())
	b := testutil.WriteProject(t, testutil.DefaultProject())

	batchPath := filepath.Join(t.TempDir(), "projects.yaml")
	content := fmt.Sprintf("projects:\n  - dir: %s\n  - dir: %s\n", a, b)
	require.NoError(t, os.WriteFile(batchPath, []byte(content), 0644))

	out, err := execute(t, "--manifest", batchPath, "-j", "2")

	require.NoError(t, err)
	assert.Contains(t, out, a)
	assert.Contains(t, out, b)
	assert.Equal(t, testutil.PromotedStaticManifest, testutil.ReadFile(t, staticPath(a)))
	assert.Equal(t, testutil.PromotedStaticManifest, testutil.ReadFile(t, staticPath(b)))
}

func TestPromoteCommand_ManifestProgress(t *testing.T) {
	isolate(t)
	a := testutil.WriteProject(t, testutil.DefaultProject())

	batchPath := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(batchPath, []byte(fmt.Sprintf("projects:\n  - dir: %s\n", a)), 0644))

	_, stderr, err := executeWithStderr(t, "--manifest", batchPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Promoting")

	require.NoError(t, os.WriteFile(staticPath(a), []byte(testutil.StaticManifest), 0644))
	_, stderr, err = executeWithStderr(t, "--manifest", batchPath, "--no-progress")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "Promoting")
}

func TestPromoteCommand_ManifestNotFound(t *testing.T) {
	isolate(t)

	_, err := execute(t, "--manifest", filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load batch file")
}

func TestCheckCommand(t *testing.T) {
	isolate(t)
	dir := testutil.WriteProject(t, testutil.DefaultProject())

	out, err := execute(t, "check", dir)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotPromoted)
	assert.Equal(t, exitDrift, exitCode(err))
	assert.Contains(t, out, "not promoted, 3 entries out of place")
	assert.Equal(t, testutil.StaticManifest, testutil.ReadFile(t, staticPath(dir)))

	_, err = execute(t, dir)
	require.NoError(t, err)

	out, err = execute(t, "check", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "already in order")
}

func TestWatchCommand_RejectsManifest(t *testing.T) {
	isolate(t)

	_, err := execute(t, "watch", "--manifest", "projects.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--manifest is not supported")
}

func TestDoctorCommand(t *testing.T) {
	isolate(t)
	dir := testutil.WriteProject(t, testutil.DefaultProject())

	out, err := execute(t, "doctor", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Config file: OK (defaults)")
	assert.Contains(t, out, "Composer metadata: OK (3 installed packages")
	assert.Contains(t, out, "Promotions: OK (1 fragments)")
	assert.Contains(t, out, "autoload_static.php: WARN (3 entries, needs promotion)")
	assert.Contains(t, out, "All critical checks passed!")

	_, err = execute(t, dir)
	require.NoError(t, err)

	out, err = execute(t, "doctor", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "autoload_static.php: OK (3 entries, in promoted order)")
}

func TestDoctorCommand_Failures(t *testing.T) {
	isolate(t)

	t.Run("composer install not run", func(t *testing.T) {
		fixture := testutil.DefaultProject()
		fixture.InstalledJSON = ""
		dir := testutil.WriteProject(t, fixture)

		out, err := execute(t, "doctor", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "Composer metadata: FAILED")
		assert.Contains(t, out, "Some checks failed")
	})

	t.Run("broken manifest", func(t *testing.T) {
		fixture := testutil.DefaultProject()
		fixture.Static = "<?php\n"
		dir := testutil.WriteProject(t, fixture)

		out, err := execute(t, "doctor", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "autoload_static.php: FAILED")
		assert.Contains(t, out, "Some checks failed")
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "autoload-priority")
}

func TestPrintReport(t *testing.T) {
	results := []*domain.ProjectResult{
		{
			Dir:      "/srv/app",
			Duration: 5 * time.Millisecond,
			Targets: []domain.TargetResult{
				{Path: "/srv/app/vendor/composer/autoload_static.php", Status: domain.StatusPromoted, Entries: 4, Moves: make([]autoload.Move, 2)},
				{Path: "/srv/app/vendor/composer/autoload_files.php", Status: domain.StatusSkipped},
			},
		},
		{
			Dir: "/srv/broken",
			Err: errors.New("installed.json not found"),
		},
		nil,
	}

	var buf bytes.Buffer
	printReport(&buf, results, domain.CommonOptions{})
	out := buf.String()

	assert.Contains(t, out, "/srv/app")
	assert.Contains(t, out, "promoted, 2 of 4 entries moved")
	assert.Contains(t, out, "skipped (not found)")
	assert.Contains(t, out, "/srv/broken")
	assert.Contains(t, out, "installed.json not found")
}

func TestInitCommand_Flags(t *testing.T) {
	cmd, _, err := newRootCmd().Find([]string{"init"})
	require.NoError(t, err)

	output := cmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "autoload-priority.yaml", output.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("accessible"))
}

func TestInitCommand_MissingConfigFile(t *testing.T) {
	isolate(t)

	_, err := execute(t, "--config", "missing.yaml", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
