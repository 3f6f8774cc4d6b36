//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"go.trai.ch/lessen/internal/adapters/config"
	"go.trai.ch/lessen/internal/core/domain"
)

var lessenBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "lessen-e2e-*")
	if err != nil {
		panic(err)
	}

	lessenBinary = filepath.Join(tmpDir, "lessen")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", lessenBinary, "./cmd/lessen")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build lessen binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	// Scripts run in production mode unless they opt into dev mode.
	env.Setenv(config.DevEnvVar, "false")

	binDir := filepath.Dir(lessenBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, domain.DirPerm); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	return nil
}
