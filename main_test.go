package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIWithoutInputExitsNonzero(t *testing.T) {
	if os.Getenv("CADENZA_RUN_MAIN") == "1" {
		os.Args = []string{"cadenza"}
		main()
		return
	}

	// Re-run this test in a subprocess so main's os.Exit can be observed
	cmd := exec.Command(os.Args[0], "-test.run=TestCLIWithoutInputExitsNonzero$")
	cmd.Env = append(os.Environ(), "CADENZA_RUN_MAIN=1")
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
}
