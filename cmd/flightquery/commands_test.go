package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	out, err := run("resolve", "--anchor", "2025-06-01", "day", "after", "tomorrow")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-03\texact-phrase\n", out)
}

func TestResolveCommandReturnOf(t *testing.T) {
	out, err := run("resolve", "--anchor", "2025-06-01", "--return-of", "2025-03-10", "after 10 days")
	require.NoError(t, err)
	assert.Equal(t, "departure\t2025-03-10\tfuzzy-absolute\nreturn\t2025-03-20\trelative-offset\n", out)
}

func TestResolveCommandFailures(t *testing.T) {
	_, err := run("resolve", "--anchor", "2025-06-01", "whenever")
	assert.Error(t, err)

	_, err = run("resolve", "--anchor", "01/06/2025", "tomorrow")
	assert.Error(t, err)

	_, err = run("resolve")
	assert.Error(t, err)
}
