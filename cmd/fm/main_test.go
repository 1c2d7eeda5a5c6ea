package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ProducesResultFile(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.txt")
	outputPath := filepath.Join(dir, "out.txt")

	input := "0.5\nNET N1 a b ;\nNET N2 b c ;\nNET N3 c d ;\n"
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0o644))

	require.NoError(t, run(inputPath, outputPath, false))

	out, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "Cutsize = "))
}

func TestRun_DumpDoesNotAffectResult(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.txt")
	outputPath := filepath.Join(dir, "out.txt")

	input := "0.5\nNET N1 a b ;\nNET N2 b c ;\nNET N3 c d ;\n"
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0o644))

	plainPath := filepath.Join(dir, "plain.txt")
	require.NoError(t, run(inputPath, plainPath, false))
	require.NoError(t, run(inputPath, outputPath, true))

	plain, err := os.ReadFile(plainPath)
	require.NoError(t, err)
	out, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "Cutsize = "))
	assert.Equal(t, string(plain), string(out))
}

func TestRun_RejectsMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := run(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.txt"), false)
	assert.Error(t, err)
}

func TestRootCmd_RequiresTwoArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"onlyone"})
	assert.Error(t, cmd.Execute())
}

func TestRootCmd_DumpFlag(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.txt")
	outputPath := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("0.5\nNET N1 a b ;\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--dump", inputPath, outputPath})
	require.NoError(t, cmd.Execute())
}
