package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewCLI()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "yarnn "+version+"\n", out)
}

func TestEnv(t *testing.T) {
	t.Setenv("YARNN_EPOCHS", "42")

	out, err := runCLI(t, "env")
	require.NoError(t, err)
	assert.Contains(t, out, "YARNN_EPOCHS")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "YARNN_LEARNING_RATE")
}

func TestDemo(t *testing.T) {
	out, err := runCLI(t, "demo")
	require.NoError(t, err)

	assert.Contains(t, out, "# matmul\nTensor(shape=(2, 4), data=[\n  38, 44, 50, 56, \n  83, 98, 113, 128\n])\n")
	assert.Contains(t, out, "# axpy\nTensor(shape=(2, 2), data=[\n  3, 6, \n  9, 12\n])\n")
	assert.Equal(t, 1, strings.Count(out, "# softmax\n"))
}

var errClosedPipe = errors.New("closed pipe")

// failingWriter accepts limit bytes and then fails every write.
type failingWriter struct {
	limit int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		n := w.limit
		w.limit = 0
		return n, errClosedPipe
	}
	w.limit -= len(p)
	return len(p), nil
}

func TestDemoReportsWriteErrors(t *testing.T) {
	for _, limit := range []int{0, 10, 80} {
		cmd := NewCLI()
		cmd.SetOut(&failingWriter{limit: limit})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"demo"})

		err := cmd.Execute()
		require.ErrorIs(t, err, errClosedPipe, "limit %d", limit)
	}
}

func TestTrain(t *testing.T) {
	for _, optimizer := range []string{"adam", "sgd"} {
		t.Run(optimizer, func(t *testing.T) {
			out, err := runCLI(t, "train", "--epochs", "20", "--reports", "4", "--optimizer", optimizer, "--lr", "0.1")
			require.NoError(t, err)

			assert.Contains(t, out, "EPOCH")
			assert.Contains(t, out, "PREDICTION")
			assert.Contains(t, out, "20")
		})
	}
}

func TestTrainUsesEnvironmentDefaults(t *testing.T) {
	t.Setenv("YARNN_EPOCHS", "3")

	out, err := runCLI(t, "train", "--reports", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "PREDICTION")
}

func TestTrainInvalidFlags(t *testing.T) {
	_, err := runCLI(t, "train", "--optimizer", "rmsprop")
	require.ErrorIs(t, err, errInvalidOptimizer)

	_, err = runCLI(t, "train", "--hidden", "0", "--epochs", "1")
	require.Error(t, err)
}

func TestTrainSaveInspectLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xor.safetensors")

	_, err := runCLI(t, "train", "--epochs", "5", "--hidden", "3", "--save", path)
	require.NoError(t, err)

	out, err := runCLI(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "layers.0.weight")
	assert.Contains(t, out, "(2, 3)")
	assert.Contains(t, out, "layers.2.bias")
	assert.Contains(t, out, "F32")
	assert.Contains(t, out, "optimizer")

	_, err = runCLI(t, "train", "--epochs", "1", "--hidden", "3", "--load", path)
	require.NoError(t, err)

	_, err = runCLI(t, "train", "--epochs", "1", "--hidden", "4", "--load", path)
	require.Error(t, err)
}

func TestInspectMissingFile(t *testing.T) {
	_, err := runCLI(t, "inspect", filepath.Join(t.TempDir(), "missing.safetensors"))
	require.Error(t, err)
}
