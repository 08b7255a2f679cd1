package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nvramkit/internal/format"
	"github.com/joshuapare/nvramkit/internal/logger"
	"github.com/joshuapare/nvramkit/pkg/types"
)

func TestReadCommand(t *testing.T) {
	vars := map[string]map[string]string{
		"common": {"boot-args": "-v"},
		"system": {"bin": "\x00\x01"},
	}
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{name: "single variable", args: []string{"common:boot-args"}, want: "common:boot-args=-v\n"},
		{name: "binary value", args: []string{"system:bin"}, want: "system:bin=%00%01\n"},
		{name: "dump all", args: nil, want: "common:boot-args=-v\nsystem:bin=%00%01\n"},
		{name: "missing variable", args: []string{"common:nope"}, wantErr: types.ErrVariableNotFound},
		{name: "unknown partition", args: []string{"bogus:x"}, wantErr: types.ErrUnknownPartition},
		{name: "no partition", args: []string{"foo"}, wantErr: types.ErrMissingPartitionName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDevice(t, vars)
			output, err := captureOutput(t, func() error {
				return runRead(tt.args)
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, output)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, output)
		})
	}
}

func TestReadJSON(t *testing.T) {
	testDevice(t, map[string]map[string]string{"common": {"a": "1%"}})
	cfg.JSON = true

	output, err := captureOutput(t, func() error { return runRead(nil) })
	require.NoError(t, err)

	var got []jsonEntry
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, []jsonEntry{{Partition: "common", Key: "a", Value: "1%25"}}, got)
}

func TestReadMissingDevice(t *testing.T) {
	testDevice(t, nil)
	cfg.Device = cfg.Device + ".missing"
	_, err := captureOutput(t, func() error { return runRead(nil) })
	assert.ErrorIs(t, err, types.ErrIO)
}

func TestReadMalformedImage(t *testing.T) {
	path := testDevice(t, nil)
	require.NoError(t, writeFile(path, make([]byte, testImageSize)))
	_, err := captureOutput(t, func() error { return runRead(nil) })
	assert.ErrorIs(t, err, types.ErrParse)
}

func TestReadVerboseKeepsStdoutClean(t *testing.T) {
	testDevice(t, map[string]map[string]string{"common": {"a": "1"}})
	cfg.Verbose = true

	output, err := captureOutput(t, func() error { return runRead([]string{"common:a"}) })
	require.NoError(t, err)
	assert.Equal(t, "common:a=1\n", output)

	cfg.JSON = true
	output, err = captureOutput(t, func() error { return runRead(nil) })
	require.NoError(t, err)

	var got []jsonEntry
	require.NoError(t, json.Unmarshal([]byte(output), &got), "stdout: %q", output)
	assert.Equal(t, []jsonEntry{{Partition: "common", Key: "a", Value: "1"}}, got)
}

func TestReadWarnsOnDamagedPartition(t *testing.T) {
	path := testDevice(t, map[string]map[string]string{"common": {"a": "1"}})
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[testImageSize/2+format.PartitionHeaderSize+format.CHRPHeaderSize] ^= 0x5A
	require.NoError(t, writeFile(path, data))

	prev := logger.L
	var stderr bytes.Buffer
	closeFn, err := logger.Init(logger.Options{Stderr: &stderr})
	require.NoError(t, err)
	t.Cleanup(func() {
		closeFn()
		logger.L = prev
	})

	output, err := captureOutput(t, func() error { return runRead(nil) })
	require.NoError(t, err)
	assert.Equal(t, "common:a=1\n", output)
	assert.Contains(t, stderr.String(), "partition failed validation")
}
