// Copyright (c) 2026 The Gzmq Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, lvl)

	lvl, err = ParseLevel("-1")
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, lvl)

	lvl, err = ParseLevel("2")
	require.NoError(t, err)
	assert.Equal(t, ErrorLevel, lvl)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestCreateLoggerAsLocalFile(t *testing.T) {
	_, _, err := CreateLoggerAsLocalFile("", InfoLevel)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "gzmq.log")
	logger, flush, err := CreateLoggerAsLocalFile(path, InfoLevel)
	require.NoError(t, err)

	logger.Debugf("socket %d opened", 1)
	logger.Infof("socket %d closed", 2)
	require.NoError(t, flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[gzmq]")
	assert.Contains(t, string(data), "socket 2 closed")
	assert.NotContains(t, string(data), "socket 1 opened")
}

func TestDefaults(t *testing.T) {
	assert.NotNil(t, GetDefaultLogger())
	assert.NotEmpty(t, LogLevel())
	Nop().Infof("dropped %s", "silently")
}

func TestSetDefaultLoggerAndFlusher(t *testing.T) {
	logger := Nop()
	var flushed int
	SetDefaultLoggerAndFlusher(logger, func() error {
		flushed++
		return nil
	})
	assert.Same(t, logger, GetDefaultLogger())
	require.NotNil(t, GetDefaultFlusher())

	Cleanup()
	assert.Equal(t, 1, flushed)

	// Only the first setup is kept.
	SetDefaultLoggerAndFlusher(Nop(), nil)
	assert.Same(t, logger, GetDefaultLogger())
	Cleanup()
	assert.Equal(t, 2, flushed)
}
