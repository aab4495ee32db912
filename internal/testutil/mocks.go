// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil provides testify mocks for the domain ports, shared
// by tests across packages.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// MockCommandRunner is a mock implementation of CommandRunner port.
type MockCommandRunner struct {
	mock.Mock
}

// Execute mocks command execution without output.
func (m *MockCommandRunner) Execute(ctx context.Context, name string, args ...string) error {
	// Convert variadic args to interface slice for mock.Called
	callArgs := make([]interface{}, 0, len(args)+2)

	callArgs = append(callArgs, ctx, name)
	for _, arg := range args {
		callArgs = append(callArgs, arg)
	}

	returnArgs := m.Called(callArgs...)

	return returnArgs.Error(0)
}

// ExecuteWithOutput mocks command execution with output.
func (m *MockCommandRunner) ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error) {
	callArgs := make([]interface{}, 0, len(args)+2)

	callArgs = append(callArgs, ctx, name)
	for _, arg := range args {
		callArgs = append(callArgs, arg)
	}

	returnArgs := m.Called(callArgs...)

	return returnArgs.String(0), returnArgs.Error(1)
}

// CommandExists mocks checking if a command exists.
func (m *MockCommandRunner) CommandExists(name string) bool {
	args := m.Called(name)
	return args.Bool(0)
}

// MockNetworkClient is a mock implementation of NetworkClient port.
type MockNetworkClient struct {
	mock.Mock
}

// Get mocks fetching a URL body.
func (m *MockNetworkClient) Get(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if result := args.Get(0); result != nil {
		body, ok := result.([]byte)
		if !ok {
			return nil, args.Error(1)
		}

		return body, args.Error(1)
	}

	return nil, args.Error(1)
}

// Head mocks a metadata-only request.
func (m *MockNetworkClient) Head(ctx context.Context, url string) (int, error) {
	args := m.Called(ctx, url)
	return args.Int(0), args.Error(1)
}

// DownloadFile mocks file download.
func (m *MockNetworkClient) DownloadFile(ctx context.Context, url, destPath string) error {
	args := m.Called(ctx, url, destPath)
	return args.Error(0)
}

// MockFileManager is a mock implementation of FileManager port.
type MockFileManager struct {
	mock.Mock
}

// FileExists mocks checking if a file exists.
func (m *MockFileManager) FileExists(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

// FileSize mocks reading a file's size.
func (m *MockFileManager) FileSize(path string) (int64, error) {
	args := m.Called(path)
	size, _ := args.Get(0).(int64)

	return size, args.Error(1)
}

// EnsureDir mocks ensuring a directory exists.
func (m *MockFileManager) EnsureDir(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// CopyFile mocks copying a file.
func (m *MockFileManager) CopyFile(src, dest string) error {
	args := m.Called(src, dest)
	return args.Error(0)
}

// WriteFile mocks writing data to a file.
func (m *MockFileManager) WriteFile(path string, data []byte) error {
	args := m.Called(path, data)
	return args.Error(0)
}

// ReadFile mocks reading data from a file.
func (m *MockFileManager) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if result := args.Get(0); result != nil {
		bytes, ok := result.([]byte)
		if !ok {
			return nil, args.Error(1)
		}

		return bytes, args.Error(1)
	}

	return nil, args.Error(1)
}

// RemoveFile mocks removing a file.
func (m *MockFileManager) RemoveFile(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// ListFiles mocks listing regular files in a directory.
func (m *MockFileManager) ListFiles(dir string) ([]string, error) {
	args := m.Called(dir)
	if result := args.Get(0); result != nil {
		names, ok := result.([]string)
		if !ok {
			return nil, args.Error(1)
		}

		return names, args.Error(1)
	}

	return nil, args.Error(1)
}

// ListDirs mocks listing subdirectories in a directory.
func (m *MockFileManager) ListDirs(dir string) ([]string, error) {
	args := m.Called(dir)
	if result := args.Get(0); result != nil {
		names, ok := result.([]string)
		if !ok {
			return nil, args.Error(1)
		}

		return names, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockInstallStrategy is a mock implementation of InstallStrategy port.
type MockInstallStrategy struct {
	mock.Mock

	StrategyName string
	TargetScope  domain.Scope
	Privileged   bool
}

// Name returns the configured strategy name.
func (m *MockInstallStrategy) Name() string {
	return m.StrategyName
}

// Scope returns the configured scope.
func (m *MockInstallStrategy) Scope() domain.Scope {
	return m.TargetScope
}

// RequiresPrivilege returns the configured privilege requirement.
func (m *MockInstallStrategy) RequiresPrivilege() bool {
	return m.Privileged
}

// Install mocks the copy-and-register step.
func (m *MockInstallStrategy) Install(ctx context.Context, font domain.FontFile) error {
	args := m.Called(ctx, font)
	return args.Error(0)
}

// StaticPrivilege is a PrivilegeChecker fixed at construction, for tests
// that do not care about call assertions.
type StaticPrivilege bool

// Elevated reports the fixed privilege state.
func (s StaticPrivilege) Elevated() bool {
	return bool(s)
}

// MockCacheNotifier is a mock implementation of CacheNotifier port.
type MockCacheNotifier struct {
	mock.Mock
}

// NotifyFontsChanged mocks the cache-refresh broadcast.
func (m *MockCacheNotifier) NotifyFontsChanged(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// DiscardOutput is an OutputPort that swallows everything, for tests
// that do not assert on messages.
type DiscardOutput struct{}

// Success discards the message.
func (DiscardOutput) Success(string, interface{}) error { return nil }

// Error discards the message.
func (DiscardOutput) Error(string) error { return nil }

// Info discards the message.
func (DiscardOutput) Info(string) error { return nil }

// Progress discards the message.
func (DiscardOutput) Progress(string) error { return nil }

// Table discards the rows.
func (DiscardOutput) Table([]string, [][]string) error { return nil }

// IsQuiet always reports quiet.
func (DiscardOutput) IsQuiet() bool { return true }
