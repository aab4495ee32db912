// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fontgrab/fontgrab/internal/application"
	"github.com/fontgrab/fontgrab/internal/domain"
	"github.com/fontgrab/fontgrab/internal/testutil"
)

func checkByName(t *testing.T, result *domain.DoctorResult, name string) domain.DoctorCheck {
	t.Helper()

	for _, check := range result.Checks {
		if check.Name == name {
			return check
		}
	}

	t.Fatalf("no check named %q", name)

	return domain.DoctorCheck{}
}

func TestDoctorService_HealthyEnvironment(t *testing.T) {
	t.Parallel()

	fm := testutil.NewMemFileManager()

	runner := &testutil.MockCommandRunner{}
	runner.On("CommandExists", "fc-cache").Return(true)
	runner.On("ExecuteWithOutput", mock.Anything, "fc-cache", "--version").Return("fontconfig version 2.14.2\n", nil)

	client := &testutil.MockNetworkClient{}
	client.On("Head", mock.Anything, mock.Anything).Return(200, nil)

	service := application.NewDoctorService(fm, runner, testutil.StaticPrivilege(true), client, application.DoctorConfig{
		OutputDir:   outputRoot,
		UserFontDir: userFontDir,
		BaseURL:     testBaseURL,
		GOOS:        "linux",
	})

	result := service.Diagnose(context.Background())

	assert.True(t, result.Healthy)
	require.Len(t, result.Checks, 6)

	for _, check := range result.Checks {
		assert.Equal(t, domain.CheckOK, check.Status, "check %q", check.Name)
	}

	assert.Contains(t, checkByName(t, result, "catalog reachability").Detail, "HTTP 200")
	assert.Equal(t, "fontconfig version 2.14.2", checkByName(t, result, "font cache tool").Detail)
	assert.Equal(t, "none configured", checkByName(t, result, "proxy").Detail)
}

func TestDoctorService_CatalogUnreachableFails(t *testing.T) {
	t.Parallel()

	fm := testutil.NewMemFileManager()

	runner := &testutil.MockCommandRunner{}
	runner.On("CommandExists", "fc-cache").Return(true)
	runner.On("ExecuteWithOutput", mock.Anything, "fc-cache", "--version").Return("fontconfig version 2.14.2\n", nil)

	client := &testutil.MockNetworkClient{}
	client.On("Head", mock.Anything, mock.Anything).Return(0, domain.ErrNetwork)

	service := application.NewDoctorService(fm, runner, testutil.StaticPrivilege(true), client, application.DoctorConfig{
		OutputDir:   outputRoot,
		UserFontDir: userFontDir,
		BaseURL:     testBaseURL,
		GOOS:        "linux",
	})

	result := service.Diagnose(context.Background())

	assert.False(t, result.Healthy)
	assert.Equal(t, domain.CheckFail, checkByName(t, result, "catalog reachability").Status)
}

func TestDoctorService_WarningsStayHealthy(t *testing.T) {
	t.Parallel()

	fm := testutil.NewMemFileManager()

	runner := &testutil.MockCommandRunner{}
	runner.On("CommandExists", "fc-cache").Return(false)

	client := &testutil.MockNetworkClient{}
	client.On("Head", mock.Anything, mock.Anything).Return(404, nil)

	service := application.NewDoctorService(fm, runner, testutil.StaticPrivilege(false), client, application.DoctorConfig{
		UserFontDir: userFontDir,
		BaseURL:     testBaseURL,
		GOOS:        "linux",
	})

	result := service.Diagnose(context.Background())

	assert.True(t, result.Healthy)
	assert.Equal(t, domain.CheckWarn, checkByName(t, result, "privilege").Status)
	assert.Equal(t, domain.CheckWarn, checkByName(t, result, "font cache tool").Status)
	assert.Equal(t, domain.CheckWarn, checkByName(t, result, "output directory").Status)

	// Any HTTP status means the endpoint answered.
	assert.Equal(t, domain.CheckOK, checkByName(t, result, "catalog reachability").Status)
}

func TestDoctorService_CacheToolNotRequiredOnWindows(t *testing.T) {
	t.Parallel()

	fm := testutil.NewMemFileManager()

	runner := &testutil.MockCommandRunner{}

	client := &testutil.MockNetworkClient{}
	client.On("Head", mock.Anything, mock.Anything).Return(200, nil)

	service := application.NewDoctorService(fm, runner, testutil.StaticPrivilege(false), client, application.DoctorConfig{
		OutputDir:   outputRoot,
		UserFontDir: userFontDir,
		BaseURL:     testBaseURL,
		GOOS:        "windows",
	})

	result := service.Diagnose(context.Background())

	check := checkByName(t, result, "font cache tool")
	assert.Equal(t, domain.CheckOK, check.Status)
	assert.Equal(t, "not required on this platform", check.Detail)
	runner.AssertNotCalled(t, "CommandExists", "fc-cache")
}

func TestDoctorService_MissingUserFontDirFails(t *testing.T) {
	t.Parallel()

	fm := testutil.NewMemFileManager()

	runner := &testutil.MockCommandRunner{}
	runner.On("CommandExists", "fc-cache").Return(true)
	runner.On("ExecuteWithOutput", mock.Anything, "fc-cache", "--version").Return("fontconfig version 2.14.2\n", nil)

	client := &testutil.MockNetworkClient{}
	client.On("Head", mock.Anything, mock.Anything).Return(200, nil)

	service := application.NewDoctorService(fm, runner, testutil.StaticPrivilege(false), client, application.DoctorConfig{
		OutputDir: outputRoot,
		BaseURL:   testBaseURL,
		GOOS:      "linux",
	})

	result := service.Diagnose(context.Background())

	assert.False(t, result.Healthy)

	check := checkByName(t, result, "user font directory")
	assert.Equal(t, domain.CheckFail, check.Status)
	assert.Contains(t, check.Detail, "no user font directory")
}

func TestDoctorService_CacheToolVersionFallback(t *testing.T) {
	t.Parallel()

	fm := testutil.NewMemFileManager()

	runner := &testutil.MockCommandRunner{}
	runner.On("CommandExists", "fc-cache").Return(true)
	runner.On("ExecuteWithOutput", mock.Anything, "fc-cache", "--version").Return("", domain.ErrInstall)

	client := &testutil.MockNetworkClient{}
	client.On("Head", mock.Anything, mock.Anything).Return(200, nil)

	service := application.NewDoctorService(fm, runner, testutil.StaticPrivilege(false), client, application.DoctorConfig{
		OutputDir:   outputRoot,
		UserFontDir: userFontDir,
		BaseURL:     testBaseURL,
		GOOS:        "linux",
	})

	result := service.Diagnose(context.Background())

	check := checkByName(t, result, "font cache tool")
	assert.Equal(t, domain.CheckOK, check.Status)
	assert.Equal(t, "fc-cache found", check.Detail)
}

func TestDoctorService_ProxyCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured bool
		proxyURL   string
		wantDetail string
	}{
		{
			name:       "no proxy in the environment",
			configured: false,
			wantDetail: "none configured",
		},
		{
			name:       "proxy applies to the catalog",
			configured: true,
			proxyURL:   "http://proxy.example.com:8080",
			wantDetail: "catalog requests go via http://proxy.example.com:8080",
		},
		{
			name:       "NO_PROXY exempts the catalog",
			configured: true,
			proxyURL:   "",
			wantDetail: "configured but bypassed for the catalog (NO_PROXY)",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			fm := testutil.NewMemFileManager()

			runner := &testutil.MockCommandRunner{}
			runner.On("CommandExists", "fc-cache").Return(false)

			client := &testutil.MockNetworkClient{}
			client.On("Head", mock.Anything, mock.Anything).Return(200, nil)

			service := application.NewDoctorService(fm, runner, testutil.StaticPrivilege(false), client, application.DoctorConfig{
				OutputDir:       outputRoot,
				UserFontDir:     userFontDir,
				BaseURL:         testBaseURL,
				GOOS:            "linux",
				ProxyConfigured: testCase.configured,
				ProxyURL:        testCase.proxyURL,
			})

			result := service.Diagnose(context.Background())

			check := checkByName(t, result, "proxy")
			assert.Equal(t, domain.CheckOK, check.Status)
			assert.Equal(t, testCase.wantDetail, check.Detail)
		})
	}
}
