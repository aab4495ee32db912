// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/fontgrab/fontgrab/internal/catalog"
	"github.com/fontgrab/fontgrab/internal/domain"
)

// DoctorConfig points the diagnostics at the environment under test.
// Zero values fall back to the platform and catalog defaults.
type DoctorConfig struct {
	OutputDir   string
	UserFontDir string
	BaseURL     string
	GOOS        string

	// ProxyConfigured reports whether any proxy environment variable is
	// set; ProxyURL is the proxy actually selected for BaseURL, empty
	// when requests go direct. Both are resolved by the caller.
	ProxyConfigured bool
	ProxyURL        string
}

// DoctorService diagnoses whether the environment can complete a run:
// target directories writable, privilege state, cache tooling present,
// catalog reachable.
type DoctorService struct {
	fileManager domain.FileManager
	runner      domain.CommandRunner
	privilege   domain.PrivilegeChecker
	client      domain.NetworkClient
	config      DoctorConfig
}

// NewDoctorService creates a DoctorService.
func NewDoctorService(
	fileManager domain.FileManager,
	runner domain.CommandRunner,
	privilege domain.PrivilegeChecker,
	client domain.NetworkClient,
	config DoctorConfig,
) *DoctorService {
	if config.GOOS == "" {
		config.GOOS = runtime.GOOS
	}

	if config.BaseURL == "" {
		config.BaseURL = catalog.DefaultBaseURL
	}

	return &DoctorService{
		fileManager: fileManager,
		runner:      runner,
		privilege:   privilege,
		client:      client,
		config:      config,
	}
}

// Diagnose runs every check. The result is healthy when no check
// failed outright; warnings still count as healthy.
func (s *DoctorService) Diagnose(ctx context.Context) *domain.DoctorResult {
	result := &domain.DoctorResult{Timestamp: time.Now()}

	result.Checks = append(result.Checks,
		s.checkUserFontDir(),
		s.checkPrivilege(),
		s.checkCacheTool(ctx),
		s.checkCatalog(ctx),
		s.checkProxy(),
		s.checkOutputDir(),
	)

	result.Healthy = true

	for _, check := range result.Checks {
		if check.Status == domain.CheckFail {
			result.Healthy = false

			break
		}
	}

	return result
}

func (s *DoctorService) checkUserFontDir() domain.DoctorCheck {
	check := domain.DoctorCheck{Name: "user font directory"}

	if s.config.UserFontDir == "" {
		check.Status = domain.CheckFail
		check.Detail = "no user font directory resolvable on this platform"

		return check
	}

	if err := s.fileManager.EnsureDir(s.config.UserFontDir); err != nil {
		check.Status = domain.CheckFail
		check.Detail = fmt.Sprintf("%s: %v", s.config.UserFontDir, err)

		return check
	}

	check.Status = domain.CheckOK
	check.Detail = s.config.UserFontDir

	return check
}

func (s *DoctorService) checkPrivilege() domain.DoctorCheck {
	check := domain.DoctorCheck{Name: "privilege"}

	if s.privilege.Elevated() {
		check.Status = domain.CheckOK
		check.Detail = "elevated; system-scope installs available"
	} else {
		check.Status = domain.CheckWarn
		check.Detail = "not elevated; system-scope installs will be skipped"
	}

	return check
}

func (s *DoctorService) checkCacheTool(ctx context.Context) domain.DoctorCheck {
	check := domain.DoctorCheck{Name: "font cache tool"}

	switch s.config.GOOS {
	case "windows", "darwin":
		check.Status = domain.CheckOK
		check.Detail = "not required on this platform"
	default:
		if s.runner.CommandExists("fc-cache") {
			check.Status = domain.CheckOK
			check.Detail = cacheToolDetail(ctx, s.runner)
		} else {
			check.Status = domain.CheckWarn
			check.Detail = "fc-cache not found; installed fonts may need a session restart"
		}
	}

	return check
}

// cacheToolDetail reports the fontconfig version when fc-cache will talk.
func cacheToolDetail(ctx context.Context, runner domain.CommandRunner) string {
	out, err := runner.ExecuteWithOutput(ctx, "fc-cache", "--version")
	if err != nil {
		return "fc-cache found"
	}

	version := strings.TrimSpace(out)
	if line, _, found := strings.Cut(version, "\n"); found {
		version = strings.TrimSpace(line)
	}

	if version == "" {
		return "fc-cache found"
	}

	return version
}

func (s *DoctorService) checkCatalog(ctx context.Context) domain.DoctorCheck {
	check := domain.DoctorCheck{Name: "catalog reachability"}

	probe := catalog.BuiltinIdentifiers()[0]

	status, err := s.client.Head(ctx, catalog.DownloadURL(s.config.BaseURL, probe))
	if err != nil {
		check.Status = domain.CheckFail
		check.Detail = err.Error()

		return check
	}

	check.Status = domain.CheckOK
	check.Detail = fmt.Sprintf("HTTP %d from %s", status, s.config.BaseURL)

	return check
}

func (s *DoctorService) checkProxy() domain.DoctorCheck {
	check := domain.DoctorCheck{Name: "proxy", Status: domain.CheckOK}

	switch {
	case !s.config.ProxyConfigured:
		check.Detail = "none configured"
	case s.config.ProxyURL == "":
		check.Detail = "configured but bypassed for the catalog (NO_PROXY)"
	default:
		check.Detail = "catalog requests go via " + s.config.ProxyURL
	}

	return check
}

func (s *DoctorService) checkOutputDir() domain.DoctorCheck {
	check := domain.DoctorCheck{Name: "output directory"}

	if s.config.OutputDir == "" {
		check.Status = domain.CheckWarn
		check.Detail = "not configured"

		return check
	}

	if err := s.fileManager.EnsureDir(s.config.OutputDir); err != nil {
		check.Status = domain.CheckFail
		check.Detail = fmt.Sprintf("%s: %v", s.config.OutputDir, err)

		return check
	}

	check.Status = domain.CheckOK
	check.Detail = s.config.OutputDir

	return check
}
