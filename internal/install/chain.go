// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package install places extracted font files into OS font directories
// through an ordered chain of platform strategies.
package install

import (
	"context"
	"fmt"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// Chain tries installation strategies in order until one succeeds.
// Privileged strategies are skipped outright when the process is not
// elevated; a skip is not an attempt and never counts as a failure.
type Chain struct {
	strategies []domain.InstallStrategy
	privilege  domain.PrivilegeChecker
}

// NewChain creates a Chain with the given privilege checker and
// strategies, ordered most-preferred first.
func NewChain(privilege domain.PrivilegeChecker, strategies ...domain.InstallStrategy) *Chain {
	return &Chain{
		strategies: strategies,
		privilege:  privilege,
	}
}

// Strategies returns the configured strategies in order.
func (c *Chain) Strategies() []domain.InstallStrategy {
	return c.strategies
}

// Install runs the chain for one font file. It stops at the first
// strategy whose copy-and-register sequence completes. When every
// attempted strategy fails, the returned error is the last strategy's;
// when every strategy was skipped for privilege, the error is
// ErrPrivilegeUnavailable so callers can tell the two apart.
func (c *Chain) Install(ctx context.Context, font domain.FontFile) error {
	var lastErr error

	attempted := false

	for _, strategy := range c.strategies {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInterrupted, err)
		}

		if strategy.RequiresPrivilege() && !c.privilege.Elevated() {
			continue
		}

		attempted = true

		if err := strategy.Install(ctx, font); err != nil {
			lastErr = fmt.Errorf("%s: %w", strategy.Name(), err)

			continue
		}

		return nil
	}

	if !attempted {
		return domain.ErrPrivilegeUnavailable
	}

	return lastErr
}

// InstallAll installs every font file of one identifier. The identifier
// succeeds only when all its files install; the first failing file's
// error is returned. Partial side effects of failed strategies are not
// rolled back, later copies supersede them.
func (c *Chain) InstallAll(ctx context.Context, fonts []domain.FontFile) error {
	for _, font := range fonts {
		if err := c.Install(ctx, font); err != nil {
			return fmt.Errorf("%s: %w", font.Name, err)
		}
	}

	return nil
}
