// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Constants for consent responses.
const (
	ConsentYes = "yes"
	ConsentY   = "y"
)

// AutoYes is set by the --yes flag to auto-accept prompts.
var AutoYes bool //nolint:gochecknoglobals // CLI flag state needs to be global

// AskConsent prompts the user before a destructive action such as
// clearing the user font directory. Returns true if the user agrees.
func AskConsent(action string, detail string) bool {
	// If --yes flag is set, auto-accept
	if AutoYes {
		ok, _ := PromptConsentWithReader(action, true, os.Stdin, os.Stdout)

		return ok
	}

	// If not a TTY (piped/scripted), refuse destructive actions
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}

	fmt.Printf("\nFontgrab is about to %s:\n", action)
	fmt.Printf("  %s\n", detail)

	ok, err := PromptConsentWithReader("Continue?", false, os.Stdin, os.Stdout)
	if err != nil {
		return false
	}

	return ok
}

// PromptConsentWithReader is a testable version of prompt consent.
// It accepts custom reader and writer for testing.
func PromptConsentWithReader(prompt string, autoYes bool, reader io.Reader, writer io.Writer) (bool, error) {
	// If auto-yes is set, immediately return true
	if autoYes {
		_, _ = fmt.Fprintf(writer, "Auto-accepting: %s\n", prompt)
		return true, nil
	}

	// Show prompt
	_, _ = fmt.Fprintf(writer, "%s [y/N]: ", prompt)

	// Read response
	bufReader := bufio.NewReader(reader)

	response, err := bufReader.ReadString('\n')
	if err != nil {
		return false, err
	}

	response = strings.TrimSpace(strings.ToLower(response))

	return response == ConsentY || response == ConsentYes, nil
}
