package approvals

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// TerminalPrompter provides interactive terminal prompting for host
// approvals when the URL filter denies a destination.
type TerminalPrompter struct{}

// NewTerminalPrompter creates a new TerminalPrompter.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// IsInteractive checks if we're running in an interactive terminal.
func (p *TerminalPrompter) IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	// Character device means a terminal, not a pipe or file.
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// PromptForURL asks the user whether to allow a denied destination.
// "always" additionally persists the host for future runs.
func (p *TerminalPrompter) PromptForURL(rawURL, reason string) (granted bool, always bool, err error) {
	fmt.Fprintf(os.Stderr, "\nRequest was refused by the URL filter:\n")
	fmt.Fprintf(os.Stderr, "  %s\n  (%s)\n", rawURL, reason)
	fmt.Fprintf(os.Stderr, "\nAllow this destination anyway? [y/N/always]: ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		// On error (EOF, etc), treat as "no"
		return false, false, nil
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true, false, nil
	case "a", "always":
		return true, true, nil
	case "n", "no", "":
		// Empty response (just Enter) counts as "no"
		return false, false, nil
	default:
		// Unknown response - default to deny
		return false, false, nil
	}
}

// HostPattern derives the pattern persisted for an "always" approval:
// the URL's scheme and host with any path allowed.
func HostPattern(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Scheme + "://" + u.Host + "/*"
}
