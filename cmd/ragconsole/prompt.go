package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	domainauth "github.com/target/mmk-rag-console/internal/domain/auth"
	"golang.org/x/term"
)

// credentialPrompt asks for an identifier (unless one is given) and a password.
type credentialPrompt func(ctx context.Context, identifier string) (domainauth.Credentials, error)

var errNotInteractive = errors.New("not authenticated and stdin is not a terminal; run `ragconsole login` first")

// terminalPrompt reads the password without echo. It returns nil when in is
// not a terminal so callers fail instead of blocking on a pipe.
func terminalPrompt(in *os.File, out io.Writer) credentialPrompt {
	fd := int(in.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return nil
	}
	return func(_ context.Context, identifier string) (domainauth.Credentials, error) {
		if identifier == "" {
			if err := writef(out, "Identifier: "); err != nil {
				return domainauth.Credentials{}, err
			}
			line, err := bufio.NewReader(in).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return domainauth.Credentials{}, fmt.Errorf("read identifier: %w", err)
			}
			identifier = strings.TrimSpace(line)
		}
		if err := writef(out, "Password: "); err != nil {
			return domainauth.Credentials{}, err
		}
		pw, err := term.ReadPassword(fd)
		_ = writeln(out)
		if err != nil {
			return domainauth.Credentials{}, fmt.Errorf("read password: %w", err)
		}
		return domainauth.Credentials{Identifier: identifier, Password: string(pw)}, nil
	}
}

// readPasswordLine reads one line from r for --password-stdin.
func readPasswordLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
