package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword спрашивает пароль, если он не передан флагом.
//
// В терминале ввод скрыт; иначе (пайп, скрипт) читается первая строка stdin.
func readPassword(cmd *cobra.Command, label string) (string, error) {
	if f, ok := cmd.InOrStdin().(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("password is required (use --password or stdin)")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// passwordFlag возвращает --password или спрашивает его.
func passwordFlag(cmd *cobra.Command, password string) (string, error) {
	if cmd.Flags().Changed("password") {
		return password, nil
	}
	return ReadPassword(cmd, "Password: ")
}
