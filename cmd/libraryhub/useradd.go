package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	promptPassword = "Password: "
	promptConfirm  = "Repeat password: "
)

var errPasswordMismatch = errors.New("passwords do not match")

func newUserAddCmd() *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "useradd",
		Short: "Register a reader; the password is read from the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			c, err := newContainer(ctx, cfg)
			if err != nil {
				return err
			}
			defer c.Close(ctx)

			user, err := c.users.CreateUser(ctx, name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", user.ID, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "reader name")
	cmd.Flags().StringVar(&email, "email", "", "reader email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// readPassword читает пароль без эха с терминала или строкой из канала ввода.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	read := func(p string) (string, error) {
		fmt.Fprint(prompt, p)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}

	first, err := read(promptPassword)
	if err != nil {
		return "", err
	}
	second, err := read(promptConfirm)
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPasswordMismatch
	}
	return first, nil
}
