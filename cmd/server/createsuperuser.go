package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/repository"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/service"
	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
)

// переменная окружения с паролем для --no-input
const superuserPasswordEnv = "RECIPE_SUPERUSER_PASSWORD"

func newCreateSuperuserCmd(configPath *string) *cobra.Command {
	var (
		email   string
		name    string
		noInput bool
	)

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Создать суперпользователя для входа в админку",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			var password string
			if noInput {
				password = os.Getenv(superuserPasswordEnv)
				if email == "" || password == "" {
					return fmt.Errorf("--no-input требует --email и %s", superuserPasswordEnv)
				}
			} else {
				var err error
				if email == "" {
					if email, err = prompt(in, out, "Email: "); err != nil {
						return err
					}
				}
				if name == "" {
					if name, err = prompt(in, out, "Name (optional): "); err != nil {
						return err
					}
				}
				if password, err = readPassword(in, out); err != nil {
					return err
				}
			}

			cfg, log, db, err := bootstrap(ctx, *configPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
				_ = log.Sync()
			}()

			svc, err := service.NewServices(service.Repositories{
				Users:   repository.NewUsersRepository(db),
				Tokens:  repository.NewTokensRepository(db),
				Recipes: repository.NewRecipesRepository(db),
			}, nil, cfg)
			if err != nil {
				return err
			}

			u, err := svc.Auth.CreateSuperuser(ctx, email, password, name)
			if err != nil {
				var verr *serr.ValidationError
				if errors.As(err, &verr) {
					for field, msgs := range verr.Fields {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, strings.Join(msgs, " "))
					}
				}
				return err
			}

			log.Sugar().Infow("superuser created", "user_id", u.ID, "email", u.Email)
			fmt.Fprintln(out, "Superuser created successfully.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email суперпользователя")
	cmd.Flags().StringVar(&name, "name", "", "имя")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "не спрашивать, пароль из "+superuserPasswordEnv)

	return cmd
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword спрашивает пароль дважды. В терминале ввод не отображается.
func readPassword(in *bufio.Reader, out io.Writer) (string, error) {
	read := func(label string) (string, error) {
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			fmt.Fprint(out, label)
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			return string(b), err
		}
		return prompt(in, out, label)
	}

	p1, err := read("Password: ")
	if err != nil {
		return "", err
	}
	p2, err := read("Password (again): ")
	if err != nil {
		return "", err
	}
	if p1 != p2 {
		return "", errors.New(serr.MsgPasswordsDiffer)
	}
	return p1, nil
}
