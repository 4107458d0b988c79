package tests

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/aaronsummercloud/recipe-api-project/internal/agent/cli"
	"github.com/aaronsummercloud/recipe-api-project/internal/agent/config"
)

// newApp создаёт App с кредами во временной директории
func newApp(t *testing.T, serverURL, token string) *cli.App {
	t.Helper()
	return &cli.App{
		ServerURL: serverURL,
		CredsPath: filepath.Join(t.TempDir(), "creds.json"),
		Creds:     &config.Credentials{Token: token},
	}
}

// run выполняет команду и возвращает вывод
func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
