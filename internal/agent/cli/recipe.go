package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/aaronsummercloud/recipe-api-project/internal/shared/models"
)

// NewRecipeCmd создаёт группу команд для рецептов текущего пользователя.
//
// Примеры:
//
//	recipectl recipe list
//	recipectl recipe get 12
//	recipectl recipe create --title "Sample recipe" --time 10 --price 5.00
//	recipectl recipe update 12 --price 6.50
//	recipectl recipe delete 12
func NewRecipeCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Рецепты: list, get, create, update, delete",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "печатать ответ сервера как JSON")

	cmd.AddCommand(
		newRecipeListCmd(app, &asJSON),
		newRecipeGetCmd(app, &asJSON),
		newRecipeCreateCmd(app, &asJSON),
		newRecipeUpdateCmd(app, &asJSON),
		newRecipeDeleteCmd(app),
	)
	return cmd
}

func newRecipeListCmd(app *App, asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Список рецептов (новые первыми)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Token()
			if err != nil {
				return err
			}
			items, err := app.Client().ListRecipes(token)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if *asJSON {
				return printJSON(out, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "no recipes (run: recipectl recipe create)")
				return nil
			}
			for _, r := range items {
				fmt.Fprintf(out, "%d\t%s\t%d min\t%s\t%s\n", r.ID, r.Title, r.TimeMinutes, r.Price, r.Link)
			}
			return nil
		},
	}
}

func newRecipeGetCmd(app *App, asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Рецепт с описанием",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			token, err := app.Token()
			if err != nil {
				return err
			}
			r, err := app.Client().GetRecipe(token, id)
			if err != nil {
				return err
			}
			return printRecipe(cmd.OutOrStdout(), r, *asJSON)
		},
	}
}

// recipeFlags — флаги полей рецепта, общие для create и update.
type recipeFlags struct {
	title       string
	timeMinutes int
	price       string
	link        string
	description string
}

func (f *recipeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "title")
	cmd.Flags().IntVar(&f.timeMinutes, "time", 0, "time in minutes")
	cmd.Flags().StringVar(&f.price, "price", "", "price, e.g. 5.25")
	cmd.Flags().StringVar(&f.link, "link", "", "link")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
}

// request собирает тело запроса только из переданных флагов.
func (f *recipeFlags) request(cmd *cobra.Command) (models.RecipeRequest, error) {
	var req models.RecipeRequest
	fl := cmd.Flags()

	if fl.Changed("title") {
		req.Title = &f.title
	}
	if fl.Changed("time") {
		req.TimeMinutes = &f.timeMinutes
	}
	if fl.Changed("price") {
		p, err := decimal.NewFromString(f.price)
		if err != nil {
			return models.RecipeRequest{}, fmt.Errorf("invalid --price %q: %w", f.price, err)
		}
		req.Price = &p
	}
	if fl.Changed("link") {
		req.Link = &f.link
	}
	if fl.Changed("description") {
		req.Description = &f.description
	}
	return req, nil
}

func newRecipeCreateCmd(app *App, asJSON *bool) *cobra.Command {
	var f recipeFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать рецепт",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Token()
			if err != nil {
				return err
			}
			req, err := f.request(cmd)
			if err != nil {
				return err
			}
			r, err := app.Client().CreateRecipe(token, req)
			if err != nil {
				return err
			}
			return printRecipe(cmd.OutOrStdout(), r, *asJSON)
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func newRecipeUpdateCmd(app *App, asJSON *bool) *cobra.Command {
	var (
		f       recipeFlags
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Изменить рецепт (PATCH, с --replace — PUT)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			token, err := app.Token()
			if err != nil {
				return err
			}
			req, err := f.request(cmd)
			if err != nil {
				return err
			}
			r, err := app.Client().UpdateRecipe(token, id, req, !replace)
			if err != nil {
				return err
			}
			return printRecipe(cmd.OutOrStdout(), r, *asJSON)
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&replace, "replace", false, "full update (PUT): title, time and price required")

	return cmd
}

func newRecipeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить рецепт",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			token, err := app.Token()
			if err != nil {
				return err
			}
			if err := app.Client().DeleteRecipe(token, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recipe %d deleted\n", id)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid recipe id %q", s)
	}
	return id, nil
}

func printRecipe(w io.Writer, r models.RecipeDetail, asJSON bool) error {
	if asJSON {
		return printJSON(w, r)
	}
	fmt.Fprintf(w, "id=%d\ntitle=%s\ntime_minutes=%d\nprice=%s\nlink=%s\ndescription=%s\n",
		r.ID, r.Title, r.TimeMinutes, r.Price, r.Link, r.Description)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
