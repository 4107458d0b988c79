// Методы клиента для эндпоинтов /api/recipe/recipes.
package api

import (
	"strconv"

	"github.com/aaronsummercloud/recipe-api-project/internal/shared/models"
)

const recipesPath = "/api/recipe/recipes/"

func recipePath(id int64) string {
	return recipesPath + strconv.FormatInt(id, 10) + "/"
}

// ListRecipes возвращает рецепты владельца токена, новые первыми.
func (c *Client) ListRecipes(token string) ([]models.Recipe, error) {
	var resp []models.Recipe
	err := c.GetJSON(recipesPath, &resp, token)
	return resp, err
}

// GetRecipe возвращает рецепт с описанием.
func (c *Client) GetRecipe(token string, id int64) (models.RecipeDetail, error) {
	var resp models.RecipeDetail
	err := c.GetJSON(recipePath(id), &resp, token)
	return resp, err
}

// CreateRecipe создаёт рецепт.
func (c *Client) CreateRecipe(token string, req models.RecipeRequest) (models.RecipeDetail, error) {
	var resp models.RecipeDetail
	err := c.PostJSON(recipesPath, req, &resp, token)
	return resp, err
}

// UpdateRecipe обновляет рецепт: partial=true — PATCH, иначе PUT.
func (c *Client) UpdateRecipe(token string, id int64, req models.RecipeRequest, partial bool) (models.RecipeDetail, error) {
	var resp models.RecipeDetail
	var err error
	if partial {
		err = c.PatchJSON(recipePath(id), req, &resp, token)
	} else {
		err = c.PutJSON(recipePath(id), req, &resp, token)
	}
	return resp, err
}

// DeleteRecipe удаляет рецепт.
func (c *Client) DeleteRecipe(token string, id int64) error {
	return c.DeleteJSON(recipePath(id), nil, token)
}
