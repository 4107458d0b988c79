package api

import (
	srvmodels "github.com/aaronsummercloud/recipe-api-project/internal/server/models"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/models"
)

func toUserResponse(u srvmodels.User) models.UserResponse {
	return models.UserResponse{Email: u.Email, Name: u.Name}
}

func toRecipe(r srvmodels.Recipe) models.Recipe {
	return models.Recipe{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
	}
}

func toRecipeDetail(r srvmodels.Recipe) models.RecipeDetail {
	return models.RecipeDetail{
		Recipe:      toRecipe(r),
		Description: r.Description,
	}
}
