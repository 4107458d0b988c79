package models

import "github.com/shopspring/decimal"

// Recipe — краткое представление рецепта (список).
//
// Price отдаётся строкой с двумя знаками после запятой, например "5.25".
type Recipe struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	TimeMinutes int    `json:"time_minutes"`
	Price       string `json:"price"`
	Link        string `json:"link"`
}

// RecipeDetail — полное представление рецепта: Recipe + description.
type RecipeDetail struct {
	Recipe
	Description string `json:"description"`
}

// RecipeRequest — тело запроса на создание/обновление рецепта.
//
// Используется в:
//
//	POST  /api/recipe/recipes/
//	PUT   /api/recipe/recipes/{id}/
//	PATCH /api/recipe/recipes/{id}/
//
// id в теле игнорируется, владелец берётся из токена.
// Price принимает как число (5.25), так и строку ("5.25").
type RecipeRequest struct {
	Title       *string          `json:"title,omitempty"`
	TimeMinutes *int             `json:"time_minutes,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Link        *string          `json:"link,omitempty"`
	Description *string          `json:"description,omitempty"`
}
