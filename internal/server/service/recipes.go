package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/models"
	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
)

// RecipesService — CRUD рецептов. Каждая операция ограничена владельцем.
type RecipesService struct {
	recipes RecipesRepo
}

func NewRecipesService(recipes RecipesRepo) *RecipesService {
	return &RecipesService{recipes: recipes}
}

// RecipeInput — поля рецепта из запроса. nil означает "поле не передано".
type RecipeInput struct {
	Title       *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Link        *string
	Description *string
}

// List возвращает рецепты пользователя, новые первыми.
func (s *RecipesService) List(ctx context.Context, userID int64) ([]models.Recipe, error) {
	return s.recipes.ListByUser(ctx, userID)
}

// Create создаёт рецепт от имени пользователя.
//
// Обязательны title, time_minutes и price. link и description могут быть пустыми.
func (s *RecipesService) Create(ctx context.Context, userID int64, in RecipeInput) (models.Recipe, error) {
	r := models.Recipe{UserID: userID}
	if err := applyRecipe(&r, in, false); err != nil {
		return models.Recipe{}, err
	}

	id, err := s.recipes.Create(ctx, r)
	if err != nil {
		return models.Recipe{}, err
	}
	r.ID = id
	return r, nil
}

// Get возвращает рецепт. Чужой рецепт неотличим от отсутствующего (ErrNotFound).
func (s *RecipesService) Get(ctx context.Context, userID, id int64) (models.Recipe, error) {
	return s.recipes.GetByID(ctx, userID, id)
}

// Update обновляет рецепт.
//
// partial=false (PUT): обязательны те же поля, что при создании,
// непереданные необязательные поля сохраняют прежние значения.
// partial=true (PATCH): меняются только переданные поля.
// Владелец рецепта не меняется.
func (s *RecipesService) Update(ctx context.Context, userID, id int64, in RecipeInput, partial bool) (models.Recipe, error) {
	r, err := s.recipes.GetByID(ctx, userID, id)
	if err != nil {
		return models.Recipe{}, err
	}

	if err := applyRecipe(&r, in, partial); err != nil {
		return models.Recipe{}, err
	}

	if err := s.recipes.Update(ctx, r); err != nil {
		return models.Recipe{}, err
	}
	return r, nil
}

// Delete удаляет рецепт пользователя.
func (s *RecipesService) Delete(ctx context.Context, userID, id int64) error {
	return s.recipes.Delete(ctx, userID, id)
}

// applyRecipe валидирует вход и переносит переданные поля в r.
func applyRecipe(r *models.Recipe, in RecipeInput, partial bool) error {
	verr := serr.NewValidationError()

	if in.Title != nil || !partial {
		r.Title = requiredString(verr, "title", in.Title, maxCharLen)
	}

	if in.TimeMinutes != nil || !partial {
		if in.TimeMinutes == nil {
			verr.Add("time_minutes", serr.MsgRequired)
		} else {
			validateInt32(verr, "time_minutes", *in.TimeMinutes)
			r.TimeMinutes = *in.TimeMinutes
		}
	}

	if in.Price != nil || !partial {
		if in.Price == nil {
			verr.Add("price", serr.MsgRequired)
		} else {
			validatePrice(verr, "price", *in.Price)
			r.Price = *in.Price
		}
	}

	if in.Link != nil {
		r.Link = optionalString(verr, "link", *in.Link, maxCharLen)
	}
	if in.Description != nil {
		r.Description = *in.Description
	}

	return verr.OrNil()
}
