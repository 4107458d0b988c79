// HTTP-хендлеры рецептов. Все маршруты требуют токен, рецепты видны только владельцу.
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/middleware"
	"github.com/aaronsummercloud/recipe-api-project/internal/server/service"
	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/models"
)

// ListRecipes возвращает рецепты пользователя, новые первыми.
//
// @Summary      List recipes
// @Tags         recipe
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.Recipe
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/recipe/recipes/ [get]
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	list, err := h.Svc.Recipes.List(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, "list recipes", err)
		return
	}

	resp := make([]models.Recipe, 0, len(list))
	for _, rec := range list {
		resp = append(resp, toRecipe(rec))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// CreateRecipe создаёт рецепт от имени текущего пользователя.
//
// @Summary      Create recipe
// @Tags         recipe
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.RecipeRequest true "Recipe"
// @Success      201 {object} models.RecipeDetail
// @Failure      400 {object} models.ErrorResponse "Invalid input"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Router       /api/recipe/recipes/ [post]
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	var req models.RecipeRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, "create recipe", err)
		return
	}

	rec, err := h.Svc.Recipes.Create(r.Context(), userID, recipeInput(req))
	if err != nil {
		h.writeServiceError(w, r, "create recipe", err)
		return
	}

	WriteJSON(w, http.StatusCreated, toRecipeDetail(rec))
}

// GetRecipe возвращает рецепт целиком.
//
// @Summary      Retrieve recipe
// @Tags         recipe
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Recipe id"
// @Success      200 {object} models.RecipeDetail
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "Not found or not owned"
// @Router       /api/recipe/recipes/{id}/ [get]
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.recipeTarget(w, r)
	if !ok {
		return
	}

	rec, err := h.Svc.Recipes.Get(r.Context(), userID, id)
	if err != nil {
		h.writeServiceError(w, r, "get recipe", err)
		return
	}

	WriteJSON(w, http.StatusOK, toRecipeDetail(rec))
}

// UpdateRecipe — полное обновление рецепта.
//
// @Summary      Update recipe
// @Tags         recipe
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Recipe id"
// @Param        request body models.RecipeRequest true "Recipe"
// @Success      200 {object} models.RecipeDetail
// @Failure      400 {object} models.ErrorResponse "Invalid input"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "Not found or not owned"
// @Router       /api/recipe/recipes/{id}/ [put]
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	h.updateRecipe(w, r, false)
}

// PatchRecipe — частичное обновление рецепта.
//
// @Summary      Partially update recipe
// @Tags         recipe
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Recipe id"
// @Param        request body models.RecipeRequest true "Any subset of fields"
// @Success      200 {object} models.RecipeDetail
// @Failure      400 {object} models.ErrorResponse "Invalid input"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "Not found or not owned"
// @Router       /api/recipe/recipes/{id}/ [patch]
func (h *Handler) PatchRecipe(w http.ResponseWriter, r *http.Request) {
	h.updateRecipe(w, r, true)
}

func (h *Handler) updateRecipe(w http.ResponseWriter, r *http.Request, partial bool) {
	userID, id, ok := h.recipeTarget(w, r)
	if !ok {
		return
	}

	var req models.RecipeRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, "update recipe", err)
		return
	}

	rec, err := h.Svc.Recipes.Update(r.Context(), userID, id, recipeInput(req), partial)
	if err != nil {
		h.writeServiceError(w, r, "update recipe", err)
		return
	}

	WriteJSON(w, http.StatusOK, toRecipeDetail(rec))
}

// DeleteRecipe удаляет рецепт.
//
// @Summary      Delete recipe
// @Tags         recipe
// @Security     BearerAuth
// @Param        id path int true "Recipe id"
// @Success      204
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      404 {object} models.ErrorResponse "Not found or not owned"
// @Router       /api/recipe/recipes/{id}/ [delete]
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.recipeTarget(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Recipes.Delete(r.Context(), userID, id); err != nil {
		h.writeServiceError(w, r, "delete recipe", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// recipeTarget достаёт userID из контекста и id рецепта из пути.
// Некорректный id — 404, как у отсутствующего рецепта.
func (h *Handler) recipeTarget(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return 0, 0, false
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return 0, 0, false
	}

	return userID, id, true
}

func recipeInput(req models.RecipeRequest) service.RecipeInput {
	return service.RecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Description: req.Description,
	}
}
