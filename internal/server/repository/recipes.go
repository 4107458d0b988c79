package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/models"
	serr "github.com/aaronsummercloud/recipe-api-project/internal/shared/errors"
)

const recipeColumns = `id, user_id, title, time_minutes, price, link, description`

// RecipesRepository реализует доступ к рецептам (PostgreSQL).
// Каждый запрос фильтруется по user_id: чужие рецепты для репозитория не существуют.
type RecipesRepository struct {
	db *sql.DB
}

// NewRecipesRepository создаёт новый экземпляр RecipesRepository.
func NewRecipesRepository(db *sql.DB) *RecipesRepository {
	return &RecipesRepository{db: db}
}

// Create сохраняет новый рецепт и возвращает его id.
func (r *RecipesRepository) Create(ctx context.Context, rec models.Recipe) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO recipes (user_id, title, time_minutes, price, link, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		rec.UserID, rec.Title, rec.TimeMinutes, rec.Price, rec.Link, rec.Description,
	).Scan(&id)
	if err != nil {
		return 0, serr.ErrInternal
	}
	return id, nil
}

// ListByUser возвращает рецепты пользователя, новые первыми (id DESC).
func (r *RecipesRepository) ListByUser(ctx context.Context, userID int64) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recipeColumns+`
		  FROM recipes
		 WHERE user_id = $1
		 ORDER BY id DESC
	`, userID)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	out := make([]models.Recipe, 0)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}
	return out, nil
}

// GetByID возвращает рецепт пользователя. Чужой рецепт — ErrNotFound.
func (r *RecipesRepository) GetByID(ctx context.Context, userID, id int64) (models.Recipe, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recipeColumns+`
		  FROM recipes
		 WHERE id = $1 AND user_id = $2
	`, id, userID)
	return scanRecipe(row)
}

// Update перезаписывает поля рецепта. Владелец не меняется.
func (r *RecipesRepository) Update(ctx context.Context, rec models.Recipe) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE recipes
		   SET title = $3, time_minutes = $4, price = $5, link = $6, description = $7
		 WHERE id = $1 AND user_id = $2
	`,
		rec.ID, rec.UserID, rec.Title, rec.TimeMinutes, rec.Price, rec.Link, rec.Description,
	)
	if err != nil {
		return serr.ErrInternal
	}
	return expectAffected(res)
}

// Delete удаляет рецепт пользователя.
func (r *RecipesRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return serr.ErrInternal
	}
	return expectAffected(res)
}

func scanRecipe(row rowScanner) (models.Recipe, error) {
	var rec models.Recipe
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.TimeMinutes, &rec.Price, &rec.Link, &rec.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Recipe{}, serr.ErrNotFound
		}
		return models.Recipe{}, serr.ErrInternal
	}
	return rec, nil
}
