package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/didi/gendry/builder"

	"github.com/allinone/manager/internal/model"
	"github.com/allinone/manager/internal/pkg/dbutil"
	appErr "github.com/allinone/manager/internal/pkg/errors"
)

var appColumns = []string{"id", "name", "slug", "description", "owner_id", "meta", "created_at", "updated_at"}

type AppRepo struct {
	db *sql.DB
}

func NewAppRepo(db *sql.DB) *AppRepo {
	return &AppRepo{db: db}
}

func scanApp(rows *sql.Rows) (*model.App, error) {
	var app model.App
	var meta []byte
	if err := rows.Scan(&app.ID, &app.Name, &app.Slug, &app.Description, &app.OwnerID, &meta, &app.CreatedAt, &app.UpdatedAt); err != nil {
		return nil, err
	}
	app.Meta = json.RawMessage(meta)
	return &app, nil
}

func (r *AppRepo) Create(ctx context.Context, app *model.App) error {
	meta := app.Meta
	if len(meta) == 0 {
		meta = json.RawMessage("{}")
		app.Meta = meta
	}
	data := map[string]interface{}{
		"name":        app.Name,
		"slug":        app.Slug,
		"description": app.Description,
		"owner_id":    app.OwnerID,
		"meta":        string(meta),
	}
	sqlStr, args, err := builder.BuildInsert("apps", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	sqlStr += " RETURNING id, created_at, updated_at"
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *AppRepo) List(ctx context.Context) ([]model.App, error) {
	where := map[string]interface{}{"_orderby": "id desc"}
	sqlStr, args, err := builder.BuildSelect("apps", where, appColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]model.App, 0)
	for rows.Next() {
		app, err := scanApp(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *AppRepo) GetByID(ctx context.Context, id int64) (*model.App, error) {
	sqlStr, args, err := builder.BuildSelect("apps", map[string]interface{}{"id": id}, appColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, appErr.ErrNotFound
	}
	return scanApp(rows)
}

// UpdateFields applies a partial update and refreshes updated_at. owner_id
// is set at creation only and never touched here.
func (r *AppRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return appErr.ErrInvalid
	}
	fields["updated_at"] = time.Now()
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildUpdate("apps", where, fields)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *AppRepo) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := builder.BuildDelete("apps", map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
