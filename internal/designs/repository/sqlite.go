package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"furniture-studio/internal/studio/models"
)

// ============================================================
// SQLite Repository
// ============================================================

var ErrNotFound = errors.New("not found")

//go:embed migrations/*.sql
var migrations embed.FS

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Summary описывает строку списка дизайнов.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HasRoom   bool      `json:"has_room"`
	ItemCount int       `json:"item_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Init применяет встроенные миграции по порядку имен.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// ============================================================
// Designs
// ============================================================

func (r *Repository) Create(ctx context.Context, d *models.Design) error {
	rw, rl, rh, wc, fc := roomColumns(d.Room)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO designs (id, name, room_width, room_length, room_height, wall_color, floor_color, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, d.ID, d.Name, rw, rl, rh, wc, fc, formatTime(d.CreatedAt), formatTime(d.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert design: %w", err)
	}

	for i, item := range d.Items {
		if err := insertItem(ctx, tx, d.ID, i, item); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get загружает дизайн вместе с мебелью в порядке добавления.
func (r *Repository) Get(ctx context.Context, id string) (*models.Design, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, room_width, room_length, room_height, wall_color, floor_color, created_at, updated_at
        FROM designs
        WHERE id = ?
    `, id)

	var (
		d                  models.Design
		rw, rl, rh         sql.NullFloat64
		wc, fc             sql.NullString
		createdAt, updated string
	)
	if err := row.Scan(&d.ID, &d.Name, &rw, &rl, &rh, &wc, &fc, &createdAt, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	room, err := scanRoom(rw, rl, rh, wc, fc)
	if err != nil {
		return nil, fmt.Errorf("design %s: %w", id, err)
	}
	d.Room = room
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updated)

	items, err := r.items(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return &d, nil
}

func (r *Repository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT d.id, d.name, d.room_width IS NOT NULL, COUNT(f.id), d.updated_at
        FROM designs d
        LEFT JOIN furniture_items f ON f.design_id = d.id
        GROUP BY d.id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			s       Summary
			updated string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.HasRoom, &s.ItemCount, &updated); err != nil {
			return nil, err
		}
		s.UpdatedAt = parseTime(updated)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// UpdateRoom заменяет комнату дизайна; nil убирает комнату.
func (r *Repository) UpdateRoom(ctx context.Context, id string, room *models.Room) error {
	rw, rl, rh, wc, fc := roomColumns(room)
	res, err := r.db.ExecContext(ctx, `
        UPDATE designs
        SET room_width = ?, room_length = ?, room_height = ?, wall_color = ?, floor_color = ?, updated_at = ?
        WHERE id = ?
    `, rw, rl, rh, wc, fc, now(), id)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	return expectRow(res)
}

func (r *Repository) Rename(ctx context.Context, id, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE designs SET name = ?, updated_at = ? WHERE id = ?`, name, now(), id)
	if err != nil {
		return fmt.Errorf("rename design: %w", err)
	}
	return expectRow(res)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM furniture_items WHERE design_id = ?`, id); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM designs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	if err := expectRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

// ============================================================
// Furniture
// ============================================================

// AddItem добавляет предмет в конец списка дизайна.
func (r *Repository) AddItem(ctx context.Context, designID string, item models.FurnitureItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := touch(ctx, tx, designID); err != nil {
		return err
	}

	var next int
	if err := tx.QueryRowContext(ctx, `
        SELECT COALESCE(MAX(position) + 1, 0) FROM furniture_items WHERE design_id = ?
    `, designID).Scan(&next); err != nil {
		return fmt.Errorf("next position: %w", err)
	}

	if err := insertItem(ctx, tx, designID, next, item); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateItem перезаписывает габариты, позицию, цвет и поворот; место в списке не меняется.
func (r *Repository) UpdateItem(ctx context.Context, designID string, item models.FurnitureItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
        UPDATE furniture_items
        SET type = ?, x = ?, y = ?, width = ?, depth = ?, height = ?, color = ?, rotation = ?
        WHERE id = ? AND design_id = ?
    `, string(item.Type), item.X, item.Y, item.Width, item.Depth, item.Height, item.Color.Hex(), item.RotationAngle, item.ID, designID)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if err := expectRow(res); err != nil {
		return err
	}
	if err := touch(ctx, tx, designID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repository) DeleteItem(ctx context.Context, designID, itemID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM furniture_items WHERE id = ? AND design_id = ?`, itemID, designID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if err := expectRow(res); err != nil {
		return err
	}
	if err := touch(ctx, tx, designID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repository) items(ctx context.Context, designID string) ([]models.FurnitureItem, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, type, x, y, width, depth, height, color, rotation
        FROM furniture_items
        WHERE design_id = ?
        ORDER BY position
    `, designID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.FurnitureItem{}
	for rows.Next() {
		var (
			it    models.FurnitureItem
			typ   string
			color string
		)
		if err := rows.Scan(&it.ID, &typ, &it.X, &it.Y, &it.Width, &it.Depth, &it.Height, &color, &it.RotationAngle); err != nil {
			return nil, err
		}
		it.Type = models.FurnitureType(typ)
		if it.Color, err = models.ParseHex(color); err != nil {
			return nil, fmt.Errorf("item %s: %w", it.ID, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ============================================================
// Migrations & helpers
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

func insertItem(ctx context.Context, tx *sql.Tx, designID string, position int, item models.FurnitureItem) error {
	_, err := tx.ExecContext(ctx, `
        INSERT INTO furniture_items (id, design_id, position, type, x, y, width, depth, height, color, rotation)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, item.ID, designID, position, string(item.Type), item.X, item.Y, item.Width, item.Depth, item.Height, item.Color.Hex(), item.RotationAngle)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// touch обновляет updated_at и заодно проверяет, что дизайн существует.
func touch(ctx context.Context, tx *sql.Tx, designID string) error {
	res, err := tx.ExecContext(ctx, `UPDATE designs SET updated_at = ? WHERE id = ?`, now(), designID)
	if err != nil {
		return fmt.Errorf("touch design: %w", err)
	}
	return expectRow(res)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func roomColumns(room *models.Room) (w, l, h sql.NullFloat64, wall, floor sql.NullString) {
	if room == nil {
		return
	}
	w = sql.NullFloat64{Float64: room.Width, Valid: true}
	l = sql.NullFloat64{Float64: room.Length, Valid: true}
	h = sql.NullFloat64{Float64: room.Height, Valid: true}
	wall = sql.NullString{String: room.WallColor.Hex(), Valid: true}
	floor = sql.NullString{String: room.FloorColor.Hex(), Valid: true}
	return
}

func scanRoom(w, l, h sql.NullFloat64, wall, floor sql.NullString) (*models.Room, error) {
	if !w.Valid || !l.Valid || !h.Valid {
		return nil, nil
	}
	room := models.NewRoom(w.Float64, l.Float64, h.Float64)
	if wall.Valid {
		c, err := models.ParseHex(wall.String)
		if err != nil {
			return nil, err
		}
		room.WallColor = c
	}
	if floor.Valid {
		c, err := models.ParseHex(floor.String)
		if err != nil {
			return nil, err
		}
		room.FloorColor = c
	}
	return room, nil
}

func now() string {
	return formatTime(time.Now().UTC())
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
