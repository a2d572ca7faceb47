package repositories

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"session-service/internal/models"
)

// UserRepository owns the user directory. UpdateUser upserts and returns the
// full directory; DeleteUserByName is the startup directory-repair hook and
// reports whether anything was removed.
type UserRepository interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) ([]models.User, error)
	DeleteUserByName(ctx context.Context, name string) (bool, error)
}

// UserRepo is a sqlx-backed repository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

type userRow struct {
	ID               string          `db:"id"`
	Name             string          `db:"name"`
	Password         string          `db:"password"`
	Online           bool            `db:"online"`
	Latitude         sql.NullFloat64 `db:"latitude"`
	Longitude        sql.NullFloat64 `db:"longitude"`
	Accuracy         sql.NullFloat64 `db:"accuracy"`
	Altitude         sql.NullFloat64 `db:"altitude"`
	AltitudeAccuracy sql.NullFloat64 `db:"altitude_accuracy"`
	Heading          sql.NullFloat64 `db:"heading"`
	Speed            sql.NullFloat64 `db:"speed"`
}

func (row userRow) toUser() models.User {
	u := models.User{ID: row.ID, Name: row.Name, Password: row.Password, Online: row.Online}
	if row.Latitude.Valid && row.Longitude.Valid {
		coords := &models.Coordinates{
			Latitude:  row.Latitude.Float64,
			Longitude: row.Longitude.Float64,
			Accuracy:  row.Accuracy.Float64,
		}
		coords.Altitude = nullable(row.Altitude)
		coords.AltitudeAccuracy = nullable(row.AltitudeAccuracy)
		coords.Heading = nullable(row.Heading)
		coords.Speed = nullable(row.Speed)
		u.Location = coords
	}
	return u
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

const userColumns = `id, name, password, online, latitude, longitude, accuracy, altitude, altitude_accuracy, heading, speed`

// GetUsers returns the full user directory.
func (r *UserRepo) GetUsers(ctx context.Context) ([]models.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+userColumns+` FROM users ORDER BY name ASC`); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, nil
}

// UpdateUser upserts a user, last-write-wins, and returns the full directory.
func (r *UserRepo) UpdateUser(ctx context.Context, user models.User) ([]models.User, error) {
	var lat, lon, acc, alt, altAcc, heading, speed any
	if loc := user.Location; loc != nil {
		lat, lon, acc = loc.Latitude, loc.Longitude, loc.Accuracy
		alt, altAcc, heading, speed = deref(loc.Altitude), deref(loc.AltitudeAccuracy), deref(loc.Heading), deref(loc.Speed)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
         ON CONFLICT (id) DO UPDATE SET
             name=EXCLUDED.name, password=EXCLUDED.password, online=EXCLUDED.online,
             latitude=EXCLUDED.latitude, longitude=EXCLUDED.longitude, accuracy=EXCLUDED.accuracy,
             altitude=EXCLUDED.altitude, altitude_accuracy=EXCLUDED.altitude_accuracy,
             heading=EXCLUDED.heading, speed=EXCLUDED.speed`,
		user.ID, user.Name, user.Password, user.Online, lat, lon, acc, alt, altAcc, heading, speed)
	if err != nil {
		return nil, err
	}
	return r.GetUsers(ctx)
}

func deref(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// DeleteUserByName removes a directory entry and its group memberships.
func (r *UserRepo) DeleteUserByName(ctx context.Context, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE name=$1`, name)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	// Removing a user also removes them from group membership lists.
	_, err = r.db.ExecContext(ctx, `DELETE FROM group_members WHERE user_id NOT IN (SELECT id FROM users)`)
	return true, err
}
