package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"session-service/internal/models"
)

// GroupRepository reads the group directory. Groups are read-only to the
// session core.
type GroupRepository interface {
	GetGroups(ctx context.Context) ([]models.Group, error)
}

// GroupRepo is a sqlx-backed repository.
type GroupRepo struct {
	db *sqlx.DB
}

// NewGroupRepo constructs GroupRepo.
func NewGroupRepo(db *sqlx.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// GetGroups returns all groups with their member lists.
func (r *GroupRepo) GetGroups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.SelectContext(ctx, &groups, `SELECT id, name, creator_id FROM groups ORDER BY name ASC`); err != nil {
		return nil, err
	}

	type memberRow struct {
		GroupID string `db:"group_id"`
		UserID  string `db:"user_id"`
	}
	var members []memberRow
	if err := r.db.SelectContext(ctx, &members, `SELECT group_id, user_id FROM group_members`); err != nil {
		return nil, err
	}

	byGroup := map[string][]string{}
	for _, m := range members {
		byGroup[m.GroupID] = append(byGroup[m.GroupID], m.UserID)
	}
	for i := range groups {
		groups[i].MemberIDs = byGroup[groups[i].ID]
	}
	return groups, nil
}
