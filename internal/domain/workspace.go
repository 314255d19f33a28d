package domain

import (
	"time"

	"github.com/google/uuid"
)

type WorkspaceRole string

const (
	WorkspaceRoleOwner  WorkspaceRole = "owner"
	WorkspaceRoleAdmin  WorkspaceRole = "admin"
	WorkspaceRoleMember WorkspaceRole = "member"
	WorkspaceRoleViewer WorkspaceRole = "viewer"
)

const DefaultWorkspaceColor = "#3B82F6"

type Workspace struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Color       string    `db:"color" json:"color"`
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`

	Members []WorkspaceMember `db:"-" json:"members"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type WorkspaceMember struct {
	WorkspaceID uuid.UUID     `db:"workspace_id" json:"-"`
	UserID      uuid.UUID     `db:"user_id" json:"user_id"`
	Role        WorkspaceRole `db:"role" json:"role"`
	JoinedAt    time.Time     `db:"joined_at" json:"joined_at"`

	User *UserSummary `db:"-" json:"user,omitempty"`
}

// HasMember is the single authorization predicate for workspace access.
func (w *Workspace) HasMember(userID uuid.UUID) bool {
	for _, m := range w.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
