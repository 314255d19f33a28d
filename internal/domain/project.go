package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "Planning"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectOnHold     ProjectStatus = "On-Hold"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectCancelled  ProjectStatus = "Cancelled"
)

type ProjectRole string

const (
	ProjectRoleManager     ProjectRole = "manager"
	ProjectRoleContributor ProjectRole = "contributor"
	ProjectRoleViewer      ProjectRole = "viewer"
)

// StringList is stored as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}

	return json.Unmarshal(bytes, l)
}

type Project struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	WorkspaceID uuid.UUID     `db:"workspace_id" json:"workspace_id"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	Status      ProjectStatus `db:"status" json:"status"`
	StartDate   time.Time     `db:"start_date" json:"start_date"`
	DueDate     *time.Time    `db:"due_date" json:"due_date,omitempty"`
	Progress    int           `db:"progress" json:"progress"`
	Tags        StringList    `db:"tags" json:"tags"`
	CreatedBy   uuid.UUID     `db:"created_by" json:"created_by"`
	IsArchived  bool          `db:"is_archived" json:"is_archived"`

	Members []ProjectMember `db:"-" json:"members"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type ProjectMember struct {
	ProjectID uuid.UUID   `db:"project_id" json:"-"`
	UserID    uuid.UUID   `db:"user_id" json:"user_id"`
	Role      ProjectRole `db:"role" json:"role"`

	User *UserSummary `db:"-" json:"user,omitempty"`
}

func (p *Project) HasMember(userID uuid.UUID) bool {
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
