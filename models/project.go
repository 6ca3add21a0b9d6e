package models

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "ACTIVE"
	ProjectStatusDraft    ProjectStatus = "DRAFT"
	ProjectStatusInactive ProjectStatus = "INACTIVE"
)

// Project 는 팀이 소유한 작업 단위다. OwnerID 는 Team.ID 다.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	Type        string        `json:"type,omitempty"`
	OwnerID     string        `json:"ownerId"`
	Tags        []string      `json:"tags,omitempty"`
	CreatedAt   string        `json:"createdAt,omitempty"`
	UpdatedAt   string        `json:"updatedAt,omitempty"`
}
