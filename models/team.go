package models

// Team 은 개발 팀이다. 프로젝트는 팀이 소유한다.
type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

func (t Team) Reference() Reference {
	return Reference{ID: t.ID, Name: t.Name}
}
