package models

// Position 은 협업자가 맡는 직책이다.
type Position struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// Reference 는 직책을 조회용 항목으로 바꾼다.
func (p Position) Reference() Reference {
	return Reference{ID: p.ID, Name: p.Name}
}
