package models

// Collaborator 는 직책과 팀에 배정된 사람이다.
// PositionID, TeamID 는 Position.ID, Team.ID 를 가리킨다.
type Collaborator struct {
	ID         string   `json:"id"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	PositionID string   `json:"positionId"`
	TeamID     string   `json:"teamId"`
	Tags       []string `json:"tags"`
	CreatedAt  string   `json:"createdAt,omitempty"`
	UpdatedAt  string   `json:"updatedAt,omitempty"`
}

// FullName 은 이름과 성을 잇는다.
func (c Collaborator) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// CollaboratorView 는 표시용으로 직책과 팀을 채운 협업자다.
// 참조를 찾지 못하면 Position/Team 은 nil 이고 이름 필드에는 원래 id 가 들어간다.
type CollaboratorView struct {
	Collaborator
	Position     *Reference `json:"position,omitempty"`
	Team         *Reference `json:"team,omitempty"`
	PositionName string     `json:"positionName"`
	TeamName     string     `json:"teamName"`
}
