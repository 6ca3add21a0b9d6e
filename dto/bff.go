package dto

import "orion-console/models"

// CollaboratorFormData 는 협업자 폼에 필요한 모든 것을 한 응답에 담는다.
// 생성 모드에서는 Collaborator 가 nil 이다.
type CollaboratorFormData struct {
	Collaborator *models.Collaborator `json:"collaborator"`
	Positions    []models.Position    `json:"positions"`
	Teams        []models.Team        `json:"teams"`
}

// CollaboratorListData 는 BFF 가 직책, 팀 이름을 채워 돌려주는 협업자 목록이다.
type CollaboratorListData struct {
	Collaborators []models.CollaboratorView `json:"collaborators"`
	Pagination    PaginationInfo            `json:"pagination"`
	Metadata      *Metadata                 `json:"metadata,omitempty"`
}

// CollaboratorRequest 는 협업자 쓰기 요청이다.
// 생성 시 ID 는 선택이며 비어 있으면 BFF 가 부여한다.
type CollaboratorRequest struct {
	ID         string   `json:"id,omitempty"`
	FirstName  string   `json:"firstName" binding:"required"`
	LastName   string   `json:"lastName" binding:"required"`
	PositionID string   `json:"positionId" binding:"required"`
	TeamID     string   `json:"teamId" binding:"required"`
	Tags       []string `json:"tags"`
}

// TeamOverview 는 팀과 멤버, 팀이 소유한 프로젝트를 모은다.
type TeamOverview struct {
	Team     models.Team                  `json:"team"`
	Members  []models.CollaboratorView    `json:"members"`
	Projects ListResponse[models.Project] `json:"projects"`
}
