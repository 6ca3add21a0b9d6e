package apiclient

import (
	"context"
	"net/http"

	"orion-console/dto"
	"orion-console/httpclient"
	"orion-console/models"
)

// BFF 는 Backend-for-Frontend(/api/bff) 클라이언트다.
type BFF struct {
	c caller
}

func NewBFF(baseURL string) *BFF {
	return NewBFFWithBase(httpclient.NewBaseClient(baseURL))
}

func NewBFFWithBase(base *httpclient.BaseClient) *BFF {
	return &BFF{c: caller{base: base}}
}

// CollaboratorFormData 는 collaborator 폼 번들을 요청 한 번으로 가져온다.
// id 가 비어 있으면 생성 모드다. (응답의 collaborator 는 null)
func (b *BFF) CollaboratorFormData(ctx context.Context, id string) (dto.CollaboratorFormData, error) {
	const op = "fetch collaborator form data"
	relPath := "/collaborators/form-data"
	if id != "" {
		p, err := entityPath(op, "/collaborators", id, "form-data")
		if err != nil {
			return dto.CollaboratorFormData{}, err
		}
		relPath = p
	}
	var out dto.CollaboratorFormData
	if err := b.c.call(ctx, op, http.MethodGet, relPath, nil, nil, nil, &out); err != nil {
		return dto.CollaboratorFormData{}, err
	}
	if out.Positions == nil {
		out.Positions = []models.Position{}
	}
	if out.Teams == nil {
		out.Teams = []models.Team{}
	}
	return out, nil
}

// Collaborators 는 position/team 이름이 채워진 목록 한 페이지를 공통 목록 형태로 바꿔 반환한다.
func (b *BFF) Collaborators(ctx context.Context, q dto.ListQuery) (dto.ListResponse[models.CollaboratorView], error) {
	var out dto.CollaboratorListData
	if err := b.c.call(ctx, "fetch collaborators list", http.MethodGet, "/collaborators", ListValues(q), nil, nil, &out); err != nil {
		return dto.ListResponse[models.CollaboratorView]{}, err
	}
	data := out.Collaborators
	if data == nil {
		data = []models.CollaboratorView{}
	}
	return dto.ListResponse[models.CollaboratorView]{
		Data:       data,
		Pagination: out.Pagination,
		Metadata:   out.Metadata,
	}, nil
}

func (b *BFF) CreateCollaborator(ctx context.Context, req dto.CollaboratorRequest) (models.Collaborator, error) {
	var out models.Collaborator
	err := b.c.call(ctx, "create collaborator", http.MethodPost, "/collaborators", nil, nil, req, &out)
	return out, err
}

func (b *BFF) UpdateCollaborator(ctx context.Context, id string, req dto.CollaboratorRequest) (models.Collaborator, error) {
	const op = "update collaborator"
	var out models.Collaborator
	p, err := entityPath(op, "/collaborators", id)
	if err != nil {
		return out, err
	}
	err = b.c.call(ctx, op, http.MethodPut, p, nil, nil, req, &out)
	return out, err
}

func (b *BFF) DeleteCollaborator(ctx context.Context, id string) error {
	const op = "delete collaborator"
	p, err := entityPath(op, "/collaborators", id)
	if err != nil {
		return err
	}
	return b.c.call(ctx, op, http.MethodDelete, p, nil, nil, nil, nil)
}

// TeamOverview 는 팀과 멤버, 팀이 소유한 프로젝트를 한 번에 가져온다.
func (b *BFF) TeamOverview(ctx context.Context, teamID string) (dto.TeamOverview, error) {
	const op = "fetch team overview"
	var out dto.TeamOverview
	p, err := entityPath(op, "/teams", teamID, "overview")
	if err != nil {
		return out, err
	}
	err = b.c.call(ctx, op, http.MethodGet, p, nil, nil, nil, &out)
	return out, err
}
