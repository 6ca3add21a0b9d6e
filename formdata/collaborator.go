package formdata

import (
	"context"
	"strings"

	"orion-console/dto"
	"orion-console/models"
)

const (
	RefPositions = "positions"
	RefTeams     = "teams"
)

// CollaboratorFields 는 협업자 폼에서 편집하는 필드다.
type CollaboratorFields struct {
	FirstName  string   `json:"firstName" validate:"required"`
	LastName   string   `json:"lastName" validate:"required"`
	PositionID string   `json:"positionId" validate:"required"`
	TeamID     string   `json:"teamId" validate:"required"`
	Tags       []string `json:"tags"`
}

func (c *CollaboratorFields) Normalize() {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.PositionID = strings.TrimSpace(c.PositionID)
	c.TeamID = strings.TrimSpace(c.TeamID)
	c.Tags = normalizeTags(c.Tags)
}

// AddTag 는 tag 를 덧붙인다. 빈 태그와 중복 태그는 무시한다.
func (c *CollaboratorFields) AddTag(tag string) bool {
	var ok bool
	c.Tags, ok = addTag(c.Tags, tag)
	return ok
}

func (c *CollaboratorFields) RemoveTag(tag string) {
	c.Tags = removeTag(c.Tags, tag)
}

// Request 는 필드를 BFF 쓰기 요청으로 바꾼다.
func (c CollaboratorFields) Request() dto.CollaboratorRequest {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.CollaboratorRequest{
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		PositionID: c.PositionID,
		TeamID:     c.TeamID,
		Tags:       tags,
	}
}

func collaboratorFields(c *models.Collaborator) CollaboratorFields {
	return CollaboratorFields{
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		PositionID: c.PositionID,
		TeamID:     c.TeamID,
		Tags:       append([]string{}, c.Tags...),
	}
}

// CollaboratorClient 는 협업자 폼이 쓰는 BFF 클라이언트 부분이다. *apiclient.BFF 가 구현한다.
type CollaboratorClient interface {
	CollaboratorFormData(ctx context.Context, id string) (dto.CollaboratorFormData, error)
	CreateCollaborator(ctx context.Context, req dto.CollaboratorRequest) (models.Collaborator, error)
	UpdateCollaborator(ctx context.Context, id string, req dto.CollaboratorRequest) (models.Collaborator, error)
}

// CollaboratorForm 은 협업자 하나를 편집한다. id 가 비어 있으면 새로 만든다.
type CollaboratorForm = Form[models.Collaborator, CollaboratorFields]

func NewCollaboratorForm(client CollaboratorClient, id string) *CollaboratorForm {
	load := func(ctx context.Context) (Bundle[models.Collaborator], error) {
		data, err := client.CollaboratorFormData(ctx, id)
		if err != nil {
			return Bundle[models.Collaborator]{}, err
		}
		return CollaboratorBundle(data), nil
	}

	var form *CollaboratorForm
	save := func(ctx context.Context, fields CollaboratorFields, editing bool) (models.Collaborator, error) {
		if !editing {
			return client.CreateCollaborator(ctx, fields.Request())
		}
		return client.UpdateCollaborator(ctx, form.Primary().ID, fields.Request())
	}
	form = NewForm(load, save, collaboratorFields, CollaboratorFields{Tags: []string{}})
	return form
}

// CollaboratorBundle 은 BFF 응답을 Bundle 로 바꾼다.
func CollaboratorBundle(data dto.CollaboratorFormData) Bundle[models.Collaborator] {
	positions := make([]models.Reference, 0, len(data.Positions))
	for _, p := range data.Positions {
		positions = append(positions, p.Reference())
	}
	teams := make([]models.Reference, 0, len(data.Teams))
	for _, t := range data.Teams {
		teams = append(teams, t.Reference())
	}
	return Bundle[models.Collaborator]{
		Primary: data.Collaborator,
		References: map[string][]models.Reference{
			RefPositions: positions,
			RefTeams:     teams,
		},
	}
}
