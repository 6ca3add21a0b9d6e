package formdata

import (
	"strings"

	"orion-console/models"
)

type PositionFields struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func (p *PositionFields) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Tags = normalizeTags(p.Tags)
}

func (p *PositionFields) AddTag(tag string) bool {
	var ok bool
	p.Tags, ok = addTag(p.Tags, tag)
	return ok
}

func (p *PositionFields) RemoveTag(tag string) {
	p.Tags = removeTag(p.Tags, tag)
}

type PositionForm = Form[models.Position, PositionFields]

// NewPositionForm 은 직책 하나를 편집한다. id 가 비어 있으면 새 직책을 만든다.
func NewPositionForm(client ResourceClient[models.Position], id string) *PositionForm {
	return NewResourceForm(client, id, positionFields, PositionFields{Tags: []string{}}, func(id string, f PositionFields) any {
		return models.Position{ID: id, Name: f.Name, Description: f.Description, Tags: nonNilTags(f.Tags)}
	})
}

func positionFields(p *models.Position) PositionFields {
	return PositionFields{Name: p.Name, Description: p.Description, Tags: append([]string{}, p.Tags...)}
}
