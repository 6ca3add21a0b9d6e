package formdata

import (
	"strings"

	"orion-console/models"
)

// TeamFields 는 팀 폼에서 편집하는 필드다.
type TeamFields struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func (t *TeamFields) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	t.Description = strings.TrimSpace(t.Description)
	t.Tags = normalizeTags(t.Tags)
}

func (t *TeamFields) AddTag(tag string) bool {
	var ok bool
	t.Tags, ok = addTag(t.Tags, tag)
	return ok
}

func (t *TeamFields) RemoveTag(tag string) {
	t.Tags = removeTag(t.Tags, tag)
}

type TeamForm = Form[models.Team, TeamFields]

// NewTeamForm 은 팀 하나를 편집한다. id 가 비어 있으면 새 팀을 만든다.
func NewTeamForm(client ResourceClient[models.Team], id string) *TeamForm {
	return NewResourceForm(client, id, teamFields, TeamFields{Tags: []string{}}, func(id string, f TeamFields) any {
		return models.Team{ID: id, Name: f.Name, Description: f.Description, Tags: nonNilTags(f.Tags)}
	})
}

func teamFields(t *models.Team) TeamFields {
	return TeamFields{Name: t.Name, Description: t.Description, Tags: append([]string{}, t.Tags...)}
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
