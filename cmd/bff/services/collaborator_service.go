package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"orion-console/apiclient"
	"orion-console/cmd/bff/metrics"
	"orion-console/dto"
	"orion-console/formdata"
	"orion-console/models"
)

// PageSizePolicy 는 목록 요청의 pageSize 기본값과 상한이다.
type PageSizePolicy struct {
	Default int
	Max     int
}

// Normalize 는 page 와 pageSize 를 유효 범위로 맞춘다.
func (p PageSizePolicy) Normalize(q dto.ListQuery) dto.ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = p.Default
	}
	if p.Max > 0 && q.PageSize > p.Max {
		q.PageSize = p.Max
	}
	q.Filter = strings.TrimSpace(q.Filter)
	return q
}

// CollaboratorService 는 collaborator 화면용 composite 응답을 만든다.
//
// - api: REST API 클라이언트. 하나의 응답에 필요한 호출은 병렬로 수행한다.
// - refs: positions/teams dropdown 목록 (캐시 경유)
type CollaboratorService struct {
	api    *apiclient.Client
	refs   *ReferenceService
	paging PageSizePolicy
}

func NewCollaboratorService(api *apiclient.Client, refs *ReferenceService, paging PageSizePolicy) *CollaboratorService {
	return &CollaboratorService{api: api, refs: refs, paging: paging}
}

// FormData 는 collaborator(편집 시), positions, teams 를 한 번에 조회한다.
// 셋 중 하나라도 실패하면 전체가 실패한다.
func (s *CollaboratorService) FormData(ctx context.Context, id string) (out dto.CollaboratorFormData, err error) {
	defer func(start time.Time) { metrics.ObserveAggregate("collaborator_form_data", start, err) }(time.Now())

	g, gctx := errgroup.WithContext(ctx)
	var collaborator *models.Collaborator
	var positions []models.Position
	var teams []models.Team

	if id != "" {
		g.Go(func() error {
			c, err := s.api.Collaborators.Get(gctx, id)
			if err != nil {
				return err
			}
			collaborator = &c
			return nil
		})
	}
	g.Go(func() (err error) {
		positions, err = s.refs.Positions(gctx)
		return err
	})
	g.Go(func() (err error) {
		teams, err = s.refs.Teams(gctx)
		return err
	})
	if err = g.Wait(); err != nil {
		return dto.CollaboratorFormData{}, err
	}

	return dto.CollaboratorFormData{
		Collaborator: collaborator,
		Positions:    positions,
		Teams:        teams,
	}, nil
}

// List 는 collaborators 한 페이지와 참조 목록을 병렬로 조회해
// position/team 이름을 채운 목록을 반환한다.
func (s *CollaboratorService) List(ctx context.Context, q dto.ListQuery) (out dto.CollaboratorListData, err error) {
	defer func(start time.Time) { metrics.ObserveAggregate("collaborator_list", start, err) }(time.Now())

	q = s.paging.Normalize(q)
	g, gctx := errgroup.WithContext(ctx)
	var page dto.ListResponse[models.Collaborator]
	var positions []models.Position
	var teams []models.Team

	g.Go(func() (err error) {
		page, err = s.api.Collaborators.List(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		positions, err = s.refs.Positions(gctx)
		return err
	})
	g.Go(func() (err error) {
		teams, err = s.refs.Teams(gctx)
		return err
	})
	if err = g.Wait(); err != nil {
		return dto.CollaboratorListData{}, err
	}

	return dto.CollaboratorListData{
		Collaborators: EnrichCollaborators(page.Data, positions, teams),
		Pagination:    page.Pagination,
		Metadata:      page.Metadata,
	}, nil
}

// Create 는 요청을 검증하고 id 가 없으면 uuid 를 부여해 REST API 로 전달한다.
func (s *CollaboratorService) Create(ctx context.Context, req dto.CollaboratorRequest) (models.Collaborator, error) {
	req, err := normalizeCollaboratorRequest(req)
	if err != nil {
		return models.Collaborator{}, err
	}
	if strings.TrimSpace(req.ID) == "" {
		req.ID = uuid.NewString()
	}
	return s.api.Collaborators.Create(ctx, req)
}

func (s *CollaboratorService) Update(ctx context.Context, id string, req dto.CollaboratorRequest) (models.Collaborator, error) {
	req, err := normalizeCollaboratorRequest(req)
	if err != nil {
		return models.Collaborator{}, err
	}
	req.ID = id
	return s.api.Collaborators.Update(ctx, id, req)
}

func (s *CollaboratorService) Delete(ctx context.Context, id string) error {
	return s.api.Collaborators.Delete(ctx, id)
}

// normalizeCollaboratorRequest 는 콘솔 폼과 같은 규칙(trim, 필수 필드, 태그 중복 제거)으로 검증한다.
func normalizeCollaboratorRequest(req dto.CollaboratorRequest) (dto.CollaboratorRequest, error) {
	fields := formdata.CollaboratorFields{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		PositionID: req.PositionID,
		TeamID:     req.TeamID,
		Tags:       req.Tags,
	}
	fields.Normalize()
	if err := formdata.Validate(fields); err != nil {
		return dto.CollaboratorRequest{}, err
	}
	out := fields.Request()
	out.ID = strings.TrimSpace(req.ID)
	return out, nil
}

// EnrichCollaborators 는 positionId/teamId 를 이름으로 풀어낸다.
// 찾지 못한 참조는 원래 id 를 이름으로 사용한다.
func EnrichCollaborators(cs []models.Collaborator, positions []models.Position, teams []models.Team) []models.CollaboratorView {
	posIdx := make(models.ReferenceIndex, len(positions))
	for _, p := range positions {
		posIdx[p.ID] = p.Reference()
	}
	teamIdx := make(models.ReferenceIndex, len(teams))
	for _, t := range teams {
		teamIdx[t.ID] = t.Reference()
	}

	out := make([]models.CollaboratorView, 0, len(cs))
	for _, c := range cs {
		v := models.CollaboratorView{
			Collaborator: c,
			PositionName: posIdx.NameOf(c.PositionID),
			TeamName:     teamIdx.NameOf(c.TeamID),
		}
		v.Position, _ = posIdx.Lookup(c.PositionID)
		v.Team, _ = teamIdx.Lookup(c.TeamID)
		out = append(out, v)
	}
	return out
}
