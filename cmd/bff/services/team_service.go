package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"orion-console/apiclient"
	"orion-console/cmd/bff/metrics"
	"orion-console/dto"
	"orion-console/models"
)

const (
	// membersPageSize 는 팀 멤버를 한 번에 가져올 때의 pageSize 이다.
	membersPageSize = 100

	FilterTeamID  = "teamId"
	FilterOwnerID = "ownerId"
)

// TeamService 는 "내 팀" 홈 화면의 composite 응답을 만든다.
type TeamService struct {
	api    *apiclient.Client
	refs   *ReferenceService
	paging PageSizePolicy
}

func NewTeamService(api *apiclient.Client, refs *ReferenceService, paging PageSizePolicy) *TeamService {
	return &TeamService{api: api, refs: refs, paging: paging}
}

// Overview 는 팀 정보, 멤버(teamId 필터), 팀이 소유한 프로젝트(ownerId 필터) 를 병렬로 조회한다.
// projects 의 page/pageSize 는 q 를 따른다.
func (s *TeamService) Overview(ctx context.Context, teamID string, q dto.ListQuery) (out dto.TeamOverview, err error) {
	defer func(start time.Time) { metrics.ObserveAggregate("team_overview", start, err) }(time.Now())

	q = s.paging.Normalize(q)
	q.Filter = FilterOwnerID
	q.Search = teamID

	g, gctx := errgroup.WithContext(ctx)
	var team models.Team
	var members dto.ListResponse[models.Collaborator]
	var projects dto.ListResponse[models.Project]
	var positions []models.Position

	g.Go(func() (err error) {
		team, err = s.api.Teams.Get(gctx, teamID)
		return err
	})
	g.Go(func() (err error) {
		members, err = s.api.Collaborators.List(gctx, dto.ListQuery{
			Page:     1,
			PageSize: membersPageSize,
			Filter:   FilterTeamID,
			Search:   teamID,
		})
		return err
	})
	g.Go(func() (err error) {
		projects, err = s.api.Projects.List(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		positions, err = s.refs.Positions(gctx)
		return err
	})
	if err = g.Wait(); err != nil {
		return dto.TeamOverview{}, err
	}

	return dto.TeamOverview{
		Team:     team,
		Members:  EnrichCollaborators(members.Data, positions, []models.Team{team}),
		Projects: projects,
	}, nil
}
