package apiclient

import (
	"context"
	"net/http"

	"orion-console/httpclient"
	"orion-console/models"
)

// Client 는 REST API(/api) 클라이언트다. 리소스마다 Resource 하나를 가진다.
type Client struct {
	base *httpclient.BaseClient

	Positions     *Resource[models.Position]
	Teams         *Resource[models.Team]
	Collaborators *Resource[models.Collaborator]
	Projects      *Resource[models.Project]
}

// New 는 baseURL(예: http://localhost:3001/api) 로 REST 클라이언트를 만든다.
func New(baseURL string) *Client {
	return NewWithBase(httpclient.NewBaseClient(baseURL))
}

func NewWithBase(base *httpclient.BaseClient) *Client {
	return &Client{
		base:          base,
		Positions:     NewResource[models.Position](base, "/positions"),
		Teams:         NewResource[models.Team](base, "/teams"),
		Collaborators: NewResource[models.Collaborator](base, "/collaborators"),
		Projects:      NewResource[models.Project](base, "/projects"),
	}
}

// Health 는 GET /health 로 REST API 상태를 확인한다.
func (c *Client) Health(ctx context.Context) error {
	return caller{base: c.base}.call(ctx, "check api health", http.MethodGet, "/health", nil, nil, nil, nil)
}
