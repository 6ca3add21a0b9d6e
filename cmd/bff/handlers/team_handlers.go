package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orion-console/cmd/bff/services"
)

// GetTeamOverviewHandler godoc
// @Summary      Team overview
// @Description  A team with its members (position names resolved) and one page of the projects it owns
// @Tags         teams
// @Param        id        path   string  true   "Team ID"
// @Param        page      query  int     false  "Projects page (1-based)"
// @Param        pageSize  query  int     false  "Projects page size"
// @Produce      json
// @Success      200  {object}  dto.TeamOverview
// @Failure      404  {object}  bffdto.ErrorResponseDTO
// @Failure      502  {object}  bffdto.ErrorResponseDTO
// @Router       /teams/{id}/overview [get]
func GetTeamOverviewHandler(svc *services.TeamService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Overview(c.Request.Context(), c.Param("id"), listQuery(c))
		if err != nil {
			writeError(c, err, "team_not_found")
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
