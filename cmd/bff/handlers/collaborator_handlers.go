package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	bffdto "orion-console/cmd/bff/dto"
	"orion-console/cmd/bff/services"
	"orion-console/dto"
)

const collaboratorNotFound = "collaborator_not_found"

// listQuery 는 page, pageSize, filter, search 쿼리를 읽는다. 잘못된 숫자는 0 (서비스 기본값) 이 된다.
func listQuery(c *gin.Context) dto.ListQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	return dto.ListQuery{
		Page:     page,
		PageSize: pageSize,
		Filter:   c.Query("filter"),
		Search:   c.Query("search"),
	}
}

// GetCollaboratorCreateFormDataHandler godoc
// @Summary      Collaborator form data (create)
// @Description  Positions and teams for an empty collaborator form, in one response
// @Tags         collaborators
// @Produce      json
// @Success      200  {object}  dto.CollaboratorFormData
// @Failure      502  {object}  bffdto.ErrorResponseDTO
// @Router       /collaborators/form-data [get]
func GetCollaboratorCreateFormDataHandler(svc *services.CollaboratorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := svc.FormData(c.Request.Context(), "")
		if err != nil {
			writeError(c, err, collaboratorNotFound)
			return
		}
		c.JSON(http.StatusOK, data)
	}
}

// GetCollaboratorFormDataHandler godoc
// @Summary      Collaborator form data (edit)
// @Description  The collaborator together with positions and teams, in one response
// @Tags         collaborators
// @Param        id   path  string  true  "Collaborator ID"
// @Produce      json
// @Success      200  {object}  dto.CollaboratorFormData
// @Failure      404  {object}  bffdto.ErrorResponseDTO
// @Failure      502  {object}  bffdto.ErrorResponseDTO
// @Router       /collaborators/{id}/form-data [get]
func GetCollaboratorFormDataHandler(svc *services.CollaboratorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := svc.FormData(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err, collaboratorNotFound)
			return
		}
		c.JSON(http.StatusOK, data)
	}
}

// ListCollaboratorsHandler godoc
// @Summary      List collaborators (enriched)
// @Description  One page of collaborators with position and team names resolved
// @Tags         collaborators
// @Param        page      query  int     false  "Page number (1-based)"
// @Param        pageSize  query  int     false  "Page size"
// @Param        filter    query  string  false  "Field to search in"
// @Param        search    query  string  false  "Search value"
// @Produce      json
// @Success      200  {object}  dto.CollaboratorListData
// @Failure      502  {object}  bffdto.ErrorResponseDTO
// @Router       /collaborators [get]
func ListCollaboratorsHandler(svc *services.CollaboratorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := svc.List(c.Request.Context(), listQuery(c))
		if err != nil {
			writeError(c, err, collaboratorNotFound)
			return
		}
		c.JSON(http.StatusOK, data)
	}
}

// CreateCollaboratorHandler godoc
// @Summary      Create collaborator
// @Description  Validates the payload and creates a collaborator. An id is assigned when omitted.
// @Tags         collaborators
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CollaboratorRequest  true  "Collaborator"
// @Success      201  {object}  models.Collaborator
// @Failure      400  {object}  bffdto.ErrorResponseDTO
// @Failure      502  {object}  bffdto.ErrorResponseDTO
// @Router       /collaborators [post]
func CreateCollaboratorHandler(svc *services.CollaboratorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CollaboratorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindingError(c, err, req)
			return
		}
		created, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			writeError(c, err, collaboratorNotFound)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateCollaboratorHandler godoc
// @Summary      Update collaborator
// @Tags         collaborators
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Collaborator ID"
// @Param        body  body  dto.CollaboratorRequest  true  "Collaborator"
// @Success      200  {object}  models.Collaborator
// @Failure      400  {object}  bffdto.ErrorResponseDTO
// @Failure      404  {object}  bffdto.ErrorResponseDTO
// @Failure      502  {object}  bffdto.ErrorResponseDTO
// @Router       /collaborators/{id} [put]
func UpdateCollaboratorHandler(svc *services.CollaboratorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CollaboratorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindingError(c, err, req)
			return
		}
		updated, err := svc.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			writeError(c, err, collaboratorNotFound)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteCollaboratorHandler godoc
// @Summary      Delete collaborator
// @Tags         collaborators
// @Param        id   path  string  true  "Collaborator ID"
// @Produce      json
// @Success      200  {object}  bffdto.MessageResponseDTO
// @Failure      404  {object}  bffdto.ErrorResponseDTO
// @Failure      502  {object}  bffdto.ErrorResponseDTO
// @Router       /collaborators/{id} [delete]
func DeleteCollaboratorHandler(svc *services.CollaboratorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err, collaboratorNotFound)
			return
		}
		c.JSON(http.StatusOK, bffdto.MessageResponseDTO{Message: "collaborator deleted"})
	}
}
