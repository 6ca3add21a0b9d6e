package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"orion-console/apiclient"
	bffdto "orion-console/cmd/bff/dto"
	"orion-console/formdata"
	"orion-console/microfrontend"
)

// writeError 는 서비스 에러를 HTTP 응답으로 변환한다.
//
// - 검증 실패: 400 + 필드별 사유
// - 경로에 쓸 수 없는 id("", ".", ".."): 400, REST API 는 호출하지 않는다
// - REST API 404: 404 (notFoundCode)
// - REST API 가 요청을 거절(400/409/422): 같은 상태 코드로 전달
// - 그 외 REST API 실패: 502
func writeError(c *gin.Context, err error, notFoundCode string) {
	_ = c.Error(err)

	var verr *formdata.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, bffdto.ErrorResponseDTO{Error: "validation_failed", Details: verr.Fields})
	case errors.Is(err, apiclient.ErrInvalidID):
		c.JSON(http.StatusBadRequest, bffdto.ErrorResponseDTO{Error: "invalid_id", Message: err.Error()})
	case errors.Is(err, microfrontend.ErrMalformed):
		c.JSON(http.StatusBadRequest, bffdto.ErrorResponseDTO{Error: "malformed_message", Message: err.Error()})
	case errors.Is(err, apiclient.ErrNotFound):
		c.JSON(http.StatusNotFound, bffdto.ErrorResponseDTO{Error: notFoundCode})
	default:
		switch status := apiclient.StatusCode(err); status {
		case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
			c.JSON(status, bffdto.ErrorResponseDTO{Error: "upstream_rejected", Message: err.Error()})
		default:
			c.JSON(http.StatusBadGateway, bffdto.ErrorResponseDTO{Error: "upstream_request_failed", Message: err.Error()})
		}
	}
}

// writeBindingError 는 gin 바인딩 실패를 400 으로 응답한다. 필드 이름은 json 태그를 따른다.
func writeBindingError(c *gin.Context, err error, target any) {
	_ = c.Error(err)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, bffdto.ErrorResponseDTO{Error: "invalid_request_body", Message: err.Error()})
		return
	}
	details := make(map[string]string, len(verrs))
	t := reflect.TypeOf(target)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range verrs {
		details[jsonFieldName(t, fe.StructField())] = fe.Tag()
	}
	c.JSON(http.StatusBadRequest, bffdto.ErrorResponseDTO{Error: "validation_failed", Details: details})
}

func jsonFieldName(t reflect.Type, field string) string {
	if t.Kind() != reflect.Struct {
		return field
	}
	sf, ok := t.FieldByName(field)
	if !ok {
		return field
	}
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return field
	}
	return name
}
