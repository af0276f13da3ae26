package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"emptycup-directory/internal/domain"
	"emptycup-directory/internal/service"
	httpez "emptycup-directory/internal/transport/http/ez"
	resp "emptycup-directory/internal/transport/http/response"
)

// fail 把领域错误翻译成响应码
func fail(err error) error {
	var ve *domain.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ve):
		return &httpez.AErr{Code: resp.CodeBadRequest, Msg: ve.Error(), Data: gin.H{"problems": ve.Problems}}
	case errors.Is(err, service.ErrSessionNotFound):
		return httpez.NotFound("session not found")
	case errors.Is(err, domain.ErrDesignerNotFound):
		return httpez.NotFound("designer not found")
	}
	var ae *httpez.AErr
	if errors.As(err, &ae) {
		return err
	}
	return httpez.Internal("internal error", err)
}

func paramID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, httpez.BadRequest("invalid " + name)
	}
	return id, nil
}
