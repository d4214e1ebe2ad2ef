// file: utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: msg, Data: data})
}

func Created(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Msg: msg, Data: data})
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(httpStatus(code), Response{Code: code, Msg: msg})
}

// httpStatus 业务错误码到 HTTP 状态码的映射
//
//	1xxx 参数/校验错误          -> 400
//	2002 凭证错误               -> 401
//	2xxx 业务状态冲突           -> 409
//	4001/4002 未认证            -> 401
//	4003 已认证但无权限          -> 403
//	4004 资源不存在             -> 404
//	5xxx 数据库/存储等内部错误    -> 500
func httpStatus(code int) int {
	switch {
	case code >= 1000 && code < 2000:
		return http.StatusBadRequest
	case code == 2002:
		return http.StatusUnauthorized
	case code >= 2000 && code < 3000:
		return http.StatusConflict
	case code == 4001 || code == 4002:
		return http.StatusUnauthorized
	case code == 4003:
		return http.StatusForbidden
	case code == 4004:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
