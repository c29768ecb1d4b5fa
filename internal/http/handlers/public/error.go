package public

import (
	"errors"

	handlershared "github.com/pizzaorder-next/internal/http/handlers/shared"
	"github.com/pizzaorder-next/internal/http/response"
	"github.com/pizzaorder-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var cartItemErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidItem, code: response.CodeBadRequest, key: "error.invalid_params"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_unavailable"},
	{target: service.ErrInvalidProductType, code: response.CodeBadRequest, key: "error.invalid_product_type"},
	{target: service.ErrInvalidSize, code: response.CodeBadRequest, key: "error.invalid_size"},
	{target: service.ErrToppingNotAvailable, code: response.CodeBadRequest, key: "error.topping_unavailable"},
}
