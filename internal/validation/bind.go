package validation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// BindAndValidate binds the JSON body into `out` and runs validation. On
// failure it writes a 400 with the given message in the order API's {err}
// shape and returns the error so the handler can short-circuit. The
// message is deliberately fixed per endpoint; field-level detail never
// leaves the service.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate, errMsg string) error {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": errMsg})
		return err
	}
	if err := v.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": errMsg})
		return err
	}
	return nil
}
