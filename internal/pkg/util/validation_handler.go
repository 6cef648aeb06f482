package util

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Instagram 用户名只允许字母、数字、点和下划线
var igUsernameRegex = regexp.MustCompile(`^[A-Za-z0-9._]+$`)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("ig_username", func(fl validator.FieldLevel) bool {
		return igUsernameRegex.MatchString(fl.Field().String())
	})
}

// ValidateDTO 按 validate tag 校验结构体，返回第一条失败原因
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			msg := fmt.Sprintf("field [%s] failed on rule [%s]",
				firstError.Namespace(),
				firstError.Tag())
			return errors.New(msg)
		}
		return err
	}
	return nil
}
