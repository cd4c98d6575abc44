package app

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

// TransKey is the gin.Context key holding the validator translator
// TransKey gin.Context 中保存校验翻译器的键
const TransKey = "trans"

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return v.ErrorsToString()
}

// ErrorsToString joins all messages
// ErrorsToString 拼接所有错误消息
func (v ValidErrors) ErrorsToString() string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return strings.Join(errs, ",")
}

// MapsToString returns field -> message
// MapsToString 返回 字段 -> 消息
func (v ValidErrors) MapsToString() map[string]string {
	out := make(map[string]string, len(v))
	for _, err := range v {
		out[err.Key] = err.Message
	}
	return out
}

// BindAndValid binds query/form/JSON into v and runs the binding validator.
// Field names in messages follow the json tag (see initValidator).
// BindAndValid 绑定参数并进行校验，消息中的字段名使用 json 标签
func BindAndValid(c *gin.Context, v any) (bool, ValidErrors) {
	var errs ValidErrors
	err := c.ShouldBind(v)
	if err == nil {
		return true, nil
	}

	var verrs val.ValidationErrors
	if !errors.As(err, &verrs) {
		errs = append(errs, &ValidError{Key: "request", Message: err.Error()})
		return false, errs
	}

	var trans ut.Translator
	if t, ok := c.Value(TransKey).(ut.Translator); ok {
		trans = t
	}

	for _, fe := range verrs {
		msg := fe.Error()
		if trans != nil {
			msg = fe.Translate(trans)
		}
		errs = append(errs, &ValidError{Key: fe.Field(), Message: msg})
	}

	return false, errs
}
