// Package validator 初始化 gin 的参数校验器及其中英文翻译
package validator

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/pkg/errors"
)

// customTranslation 自定义规则的翻译文本
type customTranslation struct {
	tag string
	en  string
	zh  string
}

var customTranslations = []customTranslation{
	{tag: "notblank", en: "{0} cannot be blank", zh: "{0}不能为空白"},
}

// RegisterCustom 注册自定义校验规则
func RegisterCustom(validate *validatorV10.Validate) error {
	// notblank: 字符串不能只包含空白字符
	return validate.RegisterValidation("notblank", validators.NotBlank)
}

// Init 配置 gin 默认校验器并返回 UniversalTranslator
// 字段名使用 json tag，错误信息支持 en / zh
func Init() (*ut.UniversalTranslator, error) {
	validate, ok := binding.Validator.Engine().(*validatorV10.Validate)
	if !ok {
		return nil, errors.New("gin binding validator is not go-playground/validator/v10")
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := RegisterCustom(validate); err != nil {
		return nil, errors.Wrap(err, "register custom validation")
	}

	uni := ut.New(en.New(), en.New(), zh.New())

	zhTran, _ := uni.GetTranslator("zh")
	enTran, _ := uni.GetTranslator("en")

	if err := zh_translations.RegisterDefaultTranslations(validate, zhTran); err != nil {
		return nil, errors.Wrap(err, "register zh translations")
	}
	if err := en_translations.RegisterDefaultTranslations(validate, enTran); err != nil {
		return nil, errors.Wrap(err, "register en translations")
	}

	for _, ct := range customTranslations {
		if err := registerTranslation(validate, enTran, ct.tag, ct.en); err != nil {
			return nil, err
		}
		if err := registerTranslation(validate, zhTran, ct.tag, ct.zh); err != nil {
			return nil, err
		}
	}

	return uni, nil
}

func registerTranslation(validate *validatorV10.Validate, trans ut.Translator, tag, text string) error {
	err := validate.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, text, true)
		},
		func(t ut.Translator, fe validatorV10.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
	return errors.Wrapf(err, "register %s translation", tag)
}
