package middleware

import (
	"github.com/haierkeys/fast-note-pad/pkg/app"
	"github.com/haierkeys/fast-note-pad/pkg/code"

	ut "github.com/go-playground/universal-translator"
	"github.com/gin-gonic/gin"
)

// LangWithTranslator 创建带翻译器的语言中间件（支持依赖注入）
// 语言只作用于当前请求
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {

	return func(c *gin.Context) {

		var lang string

		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		} else if s = c.GetHeader("Accept-Language"); len(s) != 0 {
			lang = s
		}

		lang = code.NormalizeLang(lang)
		c.Set(app.LangKey, lang)

		// validator 的翻译器以 "zh" 注册
		transKey := lang
		if lang == "zh_cn" {
			transKey = "zh"
		}

		if trans, found := uni.GetTranslator(transKey); found {
			c.Set(app.TransKey, trans)
		} else {
			trans, _ := uni.GetTranslator("en")
			c.Set(app.TransKey, trans)
		}

		c.Next()
	}
}
