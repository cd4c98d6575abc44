package code

import (
	"strings"
)

// FallbackLang is used when a request asks for a language we have no text for
// FallbackLang 请求的语言没有对应文本时使用的回退语言
const FallbackLang = "en"

// lang stores English and Chinese text of a message
// lang 用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

// supportedLanguages lists the language keys understood by lang.Message
// supportedLanguages 支持的语言列表
var supportedLanguages = []string{"en", "zh_cn"}

// NormalizeLang maps request values such as "zh-CN", "zh" or "EN" to a supported key
// NormalizeLang 将 "zh-CN"、"zh"、"EN" 等请求值规范化为支持的语言键
func NormalizeLang(language string) string {
	language = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(language), "-", "_"))
	if strings.HasPrefix(language, "zh") {
		return "zh_cn"
	}
	for _, l := range supportedLanguages {
		if l == language {
			return l
		}
	}
	return FallbackLang
}

// GetSupportedLanguages returns all languages supported by the lang type
// GetSupportedLanguages 返回 lang 类型支持的所有语言
func GetSupportedLanguages() []string {
	out := make([]string, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// Message returns the text for the given language, falling back to English
// Message 根据传入的语言返回相应的消息，没有则回退到英文
func (l lang) Message(language string) string {
	if NormalizeLang(language) == "zh_cn" && l.zh_cn != "" {
		return l.zh_cn
	}
	return l.en
}

// GetMessage returns the message in the fallback language
// GetMessage 返回回退语言的消息
func (l lang) GetMessage() string {
	return l.Message(FallbackLang)
}
