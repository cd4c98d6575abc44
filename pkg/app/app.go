package app

import (
	"strings"

	"github.com/haierkeys/fast-note-pad/pkg/code"

	"github.com/gin-gonic/gin"
)

// LangKey is the gin.Context key holding the negotiated response language
// LangKey gin.Context 中保存响应语言的键
const LangKey = "lang"

// TraceIDKey is the gin.Context / context.Context key holding the request trace id
// TraceIDKey 存储 Trace ID 的键
const TraceIDKey = "trace_id"

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

type Response struct {
	Ctx *gin.Context
}

type ListRes struct {
	List  interface{} `json:"list"`  // Data list // 数据清单
	Total int         `json:"total"` // Total rows // 总行数
}

// Res is the unified response structure: Code/Status/Msg/Data
// Optional fields Category and Details use omitempty (will not be serialized if empty)
// Res 是统一的响应结构：Code/Status/Msg/Data
// 可选字段 Category 与 Details 使用 omitempty（为空则不会被序列化）
type Res struct {
	Code     int         `json:"code"`
	Status   bool        `json:"status"`
	Category string      `json:"category,omitempty"`
	Message  interface{} `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Details  interface{} `json:"details,omitempty"`
	TraceID  string      `json:"traceId,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

func GetAccessHost(c *gin.Context) string {
	AccessProto := ""
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto == "" {
		AccessProto = "http" + "://"
	} else {
		AccessProto = proto + "://"
	}
	return AccessProto + c.Request.Host
}

// GetLang returns the response language negotiated by the lang middleware
// GetLang 获取语言中间件协商出的响应语言
func GetLang(c *gin.Context) string {
	if c == nil {
		return code.FallbackLang
	}
	return code.NormalizeLang(c.GetString(LangKey))
}

// ToResponse output to browser: unified use of Res, HTTP status taken from the code
// ToResponse 输出到浏览器：统一使用 Res，HTTP 状态码由 code 决定
func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := Res{
		Code:     codeObj.Code(),
		Status:   codeObj.Status(),
		Category: string(codeObj.Category()),
		Message:  codeObj.MsgIn(GetLang(r.Ctx)),
		Data:     codeObj.Data(),
		TraceID:  r.Ctx.GetString(TraceIDKey),
	}

	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	r.send(codeObj.StatusCode(), content)
}

// ToResponseList outputs list response using ListRes as Data
// ToResponseList 输出列表响应，使用 ListRes 作为 Data
func (r *Response) ToResponseList(codeObj *code.Code, list interface{}, totalRows int) {
	r.ToResponse(codeObj.WithData(ListRes{
		List:  list,
		Total: totalRows,
	}))
}

func (r *Response) send(statusCode int, content interface{}) {
	r.Ctx.JSON(statusCode, content)
}
