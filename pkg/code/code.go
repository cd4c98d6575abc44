package code

import (
	"fmt"
	"net/http"
)

// Category groups codes into the error classes reported to clients
// Category 错误分类，随响应返回给客户端
type Category string

const (
	CategoryNone          Category = ""
	CategoryValidation    Category = "ValidationError"
	CategoryAuthorization Category = "AuthorizationError"
	CategoryNotFound      Category = "NoteNotFoundError"
	CategoryPersistence   Category = "PersistenceError"
	CategoryRateLimit     Category = "RateLimitError"
)

type Code struct {
	// 状态码
	code int
	// 状态
	status bool
	// HTTP 状态码
	httpStatus int
	// 错误分类
	category Category
	// 错误消息
	Lang lang
	// 数据
	data interface{}
	// 错误详细信息
	details []string
	// 是否含有详情
	haveDetails bool
}

var codes = map[int]string{}
var sussCodes = map[int]string{}

// NewError registers an error code. Duplicate codes panic at init time.
// NewError 注册错误码，重复注册会在初始化时 panic
func NewError(code int, httpStatus int, category Category, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, httpStatus: httpStatus, category: category, Lang: l}
}

// NewSuss registers a success code
// NewSuss 注册成功码
func NewSuss(code int, httpStatus int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, httpStatus: httpStatus, Lang: l}
}

func (e *Code) Error() string {
	if e.haveDetails && len(e.details) > 0 {
		return fmt.Sprintf("%s: %v", e.Msg(), e.details)
	}
	return e.Msg()
}

// Is reports whether target carries the same code, so errors.Is works on copies
// Is 判断 target 是否为同一错误码，使 errors.Is 对副本同样生效
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return t.code == e.code && t.status == e.status
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Category() Category {
	return e.category
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

// MsgIn returns the message in the given language
// MsgIn 返回指定语言的消息
func (e *Code) MsgIn(language string) string {
	return e.Lang.Message(language)
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

// WithData returns a copy carrying data; the registered code is never mutated
// WithData 返回携带 data 的副本，不修改已注册的错误码
func (e *Code) WithData(data interface{}) *Code {
	c := e.copy()
	c.data = data
	return c
}

// WithDetails returns a copy carrying details
// WithDetails 返回携带详情的副本
func (e *Code) WithDetails(details ...string) *Code {
	c := e.copy()
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return c
}

func (e *Code) copy() *Code {
	c := *e
	return &c
}

// StatusCode returns the HTTP status written for this code
// StatusCode 返回该错误码对应的 HTTP 状态码
func (e *Code) StatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusOK
	}
	return e.httpStatus
}
