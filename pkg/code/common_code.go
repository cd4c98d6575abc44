package code

import "net/http"

var (
	Success = NewSuss(1, http.StatusOK, lang{en: "Success", zh_cn: "成功"})
	Created = NewSuss(2, http.StatusCreated, lang{en: "Created", zh_cn: "创建成功"})

	Failed                    = NewError(400, http.StatusBadRequest, CategoryValidation, lang{en: "Request failed", zh_cn: "请求失败"})
	ErrorInvalidParams        = NewError(401, http.StatusBadRequest, CategoryValidation, lang{en: "Invalid or missing parameters", zh_cn: "参数错误或缺失"})
	ErrorNotUserAuthToken     = NewError(402, http.StatusUnauthorized, CategoryAuthorization, lang{en: "Authorization token is required", zh_cn: "缺少授权 Token"})
	ErrorInvalidUserAuthToken = NewError(403, http.StatusUnauthorized, CategoryAuthorization, lang{en: "Authorization token is invalid or expired", zh_cn: "授权 Token 无效或已过期"})
	ErrorNotFoundAPI          = NewError(404, http.StatusNotFound, CategoryNotFound, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorNoteNotFound         = NewError(405, http.StatusNotFound, CategoryNotFound, lang{en: "Note not found", zh_cn: "笔记不存在"})
	ErrorTooManyRequests      = NewError(429, http.StatusTooManyRequests, CategoryRateLimit, lang{en: "Too many requests", zh_cn: "请求过于频繁"})
	ErrorServerInternal       = NewError(500, http.StatusInternalServerError, CategoryPersistence, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorDBQuery              = NewError(501, http.StatusInternalServerError, CategoryPersistence, lang{en: "Failed to access note storage", zh_cn: "笔记存储访问失败"})
)
