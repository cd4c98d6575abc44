package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-pad/pkg/app"
	"github.com/haierkeys/fast-note-pad/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) app.Res {
	t.Helper()
	var res app.Res
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestRecoveryWithLogger(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	r := gin.New()
	r.Use(RecoveryWithLogger(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) {
		panic(errors.New("db password is hunter2"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "hunter2")
	assert.Equal(t, "PersistenceError", decode(t, w).Category)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Recovered from panic", entry.Message)
	assert.Equal(t, "/boom", entry.ContextMap()["router"])
}

type staticTokens struct {
	uid string
}

func (s staticTokens) Generate(uid, ip string) (string, error) { return uid, nil }

func (s staticTokens) Parse(token string) (*app.UserEntity, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &app.UserEntity{UID: s.uid}, nil
}

func (s staticTokens) Validate(token string) error {
	_, err := s.Parse(token)
	return err
}

func TestUserAuthTokenWithManager(t *testing.T) {
	r := gin.New()
	r.Use(UserAuthTokenWithManager(staticTokens{uid: "u1"}))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, app.GetUID(c))
	})

	cases := []struct {
		name   string
		req    func() *http.Request
		status int
		code   int
	}{
		{"header", func() *http.Request {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "good")
			return req
		}, http.StatusOK, 0},
		{"query", func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/me?token=good", nil)
		}, http.StatusOK, 0},
		{"token header", func() *http.Request {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Token", "good")
			return req
		}, http.StatusOK, 0},
		{"missing", func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/me", nil)
		}, http.StatusUnauthorized, 402},
		{"invalid", func() *http.Request {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "bad")
			return req
		}, http.StatusUnauthorized, 403},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(r, tc.req())
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "u1", w.Body.String())
				return
			}
			assert.Equal(t, tc.code, decode(t, w).Code)
		})
	}
}

func TestLangWithTranslator(t *testing.T) {
	uni := ut.New(en.New(), en.New(), zh.New())

	r := gin.New()
	r.Use(LangWithTranslator(uni))
	r.GET("/lang", func(c *gin.Context) {
		trans := c.MustGet(app.TransKey).(ut.Translator)
		c.String(http.StatusOK, app.GetLang(c)+"|"+trans.Locale())
	})

	cases := []struct {
		name  string
		setup func(*http.Request)
		want  string
	}{
		{"default", func(*http.Request) {}, "en|en"},
		{"accept-language", func(req *http.Request) { req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9") }, "zh_cn|zh"},
		{"unsupported", func(req *http.Request) { req.Header.Set("lang", "fr") }, "en|en"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/lang", nil)
		tc.setup(req)
		assert.Equal(t, tc.want, serve(r, req).Body.String(), tc.name)
	}

	// 查询参数优先于请求头
	req := httptest.NewRequest(http.MethodGet, "/lang?lang=zh", nil)
	req.Header.Set("lang", "en")
	assert.Equal(t, "zh_cn|zh", serve(r, req).Body.String())
}

func TestContextTimeout(t *testing.T) {
	r := gin.New()
	r.Use(ContextTimeout(50 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
			c.String(http.StatusGatewayTimeout, c.Request.Context().Err().Error())
		case <-time.After(time.Second):
			c.String(http.StatusOK, "done")
		}
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, context.DeadlineExceeded.Error(), w.Body.String())

	r = gin.New()
	r.Use(ContextTimeout(0))
	r.GET("/deadline", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		c.String(http.StatusOK, "%v", ok)
	})
	assert.Equal(t, "false", serve(r, httptest.NewRequest(http.MethodGet, "/deadline", nil)).Body.String())
}

func TestAccessLogWithLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(TraceMiddlewareWithConfig(true, ""))
	r.Use(AccessLogWithLogger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		c.Set(app.UserTokenKey, &app.UserEntity{UID: "u7"})
		c.String(http.StatusTeapot, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping?x=1", nil)
	req.Header.Set(DefaultTraceIDHeader, "abc")
	serve(r, req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "/ping?x=1", fields["url"])
	assert.Equal(t, "abc", fields[logger.FieldTraceID])
	assert.Equal(t, "u7", fields[logger.FieldUID])
}

func TestTraceMiddlewareWithConfig(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddlewareWithConfig(true, "X-Request-ID"))
	r.GET("/trace", func(c *gin.Context) {
		c.String(http.StatusOK, GetTraceID(c.Request.Context()))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/trace", nil))
	generated := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/trace", nil)
	req.Header.Set("X-Request-ID", "fixed")
	w = serve(r, req)
	assert.Equal(t, "fixed", w.Body.String())
}
