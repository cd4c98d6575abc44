package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/haierkeys/fast-note-pad/internal/app"
	"github.com/haierkeys/fast-note-pad/internal/dao"
	"github.com/haierkeys/fast-note-pad/internal/dto"
	"github.com/haierkeys/fast-note-pad/pkg/tracer"
	"github.com/haierkeys/fast-note-pad/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// apiRes 测试中解析的统一响应，data 延迟解析
type apiRes struct {
	Code     int             `json:"code"`
	Status   bool            `json:"status"`
	Category string          `json:"category"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Details  string          `json:"details"`
	TraceID  string          `json:"traceId"`
}

type listData struct {
	List  []*dto.NoteDTO `json:"list"`
	Total int            `json:"total"`
}

type testEnv struct {
	t      *testing.T
	app    *app.App
	router *gin.Engine
}

func newTestEnv(t *testing.T, extra string) *testEnv {
	t.Helper()
	cfg, err := app.ParseConfig([]byte("database:\n  path: \":memory:\"\n" + extra))
	require.NoError(t, err)
	if !strings.Contains(extra, "rate-limit-capacity") {
		cfg.App.RateLimitCapacity = 1000
	}

	db, err := dao.NewDBEngineWithConfig(cfg.GetDatabaseConfig(), zap.NewNop())
	require.NoError(t, err)

	a, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	uni, err := validator.Init()
	require.NoError(t, err)

	return &testEnv{t: t, app: a, router: NewRouter(a, uni)}
}

func (e *testEnv) token(uid string) string {
	e.t.Helper()
	token, err := e.app.TokenManager.Generate(uid, "")
	require.NoError(e.t, err)
	return token
}

func (e *testEnv) do(method, path, token string, body any, headers ...string) (*httptest.ResponseRecorder, apiRes) {
	e.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var res apiRes
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &res))
	}
	return w, res
}

func (e *testEnv) create(token, title, content string) *dto.NoteDTO {
	e.t.Helper()
	w, res := e.do(http.MethodPost, "/api/note", token, gin.H{"title": title, "content": content})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())

	var note dto.NoteDTO
	require.NoError(e.t, json.Unmarshal(res.Data, &note))
	return &note
}

func decodeList(t *testing.T, res apiRes) listData {
	t.Helper()
	var data listData
	require.NoError(t, json.Unmarshal(res.Data, &data))
	return data
}

func TestNoteAPI_Create(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.token("u1")

	w, res := env.do(http.MethodPost, "/api/note", token, gin.H{"title": "Groceries", "content": "milk, eggs"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, res.Status)

	var note dto.NoteDTO
	require.NoError(t, json.Unmarshal(res.Data, &note))
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "u1", note.OwnerID)
	assert.Equal(t, "Groceries", note.Title)
	assert.False(t, note.Pinned)
	assert.Equal(t, note.CreatedAt.Time(), note.UpdatedAt.Time())

	// 缺少标题
	w, res = env.do(http.MethodPost, "/api/note", token, gin.H{"content": "milk"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ValidationError", res.Category)
	assert.Contains(t, res.Details, "title")

	// 仅包含空白的内容
	w, res = env.do(http.MethodPost, "/api/note", token, gin.H{"title": "T", "content": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, res.Details, "content")
}

func TestNoteAPI_Authorization(t *testing.T) {
	env := newTestEnv(t, "")

	w, res := env.do(http.MethodPost, "/api/note", "", gin.H{"title": "T", "content": "C"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AuthorizationError", res.Category)

	w, _ = env.do(http.MethodGet, "/api/notes", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 其他密钥签发的 Token
	other := newTestEnv(t, "security:\n  auth-token-key: another-key\n")
	w, _ = env.do(http.MethodGet, "/api/notes", other.token("u1"), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNoteAPI_GetForeignAndMissing(t *testing.T) {
	env := newTestEnv(t, "")
	owner := env.token("u1")
	stranger := env.token("u2")

	note := env.create(owner, "mine", "secret")

	w, res := env.do(http.MethodGet, "/api/note?id="+note.ID, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got dto.NoteDTO
	require.NoError(t, json.Unmarshal(res.Data, &got))
	assert.Equal(t, "secret", got.Content)

	w, res = env.do(http.MethodGet, "/api/note?id="+note.ID, stranger, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NoteNotFoundError", res.Category)
	assert.NotContains(t, w.Body.String(), "secret")

	w, _ = env.do(http.MethodGet, "/api/note?id=missing", owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(http.MethodGet, "/api/note", owner, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNoteAPI_ListOrderAndFilter(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.token("u1")

	first := env.create(token, "first", "a")
	second := env.create(token, "second", "b")
	third := env.create(token, "third", "c")
	env.create(env.token("u2"), "foreign", "x")

	w, res := env.do(http.MethodGet, "/api/notes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeList(t, res)
	require.Equal(t, 3, data.Total)
	assert.Equal(t, []string{third.ID, second.ID, first.ID},
		[]string{data.List[0].ID, data.List[1].ID, data.List[2].ID})

	w, _ = env.do(http.MethodPut, "/api/note/pin", token, gin.H{"id": first.ID, "pinned": true})
	require.Equal(t, http.StatusOK, w.Code)

	_, res = env.do(http.MethodGet, "/api/notes?pinned=true", token, nil)
	data = decodeList(t, res)
	require.Equal(t, 1, data.Total)
	assert.Equal(t, first.ID, data.List[0].ID)

	_, res = env.do(http.MethodGet, "/api/notes?pinned=false", token, nil)
	data = decodeList(t, res)
	assert.Equal(t, 2, data.Total)
	assert.Equal(t, third.ID, data.List[0].ID)

	// 没有笔记的用户得到空列表而不是 null
	_, res = env.do(http.MethodGet, "/api/notes", env.token("u3"), nil)
	data = decodeList(t, res)
	assert.Equal(t, 0, data.Total)
	assert.NotNil(t, data.List)
}

func TestNoteAPI_UpdateContent(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.token("u1")
	note := env.create(token, "draft", "v1")

	w, res := env.do(http.MethodPut, "/api/note", token, gin.H{"id": note.ID, "title": "final", "content": "v2"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.NoteDTO
	require.NoError(t, json.Unmarshal(res.Data, &updated))
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "v2", updated.Content)
	assert.Equal(t, note.CreatedAt.Time(), updated.CreatedAt.Time())
	assert.False(t, updated.UpdatedAt.Time().Before(note.UpdatedAt.Time()))

	w, _ = env.do(http.MethodPut, "/api/note", token, gin.H{"id": note.ID, "title": "final"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(http.MethodPut, "/api/note", env.token("u2"), gin.H{"id": note.ID, "title": "x", "content": "y"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoteAPI_PinIdempotent(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.token("u1")
	note := env.create(token, "T", "C")

	for range 2 {
		w, res := env.do(http.MethodPut, "/api/note/pin", token, gin.H{"id": note.ID, "pinned": true})
		require.Equal(t, http.StatusOK, w.Code)
		var pinned dto.NoteDTO
		require.NoError(t, json.Unmarshal(res.Data, &pinned))
		assert.True(t, pinned.Pinned)
		assert.Equal(t, "T", pinned.Title)
	}

	// pinned 缺失不能被当作 false
	w, _ := env.do(http.MethodPut, "/api/note/pin", token, gin.H{"id": note.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, res := env.do(http.MethodPut, "/api/note/pin", token, gin.H{"id": note.ID, "pinned": false})
	require.Equal(t, http.StatusOK, w.Code)
	var unpinned dto.NoteDTO
	require.NoError(t, json.Unmarshal(res.Data, &unpinned))
	assert.False(t, unpinned.Pinned)
}

func TestNoteAPI_DeleteAndStats(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.token("u1")
	keep := env.create(token, "keep", "a")
	drop := env.create(token, "drop", "b")

	env.do(http.MethodPut, "/api/note/pin", token, gin.H{"id": keep.ID, "pinned": true})

	w, _ := env.do(http.MethodDelete, "/api/note", env.token("u2"), gin.H{"id": drop.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, res := env.do(http.MethodDelete, "/api/note?id="+drop.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+drop.ID+`"}`, string(res.Data))

	w, _ = env.do(http.MethodGet, "/api/note?id="+drop.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(http.MethodDelete, "/api/note?id="+drop.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, res = env.do(http.MethodGet, "/api/notes/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":1,"pinned":1}`, string(res.Data))
}

func TestNoteAPI_PinMissing(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.token("u1")

	w, res := env.do(http.MethodPut, "/api/note/pin", token, gin.H{"id": "x", "pinned": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NoteNotFoundError", res.Category)
	assert.False(t, res.Status)
}

func TestNoteAPI_UpdateAfterDelete(t *testing.T) {
	env := newTestEnv(t, "")
	token := env.token("u1")
	note := env.create(token, "Groceries", "milk, eggs")

	w, _ := env.do(http.MethodDelete, "/api/note?id="+note.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, res := env.do(http.MethodPut, "/api/note", token, gin.H{"id": note.ID, "title": "Groceries", "content": "bread"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NoteNotFoundError", res.Category)

	w, res = env.do(http.MethodPut, "/api/note/pin", token, gin.H{"id": note.ID, "pinned": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NoteNotFoundError", res.Category)
}

func TestNoteAPI_Language(t *testing.T) {
	env := newTestEnv(t, "")

	_, res := env.do(http.MethodPost, "/api/note", "", gin.H{"title": "T", "content": "C"}, "Accept-Language", "zh-CN,zh;q=0.9")
	assert.Equal(t, "缺少授权 Token", res.Message)

	_, res = env.do(http.MethodGet, "/api/note?id=x&lang=en", env.token("u1"), nil)
	assert.Equal(t, "Note not found", res.Message)

	// 校验信息跟随请求语言
	_, res = env.do(http.MethodPost, "/api/note?lang=zh-cn", env.token("u1"), gin.H{"title": "T", "content": " "})
	assert.Equal(t, "参数错误或缺失", res.Message)
	assert.Contains(t, res.Details, "content不能为空白")
}

func TestNoteAPI_RateLimit(t *testing.T) {
	env := newTestEnv(t, "app:\n  rate-limit-capacity: 2\n")
	token := env.token("u1")

	var codes []int
	for range 3 {
		w, _ := env.do(http.MethodGet, "/api/notes", token, nil)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// 健康检查不在限流范围内
	w, _ := env.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNoteAPI_RateLimitSharedBucket(t *testing.T) {
	env := newTestEnv(t, "app:\n  rate-limit-capacity: 2\n")

	// 令牌桶由所有客户端共享，/api/notes 与 /api/note 计入同一个桶
	w, _ := env.do(http.MethodGet, "/api/notes", env.token("u1"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = env.do(http.MethodGet, "/api/notes/stats", env.token("u2"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = env.do(http.MethodGet, "/api/note?id=x", env.token("u3"), nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestSystemAPI(t *testing.T) {
	env := newTestEnv(t, "")

	w, res := env.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health dto.HealthDTO
	require.NoError(t, json.Unmarshal(res.Data, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "connected", health.Database)
	assert.Equal(t, app.Version, w.Header().Get("X-App-Version"))

	w, res = env.do(http.MethodGet, "/api/version", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var version dto.VersionDTO
	require.NoError(t, json.Unmarshal(res.Data, &version))
	assert.Equal(t, app.Name, version.Name)
	assert.Equal(t, app.Version, version.Version)

	w, res = env.do(http.MethodGet, "/api/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "API not found", res.Message)
}

func TestTraceID(t *testing.T) {
	env := newTestEnv(t, "")

	w, res := env.do(http.MethodGet, "/api/note?id=x", env.token("u1"), nil, "X-Trace-ID", "trace-123")
	assert.Equal(t, "trace-123", w.Header().Get("X-Trace-ID"))
	assert.Equal(t, "trace-123", res.TraceID)

	w, _ = env.do(http.MethodGet, "/api/health", "", nil)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	disabled := newTestEnv(t, "tracer:\n  enabled: false\n")
	w, _ = disabled.do(http.MethodGet, "/api/health", "", nil)
	assert.Empty(t, w.Header().Get("X-Trace-ID"))
}

func TestTraceSpans(t *testing.T) {
	reporter := jaeger.NewInMemoryReporter()
	tr, closer, err := tracer.NewJaegerTracer(tracer.Config{ServiceName: "fast-note-pad", SampleRate: 1}, nil,
		jaegercfg.Reporter(reporter))
	require.NoError(t, err)
	restore := tracer.SetGlobal(tr, closer)
	t.Cleanup(func() { _ = restore() })

	env := newTestEnv(t, "")
	env.create(env.token("u1"), "traced", "body")

	var request *jaeger.Span
	var queries []*jaeger.Span
	for _, s := range reporter.GetSpans() {
		span := s.(*jaeger.Span)
		switch span.OperationName() {
		case "POST /api/note":
			request = span
		case "gorm":
			queries = append(queries, span)
		}
	}
	require.NotNil(t, request)
	require.NotEmpty(t, queries)
	for _, q := range queries {
		assert.Equal(t, request.SpanContext().TraceID(), q.SpanContext().TraceID())
	}
}

func TestPrivateRouter(t *testing.T) {
	env := newTestEnv(t, "")
	env.do(http.MethodGet, "/api/health", "", nil)

	private := NewPrivateRouter(env.app)

	w := httptest.NewRecorder()
	private.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fast_note_pad_http_requests_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")

	w = httptest.NewRecorder()
	private.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/vars", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "build_info")

	// 非 debug 模式不开放 pprof
	w = httptest.NewRecorder()
	private.ServeHTTP(w, httptest.NewRequest(http.MethodGet, DefaultPrefix+"/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
