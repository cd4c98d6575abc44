package api_router

import (
	"encoding/json"
	"expvar"
	"sync"

	"github.com/haierkeys/fast-note-pad/internal/app"

	"github.com/gin-gonic/gin"
)

var publishOnce sync.Once

// PublishBuildInfo 将版本信息发布到 expvar（进程内只注册一次）
func PublishBuildInfo(a *app.App) {
	publishOnce.Do(func() {
		v := a.Version()
		info := new(expvar.Map)
		info.Set("name", stringVar(app.Name))
		info.Set("version", stringVar(v.Version))
		info.Set("gitTag", stringVar(v.GitTag))
		info.Set("buildTime", stringVar(v.BuildTime))
		expvar.Publish("build_info", info)
	})
}

type stringVar string

func (s stringVar) String() string {
	b, _ := json.Marshal(string(s))
	return string(b)
}

// Expvar 导出系统运行时指标
// 将 expvar 导出的全部变量以 JSON 对象写入响应
func Expvar(c *gin.Context) {
	out := make(map[string]json.RawMessage)
	expvar.Do(func(kv expvar.KeyValue) {
		out[kv.Key] = json.RawMessage(kv.Value.String())
	})
	c.JSON(200, out)
}
