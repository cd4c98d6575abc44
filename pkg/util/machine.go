package util

import (
	"os"
	"sync"

	"github.com/denisbrodbeck/machineid"
)

var (
	machineID     string
	machineIDOnce sync.Once
)

// GetMachineID 获取当前机器的唯一标识符
// 优先使用 machineid 库（按应用名做 HMAC，避免泄露原始 ID），失败则回退到主机名
func GetMachineID() string {
	machineIDOnce.Do(func() {
		if id, err := machineid.ProtectedID("fast-note-pad"); err == nil && id != "" {
			machineID = id
			return
		}
		if host, err := os.Hostname(); err == nil {
			machineID = host
		}
	})
	return machineID
}
