package dto

// HealthDTO Health check response
// HealthDTO 健康检查响应
type HealthDTO struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
	Uptime   float64 `json:"uptime"` // 运行时间（秒）
}

// VersionDTO Build information
// VersionDTO 版本信息
type VersionDTO struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}
