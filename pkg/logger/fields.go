package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段（笔记所有者）
	FieldUID = "uid"

	// FieldNoteID 笔记 ID 字段
	FieldNoteID = "noteId"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldTask 定时任务名称字段
	FieldTask = "task"
)
