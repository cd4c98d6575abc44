package api_router

import (
	"github.com/haierkeys/fast-note-pad/internal/app"
	"github.com/haierkeys/fast-note-pad/internal/dto"
	pkgapp "github.com/haierkeys/fast-note-pad/pkg/app"
	"github.com/haierkeys/fast-note-pad/pkg/code"
	apperrors "github.com/haierkeys/fast-note-pad/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// bind 参数绑定和验证，失败时直接输出 400
func (h *NoteHandler) bind(c *gin.Context, method string, params any) bool {
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Warn(method+".BindAndValid err", zap.Error(errs))
		pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return false
	}
	return true
}

// Create 创建笔记
// @Summary 创建笔记
// @Description 为当前用户创建一条新笔记，置顶状态默认为 false
// @Tags 笔记
// @Security UserAuthToken
// @Param Authorization header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.NoteCreateRequest true "笔记内容"
// @Success 201 {object} pkgapp.Res{data=dto.NoteDTO} "创建成功"
// @Failure 400 {object} pkgapp.Res "参数错误"
// @Router /api/note [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	if !h.bind(c, "NoteHandler.Create", params) {
		return
	}

	// 获取用户 ID
	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	note, err := h.App.NoteService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", uid, err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Created.WithData(note))
}

// Get 获取单条笔记详情
// @Summary 获取笔记详情
// @Description 根据 ID 获取当前用户的单条笔记
// @Tags 笔记
// @Security UserAuthToken
// @Param Authorization header string true "认证 Token"
// @Produce json
// @Param params query dto.NoteGetRequest true "获取参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Failure 404 {object} pkgapp.Res "笔记不存在"
// @Router /api/note [get]
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteGetRequest{}

	if !h.bind(c, "NoteHandler.Get", params) {
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	note, err := h.App.NoteService.Get(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Get", uid, err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// List 获取笔记列表
// @Summary 获取笔记列表
// @Description 获取当前用户的全部笔记，按创建时间倒序
// @Tags 笔记
// @Security UserAuthToken
// @Param Authorization header string true "认证 Token"
// @Produce json
// @Param params query dto.NoteListRequest false "过滤参数"
// @Success 200 {object} pkgapp.Res{data=pkgapp.ListRes{list=[]dto.NoteDTO}} "成功"
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteListRequest{}

	if !h.bind(c, "NoteHandler.List", params) {
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	list := make([]*dto.NoteDTO, 0)
	for note, err := range h.App.NoteService.ListFiltered(ctx, uid, params) {
		if err != nil {
			h.logError(ctx, "NoteHandler.List", uid, err)
			apperrors.ErrorResponse(c, err)
			return
		}
		list = append(list, note)
	}

	response.ToResponseList(code.Success, list, len(list))
}

// UpdateContent 更新笔记标题与内容
// @Summary 更新笔记
// @Description 替换笔记的标题与内容，并刷新更新时间
// @Tags 笔记
// @Security UserAuthToken
// @Param Authorization header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.NoteUpdateRequest true "更新参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Failure 404 {object} pkgapp.Res "笔记不存在"
// @Router /api/note [put]
func (h *NoteHandler) UpdateContent(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	if !h.bind(c, "NoteHandler.UpdateContent", params) {
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	note, err := h.App.NoteService.UpdateContent(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.UpdateContent", uid, err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// UpdatePin 设置笔记置顶状态
// @Summary 置顶或取消置顶
// @Description 设置笔记的置顶状态，重复设置相同的值是幂等的
// @Tags 笔记
// @Security UserAuthToken
// @Param Authorization header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.NotePinRequest true "置顶参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Failure 404 {object} pkgapp.Res "笔记不存在"
// @Router /api/note/pin [put]
func (h *NoteHandler) UpdatePin(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NotePinRequest{}

	if !h.bind(c, "NoteHandler.UpdatePin", params) {
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	note, err := h.App.NoteService.UpdatePin(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.UpdatePin", uid, err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Delete 删除笔记
// @Summary 删除笔记
// @Description 永久删除当前用户的笔记
// @Tags 笔记
// @Security UserAuthToken
// @Param Authorization header string true "认证 Token"
// @Produce json
// @Param params query dto.NoteDeleteRequest true "删除参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Failure 404 {object} pkgapp.Res "笔记不存在"
// @Router /api/note [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteDeleteRequest{}

	if !h.bind(c, "NoteHandler.Delete", params) {
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	if err := h.App.NoteService.Delete(ctx, uid, params); err != nil {
		h.logError(ctx, "NoteHandler.Delete", uid, err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(gin.H{"id": params.ID}))
}

// Stats 笔记数量统计
// @Summary 笔记统计
// @Description 获取当前用户的笔记总数与置顶数
// @Tags 笔记
// @Security UserAuthToken
// @Param Authorization header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.NoteStatsDTO} "成功"
// @Router /api/notes/stats [get]
func (h *NoteHandler) Stats(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	stats, err := h.App.NoteService.Stats(ctx, uid)
	if err != nil {
		h.logError(ctx, "NoteHandler.Stats", uid, err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(stats))
}
