package code

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_WithDetailsDoesNotMutate(t *testing.T) {
	c := ErrorInvalidParams.WithDetails("title is required")

	assert.True(t, c.HaveDetails())
	assert.False(t, ErrorInvalidParams.HaveDetails())
	assert.Empty(t, ErrorInvalidParams.Details())
	assert.True(t, errors.Is(c, ErrorInvalidParams))
	assert.False(t, errors.Is(c, ErrorNoteNotFound))
}

func TestCode_StatusAndCategory(t *testing.T) {
	assert.Equal(t, http.StatusCreated, Created.StatusCode())
	assert.Equal(t, http.StatusBadRequest, ErrorInvalidParams.StatusCode())
	assert.Equal(t, http.StatusUnauthorized, ErrorNotUserAuthToken.StatusCode())
	assert.Equal(t, http.StatusNotFound, ErrorNoteNotFound.StatusCode())
	assert.Equal(t, http.StatusInternalServerError, ErrorDBQuery.StatusCode())

	assert.Equal(t, CategoryNotFound, ErrorNoteNotFound.Category())
	assert.Equal(t, CategoryPersistence, ErrorDBQuery.Category())
	assert.Equal(t, CategoryNone, Success.Category())
}

func TestLang(t *testing.T) {
	assert.Equal(t, "zh_cn", NormalizeLang("zh-CN"))
	assert.Equal(t, "zh_cn", NormalizeLang("zh"))
	assert.Equal(t, "en", NormalizeLang("fr"))
	assert.Equal(t, "笔记不存在", ErrorNoteNotFound.MsgIn("zh-CN"))
	assert.Equal(t, "Note not found", ErrorNoteNotFound.MsgIn(""))
	assert.Equal(t, []string{"en", "zh_cn"}, GetSupportedLanguages())
}
