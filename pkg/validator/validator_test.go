package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	validatorV10 "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title string `json:"title" binding:"required,notblank"`
}

func TestInit(t *testing.T) {
	uni, err := Init()
	require.NoError(t, err)

	err = binding.Validator.ValidateStruct(&sample{Title: "   "})
	require.Error(t, err)

	errs, ok := err.(validatorV10.ValidationErrors)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Field())

	enTrans, _ := uni.GetTranslator("en")
	assert.Equal(t, "title cannot be blank", errs[0].Translate(enTrans))

	zhTrans, found := uni.GetTranslator("zh")
	require.True(t, found)
	assert.Equal(t, "title不能为空白", errs[0].Translate(zhTrans))

	assert.NoError(t, binding.Validator.ValidateStruct(&sample{Title: "ok"}))
}
