// Package convert copies between layer types (domain, DTO)
// Package convert 在领域模型与 DTO 等结构体之间复制字段
package convert

import (
	"time"

	"github.com/haierkeys/fast-note-pad/pkg/timex"

	"github.com/jinzhu/copier"
)

// timeConverters time.Time 与 timex.Time 互转
var timeConverters = []copier.TypeConverter{
	{
		SrcType: time.Time{},
		DstType: timex.Time{},
		Fn: func(src interface{}) (interface{}, error) {
			return timex.Time(src.(time.Time).UTC()), nil
		},
	},
	{
		SrcType: timex.Time{},
		DstType: time.Time{},
		Fn: func(src interface{}) (interface{}, error) {
			return src.(timex.Time).Time(), nil
		},
	},
}

// StructAssign
// dst 目标结构体，src 源结构体
// 它会把src与dst的相同字段名的值，复制到dst中
func StructAssign(src any, dst any) error {
	return copier.CopyWithOption(dst, src, copier.Option{
		DeepCopy:   true,
		Converters: timeConverters,
	})
}
