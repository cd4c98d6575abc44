package fileurl

import (
	"os"
	"path/filepath"
	"strings"
)

// IsExist determines if the given file or directory exists
// IsExist 判断所给路径文件/文件夹是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of dst
// CreatePath 创建 dst 的父目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// PathSuffixCheckAdd appends suffix to path unless it is empty or already ends with it
// PathSuffixCheckAdd 路径非空且不以 suffix 结尾时追加 suffix
func PathSuffixCheckAdd(path string, suffix string) string {
	if path == "" || strings.HasSuffix(path, suffix) {
		return path
	}
	return path + suffix
}

// ObjectKey joins a configured prefix and a key with a single "/"
// ObjectKey 拼接前缀与对象键
func ObjectKey(prefix, key string) string {
	return PathSuffixCheckAdd(strings.Trim(prefix, "/"), "/") + strings.TrimLeft(key, "/")
}
