// Package fonts locates and reads the font file used for album text.
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound 表示在所有搜索目录中都找不到字体文件。
var ErrNotFound = errors.New("字体文件不存在")

// SearchDirs 是相对路径字体的默认搜索目录，依次尝试。
var SearchDirs = []string{
	".",
	"fonts",
	"/usr/share/fonts",
	"/usr/local/share/fonts",
	"/Library/Fonts",
	`C:\Windows\Fonts`,
}

// Locate 返回字体文件的实际路径。绝对路径直接检查；相对路径依次在 dirs 下查找，
// dirs 为空时使用 SearchDirs。对于系统字体目录还会按文件名递归匹配一层子目录。
func Locate(name string, dirs ...string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("字体路径为空")
	}
	if filepath.IsAbs(name) {
		if isFile(name) {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if len(dirs) == 0 {
		dirs = SearchDirs
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return candidate, nil
		}
		matches, _ := filepath.Glob(filepath.Join(dir, "*", filepath.Base(name)))
		for _, m := range matches {
			if isFile(m) {
				return m, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Load 查找并读取字体文件。
func Load(name string, dirs ...string) ([]byte, error) {
	path, err := Locate(name, dirs...)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("字体文件 %s 为空", path)
	}
	return data, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
