// Package binding expands ${name} placeholders in output path templates.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]*)\}`)

// UnresolvedError lists the placeholders that had no value.
type UnresolvedError struct {
	Template string
	Names    []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("模板 %q 中存在未解析的占位符: %s", e.Template, strings.Join(e.Names, ", "))
}

// Expand 将 template 中的 ${name} 替换为 data 中对应的值；name 支持 a.b 形式的嵌套键与 a[0] 形式的下标。
// 任一占位符无法解析时返回 *UnresolvedError。
func Expand(template string, data map[string]any) (string, error) {
	var missing []string
	out := exprPattern.ReplaceAllStringFunc(template, func(match string) string {
		path := strings.TrimSpace(exprPattern.FindStringSubmatch(match)[1])
		if val, ok := resolvePath(data, path); ok && path != "" {
			return format(val)
		}
		missing = append(missing, match)
		return match
	})
	if len(missing) > 0 {
		return "", &UnresolvedError{Template: template, Names: missing}
	}
	return out, nil
}

func format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func resolvePath(data map[string]any, path string) (any, bool) {
	var current any = data
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			if current, ok = descendMap(current, name); !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			if current, ok = descendArray(current, idx); !ok {
				return nil, false
			}
		}
	}
	return current, true
}

func parseSegment(segment string) (string, []string) {
	i := strings.IndexByte(segment, '[')
	if i == -1 {
		return segment, nil
	}
	name, rest := segment[:i], segment[i:]
	var indexes []string
	for len(rest) > 0 && rest[0] == '[' {
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			break
		}
		indexes = append(indexes, rest[1:end])
		rest = rest[end+1:]
	}
	return name, indexes
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	case []string:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}
