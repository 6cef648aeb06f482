package util

import "strings"

// NormalizeUsername 去掉首尾空白和开头的一个 @
func NormalizeUsername(raw string) string {
	username := strings.TrimSpace(raw)
	username = strings.TrimPrefix(username, "@")
	return strings.TrimSpace(username)
}

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}

// PtrString 用于将 string 转换为 *string
func PtrString(s string) *string {
	return &s
}

// IntValue 解引用，nil 返回 0
func IntValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// StringOrNil 空串转 nil
func StringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// IntOrNil 0 转 nil
func IntOrNil(i int) *int {
	if i == 0 {
		return nil
	}
	return &i
}
