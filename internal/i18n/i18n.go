package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认语言
const DefaultLocale = "he"

var supported = map[string]bool{
	"en": true,
	"he": true,
}

// ResolveLocale 从请求解析语言：优先 query 参数，其次 Accept-Language 头
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := normalize(c.Query("lang")); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := part
		if idx := strings.Index(tag, ";"); idx >= 0 {
			tag = tag[:idx]
		}
		if lang := normalize(tag); lang != "" {
			return lang
		}
	}
	return DefaultLocale
}

func normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	if idx := strings.Index(tag, "-"); idx >= 0 {
		tag = tag[:idx]
	}
	// iw 是希伯来语的旧标签
	if tag == "iw" {
		tag = "he"
	}
	if supported[tag] {
		return tag
	}
	return ""
}

// T 按语言翻译消息键，未命中时回退英语，再回退键本身
func T(locale, key string) string {
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs["en"][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后格式化
func Sprintf(locale, key string, args ...interface{}) string {
	msg := T(locale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
