package markup

import (
	"fmt"
	"strings"
)

// Спецсимволы MarkdownV2 телеграма
var replacer = strings.NewReplacer(
	"\\", "\\\\",
	"-", "\\-",
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// Экранирует текст для ParseMode MarkdownV2
func EscapeForMarkdown(src string) string {
	return replacer.Replace(src)
}

func Bold(text string) string {
	return "*" + EscapeForMarkdown(text) + "*"
}

func Italic(text string) string {
	return "_" + EscapeForMarkdown(text) + "_"
}

// Внутри ссылки экранируются только ) и \
func Link(text, url string) string {
	if url == "" {
		return EscapeForMarkdown(text)
	}
	urlEscaper := strings.NewReplacer("\\", "\\\\", ")", "\\)")
	return fmt.Sprintf("[%s](%s)", EscapeForMarkdown(text), urlEscaper.Replace(url))
}
