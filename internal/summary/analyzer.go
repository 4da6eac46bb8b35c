package summary

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-shiori/go-readability"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
	"golang.org/x/net/html"
)

const (
	analysisMaxTokens   = 500
	analysisTemperature = 0.7
)

// Разбор новости: риски, последствия, рекомендации
type Analyzer struct {
	chat *chat
}

func NewAnalyzer(cfg Config) *Analyzer {
	a := &Analyzer{chat: newChat(cfg)}

	log.Info("openai analyzer", "enabled", a.chat.enabled, "model", a.chat.model)

	return a
}

func (a *Analyzer) Enabled() bool {
	return a.chat.enabled
}

// Анализ записи на языке lang ("en" или "ar").
// Ошибки всегда *AnalysisError с текстом для пользователя.
func (a *Analyzer) Analyze(ctx context.Context, item model.FeedItem, lang string) (string, error) {
	if !a.chat.enabled {
		return "", &AnalysisError{Kind: KindDisabled, Lang: lang}
	}

	var (
		title       = cmp.Or(item.Title, "No title")
		description = cmp.Or(PlainText(cmp.Or(item.ContentSnippet, item.Description)), "No description available")
	)

	analysis, err := a.chat.complete(ctx, analysisPrompt(title, description, lang), analysisMaxTokens, analysisTemperature)
	if err != nil {
		log.Error("failed to analyze item", "title", item.Title, "err", err)
		return "", &AnalysisError{Kind: classify(err), Lang: lang, Err: err}
	}

	return trimToSentence(analysis), nil
}

func analysisPrompt(title, description, lang string) string {
	if lang == "ar" {
		return fmt.Sprintf(
			"قم بتحليل هذا الخبر الأمني السيبراني وقدم ملخصاً مفصلاً بالعربية:\n\nالعنوان: %s\n\nالوصف: %s\n\nقدم تحليلاً شاملاً يتضمن: المخاطر المحتملة، التأثير، والتوصيات.",
			title, description,
		)
	}

	return fmt.Sprintf(
		"Analyze this cybersecurity news item and provide a detailed summary:\n\nTitle: %s\n\nDescription: %s\n\nProvide a comprehensive analysis including: potential risks, impact, and recommendations.",
		title, description,
	)
}

// readability оставляет много пустых строк, три и больше подряд схлопываем в одну
var redundantNewLines = regexp.MustCompile(`\n{3,}`)

// Текст без HTML разметки.
// Если readability ничего не достал из короткого фрагмента, просто выкидываем теги.
func PlainText(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	text := stripTags(s)
	if doc, err := readability.FromReader(strings.NewReader(s), nil); err == nil && strings.TrimSpace(doc.TextContent) != "" {
		text = doc.TextContent
	}

	return strings.TrimSpace(redundantNewLines.ReplaceAllString(text, "\n"))
}

func stripTags(s string) string {
	var (
		b strings.Builder
		z = html.NewTokenizer(strings.NewReader(s))
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
