package summary

import (
	"cmp"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
	"golang.org/x/sync/errgroup"
)

const (
	translationMaxTokens   = 300
	translationTemperature = 0.3
	// Сколько записей страницы переводим одновременно
	translateConcurrency = 4
)

var languageNames = map[string]string{
	"ar": "Arabic",
	"en": "English",
	"ru": "Russian",
	"fr": "French",
	"de": "German",
	"es": "Spanish",
}

// Перевод текста записей. При любой ошибке отдает исходный текст.
type Translator struct {
	chat  *chat
	cache Cache
}

func NewTranslator(cfg Config, cache Cache) *Translator {
	t := &Translator{chat: newChat(cfg), cache: cache}

	if !t.chat.enabled {
		log.Warn("openai key is not set, translation disabled")
	}

	return t
}

func (t *Translator) Translate(ctx context.Context, text, lang string) string {
	if strings.TrimSpace(text) == "" || lang == "en" || !t.chat.enabled {
		return text
	}

	key := CacheKey{Text: text, Language: lang}
	if cached, ok := t.cache.Get(key); ok {
		return cached
	}

	prompt := fmt.Sprintf(
		"Translate the following text to %s. Return only the translation, no explanations: %q",
		cmp.Or(languageNames[lang], lang), text,
	)

	translated, err := t.chat.complete(ctx, prompt, translationMaxTokens, translationTemperature)
	if err != nil {
		log.Warn("translation failed, using original text", "lang", lang, "err", err)
		return text
	}

	translated = cmp.Or(translated, text)
	t.cache.Set(key, translated)

	return translated
}

// Переводит заголовок и описание, оригинал сохраняется для выделения тегов
func (t *Translator) TranslateItem(ctx context.Context, item model.FeedItem, lang string) model.TranslatedItem {
	snippet := cmp.Or(item.ContentSnippet, item.Description)

	out := model.TranslatedItem{
		FeedItem:               item,
		OriginalTitle:          item.Title,
		OriginalDescription:    item.Description,
		OriginalContentSnippet: snippet,
	}

	if lang == "en" {
		return out
	}

	var (
		wg                sync.WaitGroup
		title, translated string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		title = t.Translate(ctx, item.Title, lang)
	}()
	go func() {
		defer wg.Done()
		translated = t.Translate(ctx, snippet, lang)
	}()
	wg.Wait()

	out.Title = title
	out.ContentSnippet = translated
	out.Description = translated

	return out
}

// Переводит только видимое окно [start, end), остальное отдает без перевода
func (t *Translator) TranslateVisible(ctx context.Context, items []model.FeedItem, lang string, start, end int) []model.TranslatedItem {
	start = max(0, min(start, len(items)))
	end = max(start, min(end, len(items)))

	out := make([]model.TranslatedItem, len(items))
	for i, item := range items {
		out[i] = model.TranslatedItem{
			FeedItem:               item,
			OriginalTitle:          item.Title,
			OriginalDescription:    item.Description,
			OriginalContentSnippet: cmp.Or(item.ContentSnippet, item.Description),
		}
	}

	if lang == "en" {
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(translateConcurrency)

	for i := start; i < end; i++ {
		g.Go(func() error {
			out[i] = t.TranslateItem(gctx, items[i], lang)
			return nil
		})
	}

	// Ошибок не бывает, TranslateItem всегда отдает результат
	_ = g.Wait()

	return out
}
