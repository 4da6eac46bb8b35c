package tags

import (
	"cmp"
	"strings"

	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
)

const maxTags = 3

var (
	// Важные ключевые слова, идут первыми и подсвечиваются
	highlightKeywords = []string{"vulnerability", "breach", "ransomware", "attack"}
	normalKeywords    = []string{"malware", "phishing", "data", "security", "cyber", "threat"}

	arabicNames = map[string]string{
		"attack":        "هجوم",
		"breach":        "خرق",
		"vulnerability": "ثغرة",
		"ransomware":    "برمجية فدية",
		"malware":       "برمجية خبيثة",
		"phishing":      "تصيد",
		"data":          "بيانات",
		"security":      "أمن",
		"cyber":         "سيبراني",
		"threat":        "تهديد",
	}

	englishByArabic = func() map[string]string {
		m := make(map[string]string, len(arabicNames))
		for en, ar := range arabicNames {
			m[ar] = en
		}
		return m
	}()
)

// Все ключевые слова, по которым выделяются теги
func Keywords() []string {
	return append(append([]string{}, highlightKeywords...), normalKeywords...)
}

// Английское ключевое слово для арабского запроса
func KeywordFor(query string) (string, bool) {
	en, ok := englishByArabic[query]
	return en, ok
}

// Локализованное имя тега
func Name(keyword, lang string) string {
	if lang == "ar" {
		if name, ok := arabicNames[keyword]; ok {
			return name
		}
		return keyword
	}
	return strings.ToUpper(keyword[:1]) + keyword[1:]
}

// Не больше трех тегов на запись, подсвеченные идут первыми
func Extract(item model.FeedItem, lang string) []model.Tag {
	return extract(item.Title, cmp.Or(item.ContentSnippet, item.Description), lang)
}

// Для переведенной записи теги считаются по оригинальному тексту
func ExtractTranslated(item model.TranslatedItem, lang string) []model.Tag {
	return extract(
		cmp.Or(item.OriginalTitle, item.Title),
		cmp.Or(item.OriginalContentSnippet, item.OriginalDescription, item.ContentSnippet, item.Description),
		lang,
	)
}

func extract(title, content, lang string) []model.Tag {
	text := strings.ToLower(title + " " + content)

	tags := make([]model.Tag, 0, maxTags)
	for _, keyword := range highlightKeywords {
		if strings.Contains(text, keyword) {
			tags = append(tags, model.Tag{Name: Name(keyword, lang), Original: keyword, Highlight: true})
		}
	}

	for _, keyword := range normalKeywords {
		if len(tags) >= maxTags {
			break
		}
		if strings.Contains(text, keyword) {
			tags = append(tags, model.Tag{Name: Name(keyword, lang), Original: keyword})
		}
	}

	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}

	return tags
}
