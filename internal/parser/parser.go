package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
	"golang.org/x/net/html/charset"
)

const contentNamespace = "http://purl.org/rss/1.0/modules/content/"

// Признак того, что в тексте есть XML/RSS документ
func HasPreamble(text string) bool {
	return strings.Contains(text, "<?xml") || strings.Contains(text, "<rss")
}

// Разбирает RSS документ из байтов ответа.
// Кодировка берется из XML декларации.
func Parse(data []byte) (model.Feed, error) {
	return parse(bytes.NewReader(data), charset.NewReaderLabel)
}

// Разбирает уже декодированный текст документа.
// encoding из декларации игнорируется, текст и так в UTF-8.
func ParseText(text string) (model.Feed, error) {
	return parse(strings.NewReader(text), func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	})
}

// Ищет первый <channel> в любом месте документа и дочитывает документ до конца,
// чтобы битый хвост, второй корень или текст после корня тоже были ошибкой.
func parse(r io.Reader, charsetReader func(label string, input io.Reader) (io.Reader, error)) (model.Feed, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader
	// В лентах часто встречаются HTML сущности вроде &nbsp;
	d.Entity = xml.HTMLEntity

	var (
		feed       model.Feed
		found      bool
		depth      int
		rootClosed bool
	)

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Feed{}, &ParseError{Reason: "malformed xml", Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return model.Feed{}, &ParseError{Reason: "junk after document element"}
			}

			if found || t.Name.Local != "channel" {
				depth++
				continue
			}

			// decodeChannel дочитывает канал до закрывающего тега
			feed, err = decodeChannel(d, t)
			if err != nil {
				return model.Feed{}, &ParseError{Reason: "malformed xml", Err: err}
			}
			found = true
			rootClosed = depth == 0
		case xml.EndElement:
			depth--
			rootClosed = depth == 0
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return model.Feed{}, &ParseError{Reason: "text outside document element"}
			}
		}
	}

	if !found {
		return model.Feed{}, &ParseError{Reason: "no channel found"}
	}

	return feed, nil
}

// Поле, которое может отсутствовать в документе.
// nil - элемента нет, иначе его текст.
type optional *string

func present(s string) optional {
	return &s
}

// Схлопываем в строку на границе модели.
// Пустой элемент считаем отсутствующим, как и отсутствующий.
func orElse(v optional, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}

type rawItem struct {
	title, description, link, pubDate, guid, encoded optional
}

func (r rawItem) normalize() model.FeedItem {
	description := orElse(r.description, "")
	link := orElse(r.link, "")

	return model.FeedItem{
		Title:          orElse(r.title, ""),
		Description:    description,
		ContentSnippet: description,
		Link:           link,
		PubDate:        orElse(r.pubDate, ""),
		GUID:           orElse(r.guid, link),
		Content:        orElse(r.encoded, description),
	}
}

func decodeChannel(d *xml.Decoder, channel xml.StartElement) (model.Feed, error) {
	var (
		title, description, link optional
		feed                     = model.Feed{Items: []model.FeedItem{}}
	)

	err := walkChildren(d, func(el xml.StartElement) error {
		if el.Name.Local == "item" {
			item, err := decodeItem(d, channel.Name.Space)
			if err != nil {
				return err
			}
			feed.Items = append(feed.Items, item)
			return nil
		}

		if el.Name.Space != channel.Name.Space {
			return d.Skip()
		}

		switch el.Name.Local {
		case "title":
			return readFirst(d, &title)
		case "description":
			return readFirst(d, &description)
		case "link":
			return readFirst(d, &link)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return model.Feed{}, err
	}

	feed.Title = orElse(title, "")
	feed.Description = orElse(description, "")
	feed.Link = orElse(link, "")

	return feed, nil
}

func decodeItem(d *xml.Decoder, space string) (model.FeedItem, error) {
	var raw rawItem

	err := walkChildren(d, func(el xml.StartElement) error {
		if el.Name.Local == "encoded" && (el.Name.Space == contentNamespace || el.Name.Space == "content") {
			return readFirst(d, &raw.encoded)
		}

		if el.Name.Space != space {
			return d.Skip()
		}

		switch el.Name.Local {
		case "title":
			return readFirst(d, &raw.title)
		case "description":
			return readFirst(d, &raw.description)
		case "link":
			return readFirst(d, &raw.link)
		case "pubDate":
			return readFirst(d, &raw.pubDate)
		case "guid":
			return readFirst(d, &raw.guid)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return model.FeedItem{}, err
	}

	return raw.normalize(), nil
}

// Обходит прямых потомков текущего элемента до его закрывающего тега.
// fn обязана полностью прочитать элемент, который ей передали.
func walkChildren(d *xml.Decoder, fn func(el xml.StartElement) error) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// Читает текст элемента, если значение еще не задано. Побеждает первый элемент.
func readFirst(d *xml.Decoder, dst *optional) error {
	text, err := readText(d)
	if err != nil {
		return err
	}
	if *dst == nil {
		*dst = present(text)
	}
	return nil
}

// Аналог textContent: весь текст элемента вместе с вложенными
func readText(d *xml.Decoder) (string, error) {
	var (
		b     strings.Builder
		depth = 1
	)

	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			b.Write(t)
		}
	}

	return b.String(), nil
}
