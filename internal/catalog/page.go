package catalog

import "github.com/samber/lo"

const DefaultPageSize = 10

type Page[T any] struct {
	Items []T
	// Номер страницы с единицы
	Number int
	// Всего страниц, 0 для пустого списка
	Total int
	// Индекс первой записи страницы в исходном списке
	Offset int
}

// Страница списка. Номер страницы зажимается в допустимые границы.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}

	total := (len(items) + perPage - 1) / perPage
	page = max(1, min(page, total))
	offset := (page - 1) * perPage

	return Page[T]{
		Items:  lo.Subset(items, offset, uint(perPage)),
		Number: page,
		Total:  total,
		Offset: offset,
	}
}

// Обрезает текст до max символов и добавляет многоточие
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
