package model

// Нормализованная запись ленты.
// Все поля всегда строки: отсутствующее значение это "", а не nil,
// чтобы потребителям не приходилось проверять наличие полей.
type FeedItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	// Совпадает с Description, обрезка делается на уровне отображения
	ContentSnippet string `json:"contentSnippet"`
	Link           string `json:"link"`
	// Дата как она пришла из источника, может не парситься
	PubDate string `json:"pubDate"`
	// Если guid нет, берем link
	GUID string `json:"guid"`
	// Полный текст, если есть, иначе ContentSnippet
	Content string `json:"content"`
}

// Одна RSS лента после нормализации
type Feed struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Link        string     `json:"link"`
	Items       []FeedItem `json:"items"`
}

// Результат одного прохода агрегатора.
// nil означает, что категорию получить не удалось совсем.
type AggregateResult struct {
	Data    *Feed `json:"data"`
	Attacks *Feed `json:"attacks"`
}

// Обе категории упали, показываем "нет данных".
func (r AggregateResult) Empty() bool {
	return r.Data == nil && r.Attacks == nil
}

// Упала ровно одна категория, вторая пригодна к показу.
func (r AggregateResult) Degraded() bool {
	return (r.Data == nil) != (r.Attacks == nil)
}

func (r AggregateResult) Feed(c Category) *Feed {
	switch c {
	case CategoryData:
		return r.Data
	case CategoryAttacks:
		return r.Attacks
	default:
		return nil
	}
}

// Items категории, для упавшей категории пустой слайс
func (r AggregateResult) Items(c Category) []FeedItem {
	if f := r.Feed(c); f != nil {
		return f.Items
	}
	return nil
}

// Категория новостей
type Category string

const (
	CategoryData    Category = "data"
	CategoryAttacks Category = "attacks"
)

// Категории в порядке показа: сначала атаки (вкладка news), потом data
var Categories = []Category{CategoryAttacks, CategoryData}

// Запись после перевода.
// Оригинальный текст сохраняем для выделения тегов.
type TranslatedItem struct {
	FeedItem
	OriginalTitle          string `json:"originalTitle"`
	OriginalDescription    string `json:"originalDescription"`
	OriginalContentSnippet string `json:"originalContentSnippet"`
}

// Тег записи, выделенный по ключевому слову
type Tag struct {
	// Локализованное имя
	Name string
	// Ключевое слово на английском
	Original  string
	Highlight bool
}
