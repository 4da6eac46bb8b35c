package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/kovalyov-valentin/cyber-feed-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/catalog"
	"github.com/kovalyov-valentin/cyber-feed-bot/internal/model"
)

var (
	ransomware = model.FeedItem{
		Title:          "Ransomware hits hospital",
		Link:           "https://example.com/ransomware",
		GUID:           "https://example.com/ransomware",
		PubDate:        "Mon, 04 Mar 2024 10:00:00 +0000",
		ContentSnippet: "<p>Systems were encrypted overnight.</p>",
	}
	leak = model.FeedItem{
		Title:          "Cloud bucket leak",
		Link:           "https://example.com/leak",
		GUID:           "https://example.com/leak",
		PubDate:        "Tue, 13 Feb 2024 08:00:00 +0000",
		ContentSnippet: "Customer data exposed.",
	}
	now = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
)

func snapshot() model.AggregateResult {
	return model.AggregateResult{
		Attacks: &model.Feed{Title: "Attacks", Items: []model.FeedItem{ransomware}},
		Data:    &model.Feed{Title: "Data", Items: []model.FeedItem{leak}},
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		arg     string
		want    model.Category
		wantErr bool
	}{
		{"news", model.CategoryAttacks, false},
		{"Attacks", model.CategoryAttacks, false},
		{"data", model.CategoryData, false},
		{"weather", "", true},
	}

	for _, tt := range tests {
		got, err := parseCategory(tt.arg)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCategory(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("parseCategory(%q) = %q, want %q", tt.arg, got, tt.want)
		}
	}
}

func TestParsePage(t *testing.T) {
	for arg, want := range map[string]int{"3": 3, "0": 1, "-2": 1, "x": 1, "": 1} {
		if got := parsePage(arg); got != want {
			t.Errorf("parsePage(%q) = %d, want %d", arg, got, want)
		}
	}
}

func TestDetectLang(t *testing.T) {
	if got := detectLang("ransomware"); got != "en" {
		t.Errorf("detectLang(latin) = %q", got)
	}
	if got := detectLang("فدية"); got != "ar" {
		t.Errorf("detectLang(arabic) = %q", got)
	}
}

func TestFormatItem(t *testing.T) {
	got := formatItem(1, ransomware, []model.Tag{{Name: "ransomware", Highlight: true}, {Name: "data"}})

	for _, want := range []string{
		"1\\. [Ransomware hits hospital](https://example.com/ransomware)",
		"_Mon, 04 Mar 2024 10:00:00 \\+0000_",
		"*\\#ransomware* \\#data",
		"encrypted overnight",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("formatItem() = %q, missing %q", got, want)
		}
	}

	if strings.Contains(got, "<p>") {
		t.Errorf("html leaked into snippet: %q", got)
	}
}

func TestFormatItemWithoutDate(t *testing.T) {
	item := leak
	item.PubDate = ""

	if got := formatItem(2, item, nil); !strings.Contains(got, "_N/A_") {
		t.Errorf("formatItem() = %q, want N/A date", got)
	}
}

func TestRenderCategoryEmptySnapshot(t *testing.T) {
	got := renderCategory(model.AggregateResult{}, model.CategoryAttacks, 1, 10, catalog.DateAll, now)
	if got != markup.EscapeForMarkdown(noDataText) {
		t.Errorf("renderCategory() = %q", got)
	}
}

func TestRenderCategoryDegraded(t *testing.T) {
	degraded := model.AggregateResult{Attacks: snapshot().Attacks}

	got := renderCategory(degraded, model.CategoryData, 1, 10, catalog.DateAll, now)
	if !strings.Contains(got, markup.EscapeForMarkdown(unavailableText)) {
		t.Errorf("data category = %q, want unavailable notice", got)
	}

	got = renderCategory(degraded, model.CategoryAttacks, 1, 10, catalog.DateAll, now)
	if !strings.Contains(got, ransomware.Link) {
		t.Errorf("attacks category = %q, want item link", got)
	}
}

func TestRenderCategoryFilter(t *testing.T) {
	got := renderCategory(snapshot(), model.CategoryData, 1, 10, catalog.DateThisMonth, now)
	if !strings.Contains(got, "Nothing found") {
		t.Errorf("renderCategory(thisMonth) = %q, want nothing found", got)
	}

	got = renderCategory(snapshot(), model.CategoryData, 1, 10, catalog.DateLastMonth, now)
	if !strings.Contains(got, leak.Link) || !strings.Contains(got, "\\(page 1/1\\)") {
		t.Errorf("renderCategory(lastMonth) = %q", got)
	}
}

func TestRenderSearch(t *testing.T) {
	got := renderSearch(snapshot(), "ransomware", 10)
	if !strings.Contains(got, ransomware.Link) || strings.Contains(got, leak.Link) {
		t.Errorf("renderSearch() = %q", got)
	}

	if got := renderSearch(model.AggregateResult{}, "ransomware", 10); got != markup.EscapeForMarkdown(noDataText) {
		t.Errorf("renderSearch(empty) = %q", got)
	}
}

func TestRenderStats(t *testing.T) {
	s := snapshot()
	s.Attacks.Items = append(s.Attacks.Items, leak)

	got := renderStats(s, model.CategoryAttacks, "en", time.UTC)

	feb := strings.Index(got, "Feb 2024")
	mar := strings.Index(got, "Mar 2024")
	if feb < 0 || mar < 0 || feb > mar {
		t.Fatalf("renderStats() = %q, want Feb before Mar", got)
	}
	if !strings.Contains(got, "█") {
		t.Errorf("renderStats() = %q, want bars", got)
	}
}

func TestPickItem(t *testing.T) {
	item, err := pickItem(snapshot(), "news", "1")
	if err != nil || item.Link != ransomware.Link {
		t.Fatalf("pickItem(news, 1) = %v, %v", item.Link, err)
	}

	for _, args := range [][2]string{{"news", "2"}, {"news", "0"}, {"news", "x"}, {"weather", "1"}} {
		if _, err := pickItem(snapshot(), args[0], args[1]); err == nil {
			t.Errorf("pickItem(%q, %q) expected error", args[0], args[1])
		}
	}
}

func TestRenderTranslated(t *testing.T) {
	translated := model.TranslatedItem{
		FeedItem:            model.FeedItem{Title: "فدية", Link: ransomware.Link},
		OriginalTitle:       ransomware.Title,
		OriginalDescription: ransomware.ContentSnippet,
	}
	page := catalog.Paginate([]model.FeedItem{ransomware}, 1, 10)

	got := renderTranslated("News", []model.TranslatedItem{translated}, page, "ar")
	if !strings.Contains(got, "[فدية]("+ransomware.Link+")") {
		t.Errorf("renderTranslated() = %q, want translated title", got)
	}
	// Теги считаются по английскому оригиналу
	if !strings.Contains(got, "*\\#") {
		t.Errorf("renderTranslated() = %q, want highlighted tag", got)
	}
}

func TestRefreshSummary(t *testing.T) {
	if got := refreshSummary(model.AggregateResult{}); got != noDataText {
		t.Errorf("refreshSummary(empty) = %q", got)
	}

	got := refreshSummary(model.AggregateResult{Attacks: snapshot().Attacks})
	if got != "Feeds refreshed. News: 1 items, data: failed." {
		t.Errorf("refreshSummary(degraded) = %q", got)
	}
}

func TestSnapshotNotice(t *testing.T) {
	degraded := model.AggregateResult{Attacks: snapshot().Attacks}

	if got := snapshotNotice(model.AggregateResult{}, model.CategoryData); got != markup.EscapeForMarkdown(noDataText) {
		t.Errorf("snapshotNotice(empty) = %q", got)
	}
	if got := snapshotNotice(degraded, model.CategoryData); !strings.Contains(got, markup.EscapeForMarkdown(unavailableText)) {
		t.Errorf("snapshotNotice(failed category) = %q, want unavailable notice", got)
	}
	if got := snapshotNotice(degraded, model.CategoryAttacks); got != "" {
		t.Errorf("snapshotNotice(available category) = %q, want empty", got)
	}
}

func TestRenderStatsDegraded(t *testing.T) {
	degraded := model.AggregateResult{Attacks: snapshot().Attacks}

	got := renderStats(degraded, model.CategoryData, "en", time.UTC)
	if !strings.Contains(got, markup.EscapeForMarkdown(unavailableText)) {
		t.Errorf("renderStats(failed category) = %q, want unavailable notice", got)
	}
	if strings.Contains(got, "No dated items") {
		t.Errorf("renderStats(failed category) = %q, failed category shown as empty", got)
	}
}
