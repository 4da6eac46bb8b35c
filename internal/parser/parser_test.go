package parser

import (
	"errors"
	"reflect"
	"testing"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">
  <channel>
    <title>Cyber Security Hub</title>
    <atom:link href="https://www.cshub.com/rss/categories/attacks" rel="self" type="application/rss+xml"/>
    <link>https://www.cshub.com</link>
    <description>Attacks category</description>
    <item>
      <title>Ransomware hits hospital</title>
      <link>https://www.cshub.com/attacks/articles/ransomware</link>
      <description><![CDATA[<p>Systems were encrypted</p>]]></description>
      <pubDate>Mon, 01 Jan 2024 12:00:00 GMT</pubDate>
      <guid isPermaLink="false">article-1</guid>
      <content:encoded><![CDATA[<p>Full story</p>]]></content:encoded>
    </item>
    <item>
      <title>Phishing wave</title>
      <link>https://www.cshub.com/attacks/articles/phishing</link>
      <description>Credentials stolen</description>
    </item>
    <item>
      <title>Third</title>
    </item>
  </channel>
</rss>`

func TestParseRSS2(t *testing.T) {
	feed, err := Parse([]byte(sampleRSS))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if feed.Title != "Cyber Security Hub" {
		t.Errorf("Expected title 'Cyber Security Hub', got: %s", feed.Title)
	}
	if feed.Link != "https://www.cshub.com" {
		t.Errorf("Expected link 'https://www.cshub.com', got: %q", feed.Link)
	}
	if feed.Description != "Attacks category" {
		t.Errorf("Expected description 'Attacks category', got: %s", feed.Description)
	}

	if len(feed.Items) != 3 {
		t.Fatalf("Expected 3 items, got: %d", len(feed.Items))
	}

	first := feed.Items[0]
	if first.Title != "Ransomware hits hospital" {
		t.Errorf("Expected title 'Ransomware hits hospital', got: %s", first.Title)
	}
	if first.Description != "<p>Systems were encrypted</p>" {
		t.Errorf("Unexpected description: %q", first.Description)
	}
	if first.ContentSnippet != first.Description {
		t.Errorf("Expected contentSnippet to equal description, got: %q", first.ContentSnippet)
	}
	if first.Content != "<p>Full story</p>" {
		t.Errorf("Expected encoded content, got: %q", first.Content)
	}
	if first.GUID != "article-1" {
		t.Errorf("Expected GUID 'article-1', got: %s", first.GUID)
	}
	if first.PubDate != "Mon, 01 Jan 2024 12:00:00 GMT" {
		t.Errorf("Expected raw pubDate, got: %q", first.PubDate)
	}

	second := feed.Items[1]
	if second.GUID != second.Link {
		t.Errorf("Expected GUID to fall back to link, got: %q", second.GUID)
	}
	if second.Content != "Credentials stolen" {
		t.Errorf("Expected content to fall back to description, got: %q", second.Content)
	}

	third := feed.Items[2]
	for name, v := range map[string]string{
		"description": third.Description,
		"link":        third.Link,
		"pubDate":     third.PubDate,
		"guid":        third.GUID,
		"content":     third.Content,
		"snippet":     third.ContentSnippet,
	} {
		if v != "" {
			t.Errorf("Expected empty %s, got: %q", name, v)
		}
	}
}

func TestParseKeepsDocumentOrder(t *testing.T) {
	feed, err := Parse([]byte(sampleRSS))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"Ransomware hits hospital", "Phishing wave", "Third"}
	for i, title := range want {
		if feed.Items[i].Title != title {
			t.Errorf("Item %d: expected %q, got %q", i, title, feed.Items[i].Title)
		}
	}
}

func TestParseChannelAsRoot(t *testing.T) {
	doc := `<?xml version="1.0"?><channel><title>Y</title><item><title>T</title></item></channel>`

	feed, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if feed.Title != "Y" {
		t.Errorf("Expected title 'Y', got: %s", feed.Title)
	}
	if len(feed.Items) != 1 {
		t.Errorf("Expected 1 item, got: %d", len(feed.Items))
	}
}

func TestParseEmptyChannel(t *testing.T) {
	feed, err := Parse([]byte(`<rss><channel></channel></rss>`))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if feed.Items == nil || len(feed.Items) != 0 {
		t.Errorf("Expected empty non-nil items, got: %#v", feed.Items)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "no channel", doc: `<?xml version="1.0"?><rss version="2.0"></rss>`},
		{name: "not xml", doc: `not valid xml`},
		{name: "unclosed", doc: `<rss><channel><title>X</title>`},
		{name: "mismatched tags", doc: `<rss><channel><title>X</link></channel></rss>`},
		{name: "empty", doc: ``},
		{name: "html page", doc: `<html><body><h1>Blocked</h1></body></html>`},
		{name: "second root", doc: `<?xml version="1.0"?><rss><channel><title>Y</title></channel></rss><rss><junk/></rss>`},
		{name: "text after root", doc: `<rss><channel><title>Y</title></channel></rss>trailing text`},
		{name: "element after bare channel", doc: `<channel><title>Y</title></channel><extra/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("Expected *ParseError, got: %T", err)
			}
		})
	}
}

func TestParseHTMLEntities(t *testing.T) {
	doc := `<rss><channel><title>A&nbsp;B &amp; C</title></channel></rss>`

	feed, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if feed.Title != "A\u00a0B & C" {
		t.Errorf("Unexpected title: %q", feed.Title)
	}
}

func TestParseLatin1(t *testing.T) {
	doc := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><rss><channel><title>Caf\xe9</title></channel></rss>")

	feed, err := Parse(doc)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if feed.Title != "Café" {
		t.Errorf("Expected 'Café', got: %q", feed.Title)
	}
}

func TestParseTextIgnoresDeclaredEncoding(t *testing.T) {
	doc := `<?xml version="1.0" encoding="ISO-8859-1"?><rss><channel><title>Café Ünïcode</title></channel></rss>`

	feed, err := ParseText(doc)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if feed.Title != "Café Ünïcode" {
		t.Errorf("Expected 'Café Ünïcode', got: %q", feed.Title)
	}
}

func TestParseAllowsTrailingMisc(t *testing.T) {
	doc := "<rss><channel><title>Y</title></channel></rss>\n<!-- generated -->\n"

	feed, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if feed.Title != "Y" {
		t.Errorf("Expected 'Y', got: %q", feed.Title)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	a, err := Parse([]byte(sampleRSS))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	b, err := Parse([]byte(sampleRSS))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("Expected identical feeds for identical input")
	}
}

func TestHasPreamble(t *testing.T) {
	tests := map[string]bool{
		`<?xml version="1.0"?><rss/>`: true,
		`<rss version="2.0"></rss>`:   true,
		`{"contents": "x"}`:           false,
		`<html></html>`:               false,
		``:                            false,
	}

	for in, want := range tests {
		if got := HasPreamble(in); got != want {
			t.Errorf("HasPreamble(%q) = %v, want %v", in, got, want)
		}
	}
}
