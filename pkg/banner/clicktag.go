package banner

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"

	"github.com/matzehuels/bannerforge/pkg/errors"
)

// Markup inserted into every template. The anchor href opens whatever URL
// the ad server assigns to clickTag at serve time.
const (
	adSizeMeta     = `<meta name="ad.size" content="width=%s,height=%s"/>`
	clickTagScript = `<script type="text/javascript">var clickTag = ""</script>`
	clickTagAnchor = `<a href="javascript:window.open(window.clickTag)"></a>`
)

// surfaceSelector matches the fixed-size rendering surface of a banner.
const surfaceSelector = "canvas"

// SurfaceSize returns the width and height attributes declared on the first
// canvas of doc, verbatim.
func SurfaceSize(doc *goquery.Document) (width, height string, err error) {
	surface := doc.Find(surfaceSelector).First()
	if surface.Length() == 0 {
		return "", "", errors.Configuration("no <%s> rendering surface found", surfaceSelector)
	}
	width, okW := surface.Attr("width")
	height, okH := surface.Attr("height")
	if !okW || !okH || strings.TrimSpace(width) == "" || strings.TrimSpace(height) == "" {
		return "", "", errors.Configuration("<%s> is missing a width or height attribute", surfaceSelector)
	}
	return strings.TrimSpace(width), strings.TrimSpace(height), nil
}

// injectClicktag applies the clicktag markup to doc in place. Running it
// twice on the same document duplicates every insertion.
func injectClicktag(doc *goquery.Document, width, height string) error {
	title := doc.Find("title").First()
	if title.Length() == 0 {
		return errors.Configuration("no <title> element to anchor the clicktag markup")
	}
	surface := doc.Find(surfaceSelector).First()
	if surface.Length() == 0 {
		return errors.Configuration("no <%s> rendering surface found", surfaceSelector)
	}

	title.AfterHtml(fmt.Sprintf(adSizeMeta, width, height) + clickTagScript)
	surface.WrapHtml(clickTagAnchor)
	return nil
}

// parseMarkup loads markup into a goquery document.
func parseMarkup(markup []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "parse html")
	}
	return doc, nil
}

// verbatimElements keep their rendered form byte for byte through
// formatting. Script and style bodies are code, and the others are
// whitespace-sensitive text.
var verbatimElements = map[string]bool{
	"script":   true,
	"style":    true,
	"textarea": true,
	"pre":      true,
	"title":    true,
}

// stashVerbatim replaces every verbatim element below n with a text token
// and records the element's rendered markup under that token.
func stashVerbatim(n *html.Node, stash map[string]string) error {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && verbatimElements[c.Data] {
			var buf bytes.Buffer
			if err := html.Render(&buf, c); err != nil {
				return err
			}
			token := fmt.Sprintf("bannerforge-verbatim-%d-end", len(stash))
			stash[token] = buf.String()
			n.InsertBefore(&html.Node{Type: html.TextNode, Data: token}, c)
			n.RemoveChild(c)
		} else if err := stashVerbatim(c, stash); err != nil {
			return err
		}
		c = next
	}
	return nil
}

// renderMarkup serializes doc with indentation. Verbatim elements are
// indented as a whole but their contents are left untouched. doc is
// consumed by the call.
func renderMarkup(doc *goquery.Document) ([]byte, error) {
	stash := make(map[string]string)
	var buf bytes.Buffer
	for _, n := range doc.Nodes {
		if err := stashVerbatim(n, stash); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render html")
		}
		if err := html.Render(&buf, n); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render html")
		}
	}

	pairs := make([]string, 0, 2*len(stash))
	for token, markup := range stash {
		pairs = append(pairs, token, markup)
	}
	formatted := strings.NewReplacer(pairs...).Replace(gohtml.Format(buf.String()))
	return []byte(formatted + "\n"), nil
}

// InjectClicktag returns markup with the ad.size meta tag and the clickTag
// script inserted after <title>, and the canvas wrapped in a click-through
// anchor. It is not idempotent: callers inject once, against a pristine
// template.
func InjectClicktag(markup []byte, width, height string) ([]byte, error) {
	doc, err := parseMarkup(markup)
	if err != nil {
		return nil, err
	}
	if err := injectClicktag(doc, width, height); err != nil {
		return nil, err
	}
	return renderMarkup(doc)
}
