package template

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// XHTMLNamespace is set on the root element of full documents.
const XHTMLNamespace = "http://www.w3.org/1999/xhtml"

var (
	placeholderRegex = regexp.MustCompile(`\$\{([A-Za-z0-9_.-]+)\}`)
	leadingTagRegex  = regexp.MustCompile(`^\s*<([a-zA-Z][a-zA-Z0-9]*)`)
)

// fragmentContexts maps the first element of a fragment to the element it
// must be parsed inside so table markup survives.
var fragmentContexts = map[atom.Atom]atom.Atom{
	atom.Tr:       atom.Tbody,
	atom.Td:       atom.Tr,
	atom.Th:       atom.Tr,
	atom.Thead:    atom.Table,
	atom.Tbody:    atom.Table,
	atom.Tfoot:    atom.Table,
	atom.Caption:  atom.Table,
	atom.Colgroup: atom.Table,
	atom.Col:      atom.Colgroup,
	atom.Option:   atom.Select,
	atom.Optgroup: atom.Select,
}

// SubstitutePlaceholders replaces ${KEY} tokens with the HTML-escaped string
// form of placeholders[KEY]. Unknown keys are left untouched.
func SubstitutePlaceholders(text string, placeholders map[string]any) string {
	if len(placeholders) == 0 {
		return text
	}
	return placeholderRegex.ReplaceAllStringFunc(text, func(token string) string {
		key := token[2 : len(token)-1]
		v, ok := placeholders[key]
		if !ok {
			return token
		}
		return html.EscapeString(fmt.Sprint(v))
	})
}

// ToXHTML substitutes placeholders and re-serialises text as well-formed
// XHTML: every element closed, void elements self-closed, attributes quoted,
// special characters escaped and text in Unicode NFC.
//
// Input containing an <html> element is treated as a full document and gets
// the XHTML namespace; anything else is treated as a fragment, parsed in the
// context its first element requires (e.g. a <tbody> for a leading <tr>).
// Script and style text is wrapped in CDATA sections.
func ToXHTML(text string, placeholders map[string]any) (string, error) {
	text = norm.NFC.String(SubstitutePlaceholders(text, placeholders))

	if strings.Contains(strings.ToLower(text), "<html") {
		return documentToXHTML(text)
	}
	return fragmentToXHTML(text)
}

func documentToXHTML(text string) (string, error) {
	doc, err := nethtml.Parse(strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMarkup, err)
	}

	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == nethtml.ElementNode && n.DataAtom == atom.Html {
			setNamespace(n)
		}
		protectRawText(n)
	}

	var sb strings.Builder
	if err := nethtml.Render(&sb, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMarkup, err)
	}
	return sb.String(), nil
}

func fragmentToXHTML(text string) (string, error) {
	nodes, err := nethtml.ParseFragment(strings.NewReader(text), fragmentContext(text))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMarkup, err)
	}

	var sb strings.Builder
	for _, n := range nodes {
		protectRawText(n)
		if err := nethtml.Render(&sb, n); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidMarkup, err)
		}
	}
	return sb.String(), nil
}

func fragmentContext(text string) *nethtml.Node {
	ctx := atom.Body
	if m := leadingTagRegex.FindStringSubmatch(text); m != nil {
		if c, ok := fragmentContexts[atom.Lookup([]byte(strings.ToLower(m[1])))]; ok {
			ctx = c
		}
	}
	return &nethtml.Node{Type: nethtml.ElementNode, Data: ctx.String(), DataAtom: ctx}
}

// protectRawText wraps the text of raw text elements, which the renderer
// writes unescaped, in CDATA sections. Script and style keep the markers
// inside comments so HTML consumers still read valid code.
func protectRawText(n *nethtml.Node) {
	if p := n.Parent; n.Type == nethtml.TextNode && p != nil && p.Type == nethtml.ElementNode && p.Namespace == "" {
		switch p.DataAtom {
		case atom.Script, atom.Style:
			if needsCDATA(n.Data) {
				n.Data = "/*<![CDATA[*/" + escapeCDATA(n.Data) + "/*]]>*/"
			}
		case atom.Xmp, atom.Iframe, atom.Noembed, atom.Noframes, atom.Noscript, atom.Plaintext:
			if needsCDATA(n.Data) {
				n.Data = "<![CDATA[" + escapeCDATA(n.Data) + "]]>"
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		protectRawText(c)
	}
}

func needsCDATA(s string) bool {
	return strings.ContainsAny(s, "<&") || strings.Contains(s, "]]>")
}

// escapeCDATA splits every "]]>" so it cannot end the section early.
func escapeCDATA(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}

func setNamespace(n *nethtml.Node) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == "xmlns" {
			n.Attr[i].Val = XHTMLNamespace
			return
		}
	}
	n.Attr = append(n.Attr, nethtml.Attribute{Key: "xmlns", Val: XHTMLNamespace})
}
