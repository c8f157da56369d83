package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// buttonPrefix opens the call-to-action syntax: [!button|Label](URL).
var buttonPrefix = []byte("[!button|")

// KindButton is the node kind for ButtonNode.
var KindButton = ast.NewNodeKind("Button")

// ButtonNode is a call-to-action link rendered as <a class="btn">.
type ButtonNode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

func (n *ButtonNode) Kind() ast.NodeKind { return KindButton }

func (n *ButtonNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URL":   string(n.URL),
		"Label": string(n.Label),
	}, nil)
}

type buttonParser struct{}

func (buttonParser) Trigger() []byte { return []byte{'['} }

func (buttonParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, buttonPrefix) {
		return nil
	}

	rest := line[len(buttonPrefix):]
	labelEnd := bytes.IndexByte(rest, ']')
	if labelEnd == -1 || labelEnd+1 >= len(rest) || rest[labelEnd+1] != '(' {
		return nil
	}

	urlPart := rest[labelEnd+2:]
	urlEnd := bytes.IndexByte(urlPart, ')')
	if urlEnd == -1 {
		return nil
	}

	block.Advance(len(buttonPrefix) + labelEnd + 2 + urlEnd + 1)

	return &ButtonNode{
		Label: rest[:labelEnd],
		URL:   urlPart[:urlEnd],
	}
}

type buttonRenderer struct {
	html.Config
}

func (r *buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButton, r.render)
}

func (r *buttonRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ButtonNode)
	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(n.URL))
	_, _ = w.WriteString(`" class="btn">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)

	return ast.WalkContinue, nil
}

type buttonExtension struct{}

func (buttonExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(buttonParser{}, 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&buttonRenderer{Config: html.NewConfig()}, 50),
	))
}

// NewButtonExtension returns a goldmark extension for [!button|Label](URL) links.
func NewButtonExtension() goldmark.Extender {
	return buttonExtension{}
}
