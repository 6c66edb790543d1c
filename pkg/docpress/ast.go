package docpress

import (
	"fmt"
	"strings"
)

// Node is one directive node of a parsed template: literal text, an
// interpolation, a translation lookup, or a block construct.
type Node interface {
	render(ctx *renderContext, sc *scope, out *strings.Builder) error
	String() string
}

// TextNode is literal passthrough text.
type TextNode struct {
	Content string
}

func (n *TextNode) String() string {
	return fmt.Sprintf("Text(%q)", n.Content)
}

func (n *TextNode) render(ctx *renderContext, sc *scope, out *strings.Builder) error {
	out.WriteString(n.Content)
	return nil
}

// InterpolationNode substitutes a resolved path. Escaped unless the source
// used the raw triple-stash marker.
type InterpolationNode struct {
	Path string
	Raw  bool
}

func (n *InterpolationNode) String() string {
	if n.Raw {
		return fmt.Sprintf("Raw(%s)", n.Path)
	}
	return fmt.Sprintf("Var(%s)", n.Path)
}

func (n *InterpolationNode) render(ctx *renderContext, sc *scope, out *strings.Builder) error {
	v := sc.Resolve(n.Path)
	if v.IsAbsent() {
		return nil
	}

	text, err := ctx.formatValue(v)
	if err != nil {
		return err
	}
	if !n.Raw {
		text = EscapeHTML(text)
	}
	out.WriteString(text)
	return nil
}

// TranslateNode looks up a key in the active locale's translation table.
// An unknown key renders as the key itself, never as empty output.
type TranslateNode struct {
	Key string
}

func (n *TranslateNode) String() string {
	return fmt.Sprintf("T(%q)", n.Key)
}

func (n *TranslateNode) render(ctx *renderContext, sc *scope, out *strings.Builder) error {
	out.WriteString(EscapeHTML(ctx.translate(n.Key, nil)))
	return nil
}

// IfNode is a conditional block with an optional else branch. The matched
// branch evaluates in the same scope the condition was evaluated in;
// conditionals do not introduce a new scope.
type IfNode struct {
	Path string
	Then []Node
	Else []Node
}

func (n *IfNode) String() string {
	if len(n.Else) > 0 {
		return fmt.Sprintf("If(%s) Else", n.Path)
	}
	return fmt.Sprintf("If(%s)", n.Path)
}

func (n *IfNode) render(ctx *renderContext, sc *scope, out *strings.Builder) error {
	if sc.Resolve(n.Path).Truthy() {
		return renderBody(n.Then, ctx, sc, out)
	}
	return renderBody(n.Else, ctx, sc, out)
}

// EachNode is a loop block. Each element gets its own scope with the
// element bound to "this", so conditionals inside the body re-evaluate per
// iteration. A non-list or absent path means zero iterations.
type EachNode struct {
	Path string
	Body []Node
}

func (n *EachNode) String() string {
	return fmt.Sprintf("Each(%s)", n.Path)
}

func (n *EachNode) render(ctx *renderContext, sc *scope, out *strings.Builder) error {
	v := sc.Resolve(n.Path)
	if v.Kind() != KindList {
		return nil
	}
	for _, elem := range v.Items() {
		if err := renderBody(n.Body, ctx, sc.push(elem), out); err != nil {
			return err
		}
	}
	return nil
}

// renderBody evaluates a node list in source order into out.
func renderBody(body []Node, ctx *renderContext, sc *scope, out *strings.Builder) error {
	for _, node := range body {
		if err := node.render(ctx, sc, out); err != nil {
			return err
		}
	}
	return nil
}

// dumpNodes renders a compact AST description, used by parser tests.
func dumpNodes(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
