package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementHTML(t *testing.T) {
	n := El("div", El("h1", Text("Hello")), Text("world")).
		WithClass("box").
		WithAttr("id", "c1")

	assert.Equal(t, `<div class="box" id="c1"><h1>Hello</h1>world</div>`, n.HTML())
}

func TestTextEscaped(t *testing.T) {
	n := El("p", Text(`<script>alert("x")</script>`))
	assert.Equal(t, `<p>&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;</p>`, n.HTML())
}

func TestRawEmittedVerbatim(t *testing.T) {
	n := El("div", Raw("<em>kept</em>"))
	assert.Equal(t, "<div><em>kept</em></div>", n.HTML())
}

func TestAttrEscaped(t *testing.T) {
	n := El("a", Text("x")).WithAttr("href", `javascript:"quote`)
	assert.Equal(t, `<a href="javascript:&#34;quote">x</a>`, n.HTML())
}

func TestVoidElement(t *testing.T) {
	n := El("img").WithAttr("src", "/a.png").WithAttr("alt", "pic")
	assert.Equal(t, `<img src="/a.png" alt="pic"/>`, n.HTML())
}

func TestWithAttrReplacesInPlace(t *testing.T) {
	n := El("div").WithAttr("id", "one").WithAttr("class", "x").WithAttr("id", "two")
	assert.Equal(t, `<div id="two" class="x"></div>`, n.HTML())
}

func TestWithClassAppends(t *testing.T) {
	n := El("div").WithClass("a").WithClass("b")
	got, _ := n.Attr("class")
	assert.Equal(t, "a b", got)
}

func TestWithStyleAppends(t *testing.T) {
	n := El("div").WithStyle("color", "red").WithStyle("height", "10px")
	got, _ := n.Attr("style")
	assert.Equal(t, "color:red;height:10px", got)
}

func TestDeterministicSerialization(t *testing.T) {
	build := func() *Node {
		return El("section",
			El("h2", Text("Title")),
			El("p", Text("Body")),
		).WithClass("block").WithStyle("background-color", "#fff")
	}
	assert.Equal(t, build().HTML(), build().HTML())
}

func TestEqual(t *testing.T) {
	a := El("div", El("p", Text("x"))).WithClass("c")
	b := El("div", El("p", Text("x"))).WithClass("c")
	c := El("div", El("p", Text("y"))).WithClass("c")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}
