package induct_test

import (
	"testing"

	"github.com/fwojciec/swi"
	"github.com/fwojciec/swi/induct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// find returns the first node matching selector.
func find(t *testing.T, doc swi.Node, selector string) swi.Node {
	t.Helper()
	nodes, err := doc.Select(selector)
	require.NoError(t, err)
	require.NotEmpty(t, nodes, "no node matches %q", selector)
	return nodes[0]
}

func TestBuildPath(t *testing.T) {
	t.Parallel()

	doc, _ := parsePage(t, `<div id="main"><span class="price big" data-sku="A1">$12.99</span></div>`)

	path := induct.BuildPath(find(t, doc, "span"))

	require.Len(t, path, 4)
	assert.Equal(t, "html body div#main span.price.big[data-sku]", path.String())
	assert.Equal(t, []string{"html", "body", "div", "span"}, path.Shape())
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	t.Run("drops tokens containing the forbidden value", func(t *testing.T) {
		t.Parallel()

		doc, _ := parsePage(t, `<span class="price-12.99 price">$12.99</span>`)

		path := induct.Sanitize(induct.BuildPath(find(t, doc, "span")), "12.99")

		assert.Equal(t, "html body span.price", path.String())
	})

	t.Run("drops tokens containing line breaks", func(t *testing.T) {
		t.Parallel()

		doc, _ := parsePage(t, "<p id=\"a\nb\" class=\"x\">text</p>")

		path := induct.Sanitize(induct.BuildPath(find(t, doc, "p")), "")

		assert.Equal(t, "html body p.x", path.String())
	})

	t.Run("keeps emptied levels", func(t *testing.T) {
		t.Parallel()

		path := induct.FragmentedSelector{
			{{Kind: induct.TokenTag, Value: "div"}},
			{{Kind: induct.TokenClass, Value: "sale"}},
		}

		got := induct.Sanitize(path, "sale")

		require.Len(t, got, 2)
		assert.Empty(t, got[1])
		assert.Equal(t, "div", got.String())
	})
}

func TestMinimize(t *testing.T) {
	t.Parallel()

	t.Run("reduces to the shortest equivalent selector", func(t *testing.T) {
		t.Parallel()

		doc, _ := parsePage(t, `<div><span class="price">$12.99</span></div>`)

		path, err := induct.Minimize(doc, induct.BuildPath(find(t, doc, "span")))

		require.NoError(t, err)
		assert.Equal(t, ".price", path.String())
	})

	t.Run("keeps tokens needed to disambiguate", func(t *testing.T) {
		t.Parallel()

		doc, _ := parsePage(t, `<div><img src="a.jpg"></div><p><img src="b.jpg"></p>`)

		path, err := induct.Minimize(doc, induct.BuildPath(find(t, doc, "img")))

		require.NoError(t, err)
		assert.Equal(t, "div [src]", path.String())
	})

	t.Run("selects the same nodes as the full path", func(t *testing.T) {
		t.Parallel()

		doc, _ := parsePage(t, `<header id="top" class="bar"><a href="/" class="logo">Shop</a></header>
<main><ul class="items">
<li class="item"><a href="/1">One</a><span class="price">1.00</span></li>
<li class="item sale"><a href="/2">Two</a><span class="price">2.00</span></li>
</ul><div id="9lives" class="note">Nine</div></main>
<footer class="bar"><a href="/about">About</a></footer>`)

		for _, node := range doc.Descendants() {
			full := induct.BuildPath(node)
			want, err := doc.Select(full.String())
			require.NoError(t, err)

			path, err := induct.Minimize(doc, full)
			require.NoError(t, err)
			got, err := doc.Select(path.String())
			require.NoError(t, err)

			assert.Equal(t, want, got, "minimized %q from %q", path.String(), full.String())
		}
	})

	t.Run("returns nothing for an empty path", func(t *testing.T) {
		t.Parallel()

		doc, _ := parsePage(t, `<p>x</p>`)

		path, err := induct.Minimize(doc, induct.FragmentedSelector{{}, {}})

		require.NoError(t, err)
		assert.Empty(t, path)
	})
}

func TestToken_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token induct.Token
		want  string
	}{
		{"tag", induct.Token{Kind: induct.TokenTag, Value: "span"}, "span"},
		{"id", induct.Token{Kind: induct.TokenID, Value: "main"}, "#main"},
		{"id with leading digit", induct.Token{Kind: induct.TokenID, Value: "9lives"}, `[id="9lives"]`},
		{"class", induct.Token{Kind: induct.TokenClass, Value: "price"}, ".price"},
		{"class with colon", induct.Token{Kind: induct.TokenClass, Value: "md:flex"}, `.md\:flex`},
		{"class with leading digit", induct.Token{Kind: induct.TokenClass, Value: "2col"}, `.\32 col`},
		{"attribute", induct.Token{Kind: induct.TokenAttr, Value: "data-sku"}, "[data-sku]"},
		{"lone hyphen", induct.Token{Kind: induct.TokenClass, Value: "-"}, `.\-`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.token.String())
		})
	}
}

func TestMinimize_EscapedTokensCompile(t *testing.T) {
	t.Parallel()

	doc, _ := parsePage(t, `<div id="9lives"><span class="md:flex 2col">x</span></div>`)

	path, err := induct.Minimize(doc, induct.BuildPath(find(t, doc, "span")))

	require.NoError(t, err)
	got, err := doc.Select(path.String())
	require.NoError(t, err)
	assert.Equal(t, []swi.Node{find(t, doc, "span")}, got)
}
