package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PlainMarkupHasNoScripts(t *testing.T) {
	frag, err := Parse(`<div class="menu"><button>Entrar</button></div>`)
	require.NoError(t, err)

	assert.Empty(t, frag.Scripts)
	assert.Contains(t, frag.Markup, `class="menu"`)
	assert.Contains(t, frag.Markup, "Entrar")
}

func TestParse_StripsInlineScript(t *testing.T) {
	frag, err := Parse(`<div id="login"><form></form><script>window.init && window.init();</script></div>`)
	require.NoError(t, err)

	require.Len(t, frag.Scripts, 1)
	assert.False(t, frag.Scripts[0].External())
	assert.Equal(t, "window.init && window.init();", frag.Scripts[0].Inline)
	assert.NotContains(t, frag.Markup, "<script")
	assert.Contains(t, frag.Markup, `id="login"`)
}

func TestParse_ExternalScriptCarriesSrcAndAttrs(t *testing.T) {
	frag, err := Parse(`<div><script src="/static/js/password-match.js" defer></script></div>`)
	require.NoError(t, err)

	require.Len(t, frag.Scripts, 1)
	assert.True(t, frag.Scripts[0].External())
	assert.Equal(t, "/static/js/password-match.js", frag.Scripts[0].Src)
	assert.Contains(t, frag.Scripts[0].Attrs, "defer")
	assert.NotContains(t, frag.Markup, "script")
}

func TestParse_PreservesDocumentOrder(t *testing.T) {
	markup := `<div>` +
		`<script src="/a.js"></script>` +
		`<p>content</p>` +
		`<script>inline();</script>` +
		`<script src="/b.js"></script>` +
		`</div>`

	frag, err := Parse(markup)
	require.NoError(t, err)

	require.Len(t, frag.Scripts, 3)
	assert.Equal(t, "/a.js", frag.Scripts[0].Src)
	assert.Equal(t, "inline();", frag.Scripts[1].Inline)
	assert.Equal(t, "/b.js", frag.Scripts[2].Src)
}

func TestParse_TopLevelScript(t *testing.T) {
	frag, err := Parse(`<p>hola</p><script>top();</script>`)
	require.NoError(t, err)

	require.Len(t, frag.Scripts, 1)
	assert.Equal(t, "top();", frag.Scripts[0].Inline)
	assert.NotContains(t, frag.Markup, "top();")
	assert.Contains(t, frag.Markup, "hola")
}

func TestParse_NestedScript(t *testing.T) {
	frag, err := Parse(`<div><section><script>nested();</script><span>texto</span></section></div>`)
	require.NoError(t, err)

	require.Len(t, frag.Scripts, 1)
	assert.Equal(t, "nested();", frag.Scripts[0].Inline)
	assert.Contains(t, frag.Markup, "texto")
	assert.NotContains(t, frag.Markup, "nested")
}
