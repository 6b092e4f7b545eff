package jsxc

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsxcompile/jsxc/parser"
)

func TestPreprocessPlainCodeIsUnchanged(t *testing.T) {
	out, err := Preprocess("const x = 1;", nil)
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;", out)
}

func TestPreprocessLeafElement(t *testing.T) {
	out, err := Preprocess(`const el = <br/>;`, nil)
	require.NoError(t, err)
	code, ok := out.(string)
	require.True(t, ok)
	assert.Contains(t, code, "runtime.createRootElement('br')")
}

func TestPreprocessTextContentAndEventLowering(t *testing.T) {
	out, err := Preprocess(`const el = <button onDoubleClick={onDbl}>go</button>;`, nil)
	require.NoError(t, err)
	code := out.(string)
	assert.Contains(t, code, "__.ondblclick = onDbl;")
	assert.Contains(t, code, "__.textContent = 'go';")
}

func TestPreprocessReactiveInsert(t *testing.T) {
	out, err := Preprocess(`const el = <div>{count()}</div>;`, nil)
	require.NoError(t, err)
	code := out.(string)
	assert.Contains(t, code, "runtime.insert(range, count());")
}

func TestPreprocessSubcomponentGrouping(t *testing.T) {
	out, err := Preprocess(`const el = <MyButton {...props} onClick={fire}>Click</MyButton>;`, nil)
	require.NoError(t, err)
	code := out.(string)
	assert.Contains(t, code, "runtime.subcomponent(MyButton,")
}

func TestPreprocessNativeDialectEntityTranslationAndPromotion(t *testing.T) {
	out, err := Preprocess(`const el = <div>a &amp; b</div>;`, &Options{Jsx: false, Sourcefile: "in.js", Targetfile: "out.js"})
	require.NoError(t, err)
	code := out.(string)
	assert.Contains(t, code, "__.textContent = 'a & b';")
}

func TestPreprocessNativeDialectNamedAndNumericEntities(t *testing.T) {
	out, err := Preprocess(`const el = <div>&amp;&#65;</div>;`, &Options{Jsx: false, Sourcefile: "in.js", Targetfile: "out.js"})
	require.NoError(t, err)
	code := out.(string)
	assert.Contains(t, code, "__.textContent = '&A';")
}

func TestPreprocessSourcemapExtract(t *testing.T) {
	opts := DefaultOptions()
	opts.Sourcemap = SourcemapExtract
	out, err := Preprocess(`const el = <div class="a"/>;`, opts)
	require.NoError(t, err)
	result, ok := out.(*Result)
	require.True(t, ok)
	assert.NotEmpty(t, result.Src)
	assert.Contains(t, result.Map, `"version":3`)
}

func TestPreprocessSourcemapAppend(t *testing.T) {
	opts := DefaultOptions()
	opts.Sourcemap = SourcemapAppend
	out, err := Preprocess(`const el = <div class="a"/>;`, opts)
	require.NoError(t, err)
	code := out.(string)

	const marker = "//# sourceMappingURL=data:application/json,"
	assert.Contains(t, code, marker)
	assert.NotContains(t, code, ";base64,")

	idx := strings.Index(code, marker) + len(marker)
	encoded := strings.TrimSpace(code[idx:])
	decoded, err := url.QueryUnescape(encoded)
	require.NoError(t, err)
	assert.Contains(t, decoded, `"version":3`)
}

func TestPreprocessParseErrorIsLocated(t *testing.T) {
	_, err := Preprocess(`const el = <div></span>;`, nil)
	require.Error(t, err)
	perr, ok := err.(*parser.Error)
	require.True(t, ok)
	assert.Equal(t, 1, perr.Line)
	assert.Greater(t, perr.Column, 0)
}
