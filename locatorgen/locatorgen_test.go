package locatorgen

import (
	"testing"

	"github.com/dop251/goja/parser"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igaisin/playwright/log"
	"github.com/igaisin/playwright/selector"
)

func TestParseLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{in: "javascript", want: JavaScript},
		{in: "js", want: JavaScript},
		{in: "JS", want: JavaScript},
		{in: " python ", want: Python},
		{in: "py", want: Python},
		{in: "java", want: Java},
		{in: "csharp", want: CSharp},
		{in: "c#", want: CSharp},
		{in: "cs", want: CSharp},
		{in: "ruby", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrUnsupportedLanguage, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, lang := range Languages() {
		gen, err := New(lang, nil)
		require.NoError(t, err)
		assert.Equal(t, lang, gen.Language())
	}

	_, err := New(Language("ruby"), nil)
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		selector string
		js       string
		py       string
		java     string
		csharp   string
	}{
		{
			name:     "css",
			selector: "div > span",
			js:       `locator('div > span')`,
			py:       `locator("div > span")`,
			java:     `locator("div > span")`,
			csharp:   `Locator("div > span")`,
		},
		{
			name:     "xpath",
			selector: "//button[1]",
			js:       `locator('//button[1]')`,
			py:       `locator("//button[1]")`,
			java:     `locator("//button[1]")`,
			csharp:   `Locator("//button[1]")`,
		},
		{
			name:     "quoted_text_shorthand",
			selector: `"Submit"`,
			js:       `locator('text="Submit"')`,
			py:       `locator("text=\"Submit\"")`,
			java:     `locator("text=\"Submit\"")`,
			csharp:   `Locator("text=\"Submit\"")`,
		},
		{
			name:     "first",
			selector: "div >> nth=0",
			js:       `locator('div').first()`,
			py:       `locator("div").first`,
			java:     `locator("div").first()`,
			csharp:   `Locator("div").First`,
		},
		{
			name:     "last",
			selector: "div >> nth=-1",
			js:       `locator('div').last()`,
			py:       `locator("div").last`,
			java:     `locator("div").last()`,
			csharp:   `Locator("div").Last`,
		},
		{
			name:     "nth",
			selector: "div >> nth=2",
			js:       `locator('div').nth(2)`,
			py:       `locator("div").nth(2)`,
			java:     `locator("div").nth(2)`,
			csharp:   `Locator("div").Nth(2)`,
		},
		{
			name:     "visible",
			selector: "input >> visible=true",
			js:       `locator('input').filter({ visible: true })`,
			py:       `locator("input").filter(visible=True)`,
			java:     `locator("input").filter(new Locator.FilterOptions().setVisible(true))`,
			csharp:   `Locator("input").Filter(new() { Visible = true })`,
		},
		{
			name:     "hidden",
			selector: "input >> visible=false",
			js:       `locator('input').filter({ visible: false })`,
			py:       `locator("input").filter(visible=False)`,
			java:     `locator("input").filter(new Locator.FilterOptions().setVisible(false))`,
			csharp:   `Locator("input").Filter(new() { Visible = false })`,
		},
		{
			name:     "text",
			selector: `internal:text="Hello"i`,
			js:       `getByText('Hello')`,
			py:       `get_by_text("Hello")`,
			java:     `getByText("Hello")`,
			csharp:   `GetByText("Hello")`,
		},
		{
			name:     "text_exact",
			selector: `internal:text="Hello"s`,
			js:       `getByText('Hello', { exact: true })`,
			py:       `get_by_text("Hello", exact=True)`,
			java:     `getByText("Hello", new Page.GetByTextOptions().setExact(true))`,
			csharp:   `GetByText("Hello", new() { Exact = true })`,
		},
		{
			name:     "text_regex",
			selector: `internal:text=/^hello$/i`,
			js:       `getByText(/^hello$/i)`,
			py:       `get_by_text(re.compile(r"^hello$", re.IGNORECASE))`,
			java:     `getByText(Pattern.compile("^hello$", Pattern.CASE_INSENSITIVE))`,
			csharp:   `GetByText(new Regex("^hello$", RegexOptions.IgnoreCase))`,
		},
		{
			name:     "text_with_quote",
			selector: `internal:text="It's"i`,
			js:       `getByText('It\'s')`,
			py:       `get_by_text("It's")`,
			java:     `getByText("It's")`,
			csharp:   `GetByText("It's")`,
		},
		{
			name:     "label",
			selector: `internal:label="Password"i`,
			js:       `getByLabel('Password')`,
			py:       `get_by_label("Password")`,
			java:     `getByLabel("Password")`,
			csharp:   `GetByLabel("Password")`,
		},
		{
			name:     "role",
			selector: `internal:role=button`,
			js:       `getByRole('button')`,
			py:       `get_by_role("button")`,
			java:     `getByRole(AriaRole.BUTTON)`,
			csharp:   `GetByRole(AriaRole.Button)`,
		},
		{
			name:     "role_with_exact_name",
			selector: `internal:role=button[name="Submit"s][pressed=true]`,
			js:       `getByRole('button', { name: 'Submit', exact: true, pressed: true })`,
			py:       `get_by_role("button", name="Submit", exact=True, pressed=True)`,
			java:     `getByRole(AriaRole.BUTTON, new Page.GetByRoleOptions().setName("Submit").setExact(true).setPressed(true))`,
			csharp:   `GetByRole(AriaRole.Button, new() { Name = "Submit", Exact = true, Pressed = true })`,
		},
		{
			name:     "role_with_level",
			selector: `internal:role=heading[name="Title"i][level=2]`,
			js:       `getByRole('heading', { name: 'Title', level: 2 })`,
			py:       `get_by_role("heading", name="Title", level=2)`,
			java:     `getByRole(AriaRole.HEADING, new Page.GetByRoleOptions().setName("Title").setLevel(2))`,
			csharp:   `GetByRole(AriaRole.Heading, new() { Name = "Title", Level = 2 })`,
		},
		{
			name:     "role_with_regex_name",
			selector: `internal:role=button[name=/Sub.*/i]`,
			js:       `getByRole('button', { name: /Sub.*/i })`,
			py:       `get_by_role("button", name=re.compile(r"Sub.*", re.IGNORECASE))`,
			java:     `getByRole(AriaRole.BUTTON, new Page.GetByRoleOptions().setName(Pattern.compile("Sub.*", Pattern.CASE_INSENSITIVE)))`,
			csharp:   `GetByRole(AriaRole.Button, new() { NameRegex = new Regex("Sub.*", RegexOptions.IgnoreCase) })`,
		},
		{
			name:     "role_include_hidden",
			selector: `internal:role=listitem[include-hidden=true]`,
			js:       `getByRole('listitem', { includeHidden: true })`,
			py:       `get_by_role("listitem", include_hidden=True)`,
			java:     `getByRole(AriaRole.LISTITEM, new Page.GetByRoleOptions().setIncludeHidden(true))`,
			csharp:   `GetByRole(AriaRole.Listitem, new() { IncludeHidden = true })`,
		},
		{
			name:     "test_id",
			selector: `internal:testid=[data-testid="my id"s]`,
			js:       `getByTestId('my id')`,
			py:       `get_by_test_id("my id")`,
			java:     `getByTestId("my id")`,
			csharp:   `GetByTestId("my id")`,
		},
		{
			name:     "placeholder",
			selector: `internal:attr=[placeholder="Name"i]`,
			js:       `getByPlaceholder('Name')`,
			py:       `get_by_placeholder("Name")`,
			java:     `getByPlaceholder("Name")`,
			csharp:   `GetByPlaceholder("Name")`,
		},
		{
			name:     "alt_text_exact",
			selector: `internal:attr=[alt="Logo"s]`,
			js:       `getByAltText('Logo', { exact: true })`,
			py:       `get_by_alt_text("Logo", exact=True)`,
			java:     `getByAltText("Logo", new Page.GetByAltTextOptions().setExact(true))`,
			csharp:   `GetByAltText("Logo", new() { Exact = true })`,
		},
		{
			name:     "title",
			selector: `internal:attr=[title="Hint"i]`,
			js:       `getByTitle('Hint')`,
			py:       `get_by_title("Hint")`,
			java:     `getByTitle("Hint")`,
			csharp:   `GetByTitle("Hint")`,
		},
		{
			name:     "unknown_attr_stays_raw",
			selector: `internal:attr=[data-foo="bar"]`,
			js:       `locator('internal:attr=[data-foo="bar"]')`,
			py:       `locator("internal:attr=[data-foo=\"bar\"]")`,
			java:     `locator("internal:attr=[data-foo=\"bar\"]")`,
			csharp:   `Locator("internal:attr=[data-foo=\"bar\"]")`,
		},
		{
			name:     "has_text",
			selector: `div >> internal:has-text="Hello"i`,
			js:       `locator('div').filter({ hasText: 'Hello' })`,
			py:       `locator("div").filter(has_text="Hello")`,
			java:     `locator("div").filter(new Locator.FilterOptions().setHasText("Hello"))`,
			csharp:   `Locator("div").Filter(new() { HasText = "Hello" })`,
		},
		{
			name:     "has_text_regex",
			selector: `div >> internal:has-text=/hello/i`,
			js:       `locator('div').filter({ hasText: /hello/i })`,
			py:       `locator("div").filter(has_text=re.compile(r"hello", re.IGNORECASE))`,
			java:     `locator("div").filter(new Locator.FilterOptions().setHasText(Pattern.compile("hello", Pattern.CASE_INSENSITIVE)))`,
			csharp:   `Locator("div").Filter(new() { HasTextRegex = new Regex("hello", RegexOptions.IgnoreCase) })`,
		},
		{
			name:     "has_not_text",
			selector: `div >> internal:has-not-text="Bye"i`,
			js:       `locator('div').filter({ hasNotText: 'Bye' })`,
			py:       `locator("div").filter(has_not_text="Bye")`,
			java:     `locator("div").filter(new Locator.FilterOptions().setHasNotText("Bye"))`,
			csharp:   `Locator("div").Filter(new() { HasNotText = "Bye" })`,
		},
		{
			name:     "exact_has_text_stays_raw",
			selector: `div >> internal:has-text="Hello"s`,
			js:       `locator('div').locator('internal:has-text="Hello"s')`,
			py:       `locator("div").locator("internal:has-text=\"Hello\"s")`,
			java:     `locator("div").locator("internal:has-text=\"Hello\"s")`,
			csharp:   `Locator("div").Locator("internal:has-text=\"Hello\"s")`,
		},
		{
			name:     "has",
			selector: `div >> internal:has="span >> nth=1"`,
			js:       `locator('div').filter({ has: locator('span').nth(1) })`,
			py:       `locator("div").filter(has=locator("span").nth(1))`,
			java:     `locator("div").filter(new Locator.FilterOptions().setHas(locator("span").nth(1)))`,
			csharp:   `Locator("div").Filter(new() { Has = Locator("span").Nth(1) })`,
		},
		{
			name:     "has_not",
			selector: `div >> internal:has-not="span"`,
			js:       `locator('div').filter({ hasNot: locator('span') })`,
			py:       `locator("div").filter(has_not=locator("span"))`,
			java:     `locator("div").filter(new Locator.FilterOptions().setHasNot(locator("span")))`,
			csharp:   `Locator("div").Filter(new() { HasNot = Locator("span") })`,
		},
		{
			name:     "and",
			selector: `div >> internal:and="internal:role=button"`,
			js:       `locator('div').and(getByRole('button'))`,
			py:       `locator("div").and_(get_by_role("button"))`,
			java:     `locator("div").and(getByRole(AriaRole.BUTTON))`,
			csharp:   `Locator("div").And(GetByRole(AriaRole.Button))`,
		},
		{
			name:     "or",
			selector: `div >> internal:or="span"`,
			js:       `locator('div').or(locator('span'))`,
			py:       `locator("div").or_(locator("span"))`,
			java:     `locator("div").or(locator("span"))`,
			csharp:   `Locator("div").Or(Locator("span"))`,
		},
		{
			name:     "chain",
			selector: `div >> internal:chain="span >> p"`,
			js:       `locator('div').locator(locator('span').locator('p'))`,
			py:       `locator("div").locator(locator("span").locator("p"))`,
			java:     `locator("div").locator(locator("span").locator("p"))`,
			csharp:   `Locator("div").Locator(Locator("span").Locator("p"))`,
		},
		{
			name:     "nested_filter_keeps_locator_receiver",
			selector: `div >> internal:has="span >> internal:has-text=\"x\"i"`,
			js:       `locator('div').filter({ has: locator('span').filter({ hasText: 'x' }) })`,
			py:       `locator("div").filter(has=locator("span").filter(has_text="x"))`,
			java:     `locator("div").filter(new Locator.FilterOptions().setHas(locator("span").filter(new Locator.FilterOptions().setHasText("x"))))`,
			csharp:   `Locator("div").Filter(new() { Has = Locator("span").Filter(new() { HasText = "x" }) })`,
		},
		{
			name:     "frame",
			selector: "iframe >> internal:control=enter-frame >> text=Hello",
			js:       `frameLocator('iframe').locator('text=Hello')`,
			py:       `frame_locator("iframe").locator("text=Hello")`,
			java:     `frameLocator("iframe").locator("text=Hello")`,
			csharp:   `FrameLocator("iframe").Locator("text=Hello")`,
		},
		{
			name:     "frame_receiver_carries_over",
			selector: `#frame >> internal:control=enter-frame >> internal:role=button[name="Go"]`,
			js:       `frameLocator('#frame').getByRole('button', { name: 'Go', exact: true })`,
			py:       `frame_locator("#frame").get_by_role("button", name="Go", exact=True)`,
			java:     `frameLocator("#frame").getByRole(AriaRole.BUTTON, new FrameLocator.GetByRoleOptions().setName("Go").setExact(true))`,
			csharp:   `FrameLocator("#frame").GetByRole(AriaRole.Button, new() { Name = "Go", Exact = true })`,
		},
		{
			name:     "content_frame",
			selector: "internal:role=button >> internal:control=enter-frame",
			js:       `getByRole('button').contentFrame()`,
			py:       `get_by_role("button").content_frame`,
			java:     `getByRole(AriaRole.BUTTON).contentFrame()`,
			csharp:   `GetByRole(AriaRole.Button).ContentFrame`,
		},
		{
			name:     "indexed_frame",
			selector: "iframe >> nth=0 >> internal:control=enter-frame",
			js:       `frameLocator('iframe').first()`,
			py:       `frame_locator("iframe").first`,
			java:     `frameLocator("iframe").first()`,
			csharp:   `FrameLocator("iframe").First`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			want := map[Language]string{
				JavaScript: tt.js,
				Python:     tt.py,
				Java:       tt.java,
				CSharp:     tt.csharp,
			}
			for _, lang := range Languages() {
				got, err := Translate(lang, tt.selector, nil)
				require.NoError(t, err, "language %s", lang)
				assert.Equal(t, want[lang], got, "language %s", lang)
			}
		})
	}
}

// The frame context changes the receiver the first call applies to, which
// only shows up in languages that name the receiver type.
func TestTranslateFrameContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang Language
		want string
	}{
		{Java, `getByText("foo", new FrameLocator.GetByTextOptions().setExact(true))`},
		{JavaScript, `getByText('foo', { exact: true })`},
		{Python, `get_by_text("foo", exact=True)`},
		{CSharp, `GetByText("foo", new() { Exact = true })`},
	}

	for _, tt := range tests {
		got, err := Translate(tt.lang, `internal:text="foo"s`, &TranslateOptions{FrameContext: true})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "language %s", tt.lang)
	}
}

func TestTranslateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		selector string
	}{
		{name: "empty", selector: ""},
		{name: "composite_without_inner", selector: "internal:has=notjson"},
		{name: "frame_inside_composite", selector: `internal:has="iframe >> internal:control=enter-frame"`},
		{name: "malformed_text_fragment", selector: `internal:text=broken"`},
		{name: "unterminated_attribute_value", selector: `internal:role=button[name="x]`},
		{name: "capture_used_twice", selector: "*css=div >> *css=span"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, lang := range Languages() {
				_, err := Translate(lang, tt.selector, nil)
				require.ErrorIs(t, err, selector.ErrInvalidSelector, "language %s", lang)
			}
		})
	}
}

func TestTranslateTolerant(t *testing.T) {
	t.Parallel()

	// Parse error and render error both fall back to the source text.
	for _, src := range []string{"internal:has=notjson", `internal:text=broken"`} {
		for _, lang := range Languages() {
			got, err := Translate(lang, src, &TranslateOptions{Tolerant: true})
			require.NoError(t, err, "language %s", lang)
			assert.Equal(t, src, got, "language %s", lang)
		}
	}

	// Valid selectors still translate.
	got, err := Translate(JavaScript, "div", &TranslateOptions{Tolerant: true})
	require.NoError(t, err)
	assert.Equal(t, `locator('div')`, got)
}

func TestTranslateTolerantLogsWarning(t *testing.T) {
	t.Parallel()

	base, hook := logtest.NewNullLogger()
	base.SetLevel(logrus.WarnLevel)

	gen, err := New(Python, log.New(base, false, nil))
	require.NoError(t, err)

	const src = `internal:text=broken"`
	got, err := gen.Translate(src, &TranslateOptions{Tolerant: true})
	require.NoError(t, err)
	assert.Equal(t, src, got)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "keeping selector")
}

// Generated JavaScript has to be real JavaScript: prefixing the chain with
// a receiver forms a full expression the parser must accept.
func TestTranslateEmitsParsableJavaScript(t *testing.T) {
	t.Parallel()

	selectors := []string{
		"div > span",
		"//button[1]",
		`"Submit"`,
		"div >> nth=2",
		"input >> visible=true",
		`internal:text="It's"i`,
		`internal:text=/^hello$/i`,
		`internal:label="Password"i`,
		`internal:role=button[name="Submit"s][pressed=true][level=3]`,
		`internal:role=button[name=/Sub.*/i]`,
		`internal:testid=[data-testid="my id"s]`,
		`internal:attr=[placeholder="Name"i]`,
		`internal:attr=[data-foo="bar"]`,
		`div >> internal:has-text="Hello"i`,
		`div >> internal:has="span >> internal:has-text=\"x\"i"`,
		`div >> internal:or="span"`,
		`div >> internal:chain="span >> p"`,
		"iframe >> internal:control=enter-frame >> text=Hello",
		"internal:role=button >> internal:control=enter-frame",
		"iframe >> nth=0 >> internal:control=enter-frame",
	}

	for _, src := range selectors {
		src := src
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			out, err := Translate(JavaScript, src, nil)
			require.NoError(t, err)

			_, err = parser.ParseFile(nil, "locator.js", "page."+out, 0)
			require.NoError(t, err, "generated code %q", out)
		})
	}
}
