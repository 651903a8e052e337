package cmd

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igaisin/playwright/errext/exitcodes"
	"github.com/igaisin/playwright/internal/cmd/tests"
	"github.com/igaisin/playwright/internal/lib/testutils"
)

func TestTranslateCommandDefaults(t *testing.T) {
	t.Parallel()

	ts := tests.NewGlobalTestState(t)
	ts.CmdArgs = []string{"playwright", "translate", "#load-more", "div >> nth=0"}
	newRootCommand(ts.GlobalState).execute()

	assert.Equal(t, "locator('#load-more')\nlocator('div').first()\n", ts.Stdout.String())
}

func TestTranslateCommandLang(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		lang     string
		expected string
	}{
		{lang: "javascript", expected: "locator('#load-more')\n"},
		{lang: "js", expected: "locator('#load-more')\n"},
		{lang: "python", expected: "locator(\"#load-more\")\n"},
		{lang: "py", expected: "locator(\"#load-more\")\n"},
		{lang: "java", expected: "locator(\"#load-more\")\n"},
		{lang: "csharp", expected: "Locator(\"#load-more\")\n"},
		{lang: "c#", expected: "Locator(\"#load-more\")\n"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.lang, func(t *testing.T) {
			t.Parallel()

			ts := tests.NewGlobalTestState(t)
			ts.CmdArgs = []string{"playwright", "translate", "--lang", tc.lang, "#load-more"}
			newRootCommand(ts.GlobalState).execute()

			assert.Equal(t, tc.expected, ts.Stdout.String())
		})
	}
}

func TestTranslateCommandLangFromEnv(t *testing.T) {
	t.Parallel()

	ts := tests.NewGlobalTestState(t)
	ts.Env["PLAYWRIGHT_LANG"] = "python"
	ts.CmdArgs = []string{"playwright", "translate", "#load-more"}
	newRootCommand(ts.GlobalState).execute()

	assert.Equal(t, "locator(\"#load-more\")\n", ts.Stdout.String())
}

func TestTranslateCommandLangFlagWinsOverEnv(t *testing.T) {
	t.Parallel()

	ts := tests.NewGlobalTestState(t)
	ts.Env["PLAYWRIGHT_LANG"] = "python"
	ts.CmdArgs = []string{"playwright", "translate", "--lang", "csharp", "#load-more"}
	newRootCommand(ts.GlobalState).execute()

	assert.Equal(t, "Locator(\"#load-more\")\n", ts.Stdout.String())
}

func TestTranslateCommandUnsupportedLang(t *testing.T) {
	t.Parallel()

	ts := tests.NewGlobalTestState(t)
	ts.CmdArgs = []string{"playwright", "translate", "--lang", "rust", "#load-more"}
	ts.ExpectedExitCode = int(exitcodes.InvalidConfig)
	newRootCommand(ts.GlobalState).execute()

	logMsgs := ts.LoggerHook.Drain()
	assert.True(t, testutils.LogContains(logMsgs, logrus.ErrorLevel, `unsupported language "rust"`))
	assert.Empty(t, ts.Stdout.String())
}

func TestTranslateCommandNothingToTranslate(t *testing.T) {
	t.Parallel()

	ts := tests.NewGlobalTestState(t)
	ts.CmdArgs = []string{"playwright", "translate"}
	ts.ExpectedExitCode = -1
	newRootCommand(ts.GlobalState).execute()

	logMsgs := ts.LoggerHook.Drain()
	assert.True(t, testutils.LogContains(logMsgs, logrus.ErrorLevel, "nothing to translate"))
}

func TestTranslateCommandInputFile(t *testing.T) {
	t.Parallel()

	ts := tests.NewGlobalTestState(t)
	input := "div.card >> nth=-1\n\n   \ninternal:testid=[data-testid=\"directions\"s]\n"
	require.NoError(t, afero.WriteFile(ts.FS, ts.Cwd+"selectors.txt", []byte(input), 0o644))

	ts.CmdArgs = []string{"playwright", "translate", "--input", ts.Cwd + "selectors.txt"}
	newRootCommand(ts.GlobalState).execute()

	assert.Equal(t, "locator('div.card').last()\ngetByTestId('directions')\n", ts.Stdout.String())
}

func TestTranslateCommandMissingInputFile(t *testing.T) {
	t.Parallel()

	ts := tests.NewGlobalTestState(t)
	ts.CmdArgs = []string{"playwright", "translate", "-i", "/test/nope.txt"}
	ts.ExpectedExitCode = -1
	newRootCommand(ts.GlobalState).execute()

	logMsgs := ts.LoggerHook.Drain()
	assert.True(t, testutils.LogContains(logMsgs, logrus.ErrorLevel, "could not read selectors from '/test/nope.txt'"))
}

func TestTranslateCommandOutputFile(t *testing.T) {
	t.Parallel()

	ts := tests.NewGlobalTestState(t)
	ts.CmdArgs = []string{
		"playwright", "translate", "-l", "java", "-O", ts.Cwd + "Locators.java",
		"#one", "#two",
	}
	newRootCommand(ts.GlobalState).execute()

	content, err := afero.ReadFile(ts.FS, ts.Cwd+"Locators.java")
	require.NoError(t, err)
	assert.Equal(t, "locator(\"#one\")\nlocator(\"#two\")\n", string(content))
	assert.Equal(t, "Wrote 2 locator(s) to "+ts.Cwd+"Locators.java\n", ts.Stdout.String())
}

func TestTranslateCommandOutputFileQuiet(t *testing.T) {
	t.Parallel()

	ts := tests.NewGlobalTestState(t)
	ts.CmdArgs = []string{"playwright", "--quiet", "translate", "-O", ts.Cwd + "out.js", "#one"}
	newRootCommand(ts.GlobalState).execute()

	content, err := afero.ReadFile(ts.FS, ts.Cwd+"out.js")
	require.NoError(t, err)
	assert.Equal(t, "locator('#one')\n", string(content))
	assert.Empty(t, ts.Stdout.String())
}

func TestTranslateCommandJSONRequests(t *testing.T) {
	t.Parallel()

	ts := tests.NewGlobalTestState(t)
	ts.CmdArgs = []string{
		"playwright", "translate", "--json",
		`{"selector":"#load-more"}`,
		`{"selector":"#load-more","lang":"python"}`,
		`{"selector":"iframe >> internal:control=enter-frame >> #ok","lang":"csharp"}`,
	}
	newRootCommand(ts.GlobalState).execute()

	expected := "locator('#load-more')\n" +
		"locator(\"#load-more\")\n" +
		"FrameLocator(\"iframe\").Locator(\"#ok\")\n"
	assert.Equal(t, expected, ts.Stdout.String())
}

func TestTranslateCommandJSONRequestErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		request string
		wantLog string
	}{
		{
			name:    "invalid json",
			request: `{"selector":`,
			wantLog: "invalid JSON request",
		},
		{
			name:    "no selector",
			request: `{"lang":"python"}`,
			wantLog: "has no selector field",
		},
		{
			name:    "bad lang override",
			request: `{"selector":"#x","lang":"perl"}`,
			wantLog: `unsupported language "perl"`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ts := tests.NewGlobalTestState(t)
			ts.CmdArgs = []string{"playwright", "translate", "--json", tc.request}
			ts.ExpectedExitCode = int(exitcodes.InvalidConfig)
			newRootCommand(ts.GlobalState).execute()

			logMsgs := ts.LoggerHook.Drain()
			assert.True(t, testutils.LogContains(logMsgs, logrus.ErrorLevel, tc.wantLog))
		})
	}
}

func TestTranslateCommandInvalidSelector(t *testing.T) {
	t.Parallel()

	ts := tests.NewGlobalTestState(t)
	ts.CmdArgs = []string{"playwright", "translate", `internal:text=broken"`}
	ts.ExpectedExitCode = int(exitcodes.InvalidSelector)
	newRootCommand(ts.GlobalState).execute()

	logMsgs := ts.LoggerHook.Drain()
	assert.True(t, testutils.LogContains(logMsgs, logrus.ErrorLevel, "malformed text fragment"))
	assert.Empty(t, ts.Stdout.String())
}

func TestTranslateCommandTolerant(t *testing.T) {
	t.Parallel()

	ts := tests.NewGlobalTestState(t)
	ts.CmdArgs = []string{"playwright", "translate", "--tolerant", `internal:text=broken"`, "#ok"}
	newRootCommand(ts.GlobalState).execute()

	assert.Equal(t, "internal:text=broken\"\nlocator('#ok')\n", ts.Stdout.String())

	logMsgs := ts.LoggerHook.Drain()
	assert.True(t, testutils.LogContains(logMsgs, logrus.WarnLevel, "keeping selector"))
}

func TestTranslateCommandFrameReceiver(t *testing.T) {
	t.Parallel()

	ts := tests.NewGlobalTestState(t)
	ts.CmdArgs = []string{
		"playwright", "translate", "--frame", "-l", "java", `internal:text="Pick a date"`,
	}
	newRootCommand(ts.GlobalState).execute()

	assert.Equal(t,
		"getByText(\"Pick a date\", new FrameLocator.GetByTextOptions().setExact(true))\n",
		ts.Stdout.String(),
	)
}
