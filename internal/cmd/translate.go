package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tidwall/gjson"

	"github.com/igaisin/playwright/cmd/state"
	"github.com/igaisin/playwright/errext"
	"github.com/igaisin/playwright/errext/exitcodes"
	"github.com/igaisin/playwright/locatorgen"
	"github.com/igaisin/playwright/log"
)

// cmdTranslate handles the `playwright translate` sub-command.
type cmdTranslate struct {
	gs *state.GlobalState

	input  string
	output string
	jsonIn bool
}

// translateRequest is a single selector together with the options resolved
// for it. Requests coming from --json can override the command-wide options
// per selector.
type translateRequest struct {
	source string
	lang   locatorgen.Language
	opts   locatorgen.TranslateOptions
}

func (c *cmdTranslate) flagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.StringP("lang", "l", string(locatorgen.JavaScript),
		fmt.Sprintf("target language (choices: %s)", languageNames()))
	flags.Bool("frame", false, "generate calls for a frame locator receiver")
	flags.Bool("tolerant", false, "keep selectors that cannot be translated as they are instead of failing")
	flags.StringVarP(&c.input, "input", "i", "", "read selectors from the given file, one per line, or from stdin with '-'")
	flags.StringVarP(&c.output, "output", "O", "", "write the generated locators to the given file instead of stdout")
	flags.BoolVar(&c.jsonIn, "json", false, "treat every selector as a JSON request object, e.g. {\"selector\":\"div\",\"lang\":\"java\"}")
	return flags
}

func (c *cmdTranslate) run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && c.input == "" {
		return errors.New("nothing to translate, pass a selector argument or use --input")
	}

	conf, err := getConsolidatedConfig(c.gs, getConfig(cmd.Flags()))
	if err != nil {
		return err
	}
	lang, err := locatorgen.ParseLanguage(conf.Lang.String)
	if err != nil {
		err = errext.WithHint(err, fmt.Sprintf("run '%s languages' to list the supported targets", c.gs.BinaryName))
		return errext.WithExitCodeIfNone(err, exitcodes.InvalidConfig)
	}
	defaults := translateRequest{
		lang: lang,
		opts: locatorgen.TranslateOptions{
			FrameContext: conf.Frame.Bool,
			Tolerant:     conf.Tolerant.Bool,
		},
	}

	stopSignals := handleAbortSignals(c.gs, func(sig os.Signal) {
		c.gs.Logger.Debugf("Signal '%s' received, aborting", sig)
		c.gs.OSExit(int(exitcodes.ExternalAbort))
	})
	defer stopSignals()

	sources := args
	if c.input != "" {
		fromInput, err := c.readSources()
		if err != nil {
			return fmt.Errorf("could not read selectors from '%s': %w", c.input, err)
		}
		sources = append(sources, fromInput...)
	}

	requests := make([]translateRequest, 0, len(sources))
	for _, source := range sources {
		req := defaults
		if c.jsonIn {
			if req, err = parseJSONRequest(source, defaults); err != nil {
				return errext.WithExitCodeIfNone(err, exitcodes.InvalidConfig)
			}
		} else {
			req.source = source
		}
		requests = append(requests, req)
	}

	logger := log.New(c.gs.Logger, false, nil)
	generators := make(map[locatorgen.Language]*locatorgen.Generator, 1)
	results := make([]string, 0, len(requests))
	for _, req := range requests {
		gen, ok := generators[req.lang]
		if !ok {
			if gen, err = locatorgen.New(req.lang, logger); err != nil {
				return errext.WithExitCodeIfNone(err, exitcodes.InvalidConfig)
			}
			generators[req.lang] = gen
		}

		result, err := gen.Translate(req.source, &req.opts)
		if err != nil {
			return errext.WithExitCodeIfNone(err, exitcodes.InvalidSelector)
		}
		results = append(results, result)
	}

	return c.writeResults(results)
}

// readSources reads one selector per line from the input file, or from
// stdin when the file is '-'. Blank lines are skipped; there is no comment
// syntax because '#' and '//' both start valid selectors.
func (c *cmdTranslate) readSources() ([]string, error) {
	var reader io.Reader = c.gs.Stdin
	if c.input != "-" {
		file, err := c.gs.FS.Open(c.input)
		if err != nil {
			return nil, err
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				c.gs.Logger.WithError(cerr).Warnf("could not close '%s'", c.input)
			}
		}()
		reader = file
	}

	var sources []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		sources = append(sources, line)
	}
	return sources, scanner.Err()
}

func (c *cmdTranslate) writeResults(results []string) error {
	content := strings.Join(results, "\n") + "\n"
	if c.output == "" || c.output == "-" {
		printToStdout(c.gs, content)
		return nil
	}

	file, err := c.gs.FS.Create(c.output)
	if err != nil {
		return err
	}
	if _, err := file.WriteString(content); err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	if !c.gs.Flags.Quiet {
		printToStdout(c.gs, fmt.Sprintf("Wrote %d locator(s) to %s\n", len(results), c.output))
	}
	return nil
}

// parseJSONRequest resolves a {"selector": ..., "lang": ..., "frame": ...,
// "tolerant": ...} request object, falling back to the command-wide options
// for fields the object leaves out.
func parseJSONRequest(raw string, defaults translateRequest) (translateRequest, error) {
	if !gjson.Valid(raw) {
		return defaults, fmt.Errorf("invalid JSON request '%s'", raw)
	}
	obj := gjson.Parse(raw)

	selector := obj.Get("selector")
	if !selector.Exists() {
		return defaults, fmt.Errorf("JSON request '%s' has no selector field", raw)
	}

	req := defaults
	req.source = selector.String()
	if v := obj.Get("lang"); v.Exists() {
		lang, err := locatorgen.ParseLanguage(v.String())
		if err != nil {
			return defaults, err
		}
		req.lang = lang
	}
	if v := obj.Get("frame"); v.Exists() {
		req.opts.FrameContext = v.Bool()
	}
	if v := obj.Get("tolerant"); v.Exists() {
		req.opts.Tolerant = v.Bool()
	}
	return req, nil
}

func languageNames() string {
	languages := locatorgen.Languages()
	names := make([]string, len(languages))
	for i, lang := range languages {
		names[i] = string(lang)
	}
	return strings.Join(names, ", ")
}

func getCmdTranslate(gs *state.GlobalState) *cobra.Command {
	c := &cmdTranslate{gs: gs}

	exampleText := getExampleText(gs, `
  # Translate a selector into a JavaScript locator chain
  $ {{.}} translate 'internal:role=button[name="Submit"]'

  # Translate several selectors for Python
  $ {{.}} translate -l python 'text=Sign in' '#password >> visible=true'

  # Read selectors from a file, one per line, and write Java code to a file
  $ {{.}} translate --lang java --input selectors.txt --output Locators.java

  # Read selectors from stdin
  $ cat selectors.txt | {{.}} translate -i -

  # Batch requests as JSON objects, each with its own options
  $ {{.}} translate --json '{"selector":"div >> nth=0","lang":"csharp"}'`[1:])

	translateCmd := &cobra.Command{
		Use:   "translate [selector]...",
		Short: "Translate selectors into locator code",
		Long: `Translate selectors into locator call chains for one of the supported
target languages: ` + languageNames() + `.

Selectors can be passed as arguments, read from a file or from stdin. Every
selector becomes one line of generated code, in input order.`,
		Example: exampleText,
		Args:    cobra.ArbitraryArgs,
		RunE:    c.run,
	}

	translateCmd.Flags().AddFlagSet(c.flagSet())
	must(cobra.MarkFlagFilename(translateCmd.Flags(), "input"))
	must(cobra.MarkFlagFilename(translateCmd.Flags(), "output"))

	return translateCmd
}
