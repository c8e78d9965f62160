package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"mite/interpreter-go/pkg/interpreter"
	"mite/interpreter-go/pkg/lexer"
	"mite/interpreter-go/pkg/parser"
	"mite/interpreter-go/pkg/runtime"
)

// Fixture is one scripted scenario: a source program plus the outcome it must
// produce. Fixture files are YAML; one file may hold several fixtures as
// separate documents.
type Fixture struct {
	Path        string
	Description string
	Source      string
	Expect      Expectation
}

// Expectation describes the required outcome. Result and Error are mutually
// exclusive; Stdout applies in either case and, when present, must match the
// printed lines exactly.
type Expectation struct {
	Result *ResultSpec
	Stdout []string
	Error  *ErrorSpec
}

// ResultSpec pins the kind and display form of the final value.
type ResultSpec struct {
	Kind  string
	Value string
}

// ErrorSpec pins the failure class and, optionally, a message fragment.
// Code is a runtime error code, or "ParseError"/"LexError" for front-end
// failures.
type ErrorSpec struct {
	Code     string
	Contains string
}

// ValidationError aggregates fixture validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("fixture ")
	b.WriteString(e.Path)
	b.WriteString(" invalid:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// ErrNoFixtures reports a discovery root with no fixture files under it.
var ErrNoFixtures = errors.New("fixture: no fixture files found")

var knownKinds = map[string]bool{
	"bool":            true,
	"nil":             true,
	"integer":         true,
	"float":           true,
	"array":           true,
	"function":        true,
	"native_function": true,
}

var knownErrorCodes = map[string]bool{
	"LexError":   true,
	"ParseError": true,
	string(runtime.UndefinedVariable):     true,
	string(runtime.UnknownFunction):       true,
	string(runtime.ArityMismatch):         true,
	string(runtime.NonIntegerIndex):       true,
	string(runtime.IndexOutOfRange):       true,
	string(runtime.UnsupportedOperator):   true,
	string(runtime.UnsupportedNode):       true,
	string(runtime.InvalidCondition):      true,
	string(runtime.InvalidOperand):        true,
	string(runtime.DivisionByZero):        true,
	string(runtime.ReturnOutsideFunction): true,
}

type fixtureFile struct {
	Description string          `yaml:"description"`
	Source      string          `yaml:"source"`
	Expect      expectationFile `yaml:"expect"`
}

type expectationFile struct {
	Result *resultSpecFile `yaml:"result"`
	Stdout []string        `yaml:"stdout"`
	Error  *errorSpecFile  `yaml:"error"`
}

type resultSpecFile struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

type errorSpecFile struct {
	Code     string `yaml:"code"`
	Contains string `yaml:"contains"`
}

// Load parses every fixture document in one YAML file.
func Load(path string) ([]*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var fixtures []*Fixture
	for {
		var raw fixtureFile
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("fixture: parse %s: %w", path, err)
		}
		fixture := raw.toFixture(path)
		if err := fixture.validate(); err != nil {
			return nil, err
		}
		fixtures = append(fixtures, fixture)
	}
	if len(fixtures) == 0 {
		return nil, fmt.Errorf("fixture: %s is empty", path)
	}
	return fixtures, nil
}

// Discover walks root and loads every .yaml/.yml file under it, in lexical
// order. A root with no fixture files yields ErrNoFixtures.
func Discover(root string) ([]*Fixture, error) {
	var fixtures []*Fixture
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
		default:
			return nil
		}
		loaded, err := Load(path)
		if err != nil {
			return err
		}
		fixtures = append(fixtures, loaded...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(fixtures) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoFixtures, root)
	}
	return fixtures, nil
}

func (raw fixtureFile) toFixture(path string) *Fixture {
	fixture := &Fixture{
		Path:        path,
		Description: raw.Description,
		Source:      raw.Source,
	}
	if raw.Expect.Result != nil {
		fixture.Expect.Result = &ResultSpec{Kind: raw.Expect.Result.Kind, Value: raw.Expect.Result.Value}
	}
	fixture.Expect.Stdout = raw.Expect.Stdout
	if raw.Expect.Error != nil {
		fixture.Expect.Error = &ErrorSpec{Code: raw.Expect.Error.Code, Contains: raw.Expect.Error.Contains}
	}
	return fixture
}

func (f *Fixture) validate() error {
	var issues []string
	if strings.TrimSpace(f.Description) == "" {
		issues = append(issues, "description must be provided")
	}
	if strings.TrimSpace(f.Source) == "" {
		issues = append(issues, "source must be provided")
	}
	if f.Expect.Result == nil && f.Expect.Stdout == nil && f.Expect.Error == nil {
		issues = append(issues, "expect must name a result, stdout, or error")
	}
	if f.Expect.Result != nil && f.Expect.Error != nil {
		issues = append(issues, "expect.result and expect.error are mutually exclusive")
	}
	if f.Expect.Result != nil && !knownKinds[f.Expect.Result.Kind] {
		issues = append(issues, fmt.Sprintf("expect.result.kind %q is not a value kind", f.Expect.Result.Kind))
	}
	if f.Expect.Error != nil && !knownErrorCodes[f.Expect.Error.Code] {
		issues = append(issues, fmt.Sprintf("expect.error.code %q is not an error code", f.Expect.Error.Code))
	}
	if len(issues) > 0 {
		return &ValidationError{Path: f.Path, Issues: issues}
	}
	return nil
}

// Run executes the fixture and returns nil on a match, or an error naming the
// first mismatch.
func (f *Fixture) Run() error {
	var out bytes.Buffer
	node, err := parser.Parse(f.Source)
	if err != nil {
		return f.matchFailure(err, out.String())
	}
	val, err := interpreter.NewWithOutput(&out).Evaluate(node)
	if err != nil {
		return f.matchFailure(err, out.String())
	}
	if f.Expect.Error != nil {
		return fmt.Errorf("expected %s error, got %s %s", f.Expect.Error.Code, val.Kind(), runtime.FormatValue(val))
	}
	if spec := f.Expect.Result; spec != nil {
		if got := val.Kind().String(); got != spec.Kind {
			return fmt.Errorf("expected %s result, got %s %s", spec.Kind, got, runtime.FormatValue(val))
		}
		if spec.Value != "" {
			if got := runtime.FormatValue(val); got != spec.Value {
				return fmt.Errorf("expected value %s, got %s", spec.Value, got)
			}
		}
	}
	return f.matchStdout(out.String())
}

func (f *Fixture) matchFailure(err error, out string) error {
	spec := f.Expect.Error
	if spec == nil {
		return fmt.Errorf("unexpected error: %v", err)
	}
	if code := errorCode(err); code != spec.Code {
		return fmt.Errorf("expected %s error, got %s: %v", spec.Code, code, err)
	}
	if spec.Contains != "" && !strings.Contains(err.Error(), spec.Contains) {
		return fmt.Errorf("error %q does not contain %q", err.Error(), spec.Contains)
	}
	return f.matchStdout(out)
}

func (f *Fixture) matchStdout(out string) error {
	if f.Expect.Stdout == nil {
		return nil
	}
	var got []string
	if out != "" {
		got = strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	}
	if len(got) != len(f.Expect.Stdout) {
		return fmt.Errorf("expected %d output lines, got %d: %q", len(f.Expect.Stdout), len(got), out)
	}
	for idx, want := range f.Expect.Stdout {
		if got[idx] != want {
			return fmt.Errorf("output line %d: expected %q, got %q", idx+1, want, got[idx])
		}
	}
	return nil
}

func errorCode(err error) string {
	var lerr *lexer.LexError
	var perr *parser.ParseError
	var rerr *runtime.Error
	switch {
	case errors.As(err, &lerr):
		return "LexError"
	case errors.As(err, &perr):
		return "ParseError"
	case errors.As(err, &rerr):
		return string(rerr.Code)
	default:
		return ""
	}
}
