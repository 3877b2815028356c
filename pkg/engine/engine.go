// Package engine provides the parameter-script engine for Forma.
// It wraps zygomys in a sandboxed environment and produces built
// assemblies from user source code such as:
//
//	(radial-frame :arm-length 100 :arm-width 10 :body-size 60
//	              :mount-diameter 10 :arms 4)
//	(text-plaque :text "Hi" :font "Go Regular" :size 10
//	             :height 5 :thickness 2)
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/forma/pkg/csg"
	"github.com/chazu/forma/pkg/typeface"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or an invalid parameter in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result collects the assemblies a script produced, in evaluation order.
type Result struct {
	Assemblies []*csg.Assembly
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each call to Evaluate creates a fresh sandboxed environment for
// determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	fonts      *typeface.Registry
}

// NewEngine creates a new Engine. A nil registry means the default
// embedded faces.
func NewEngine(fonts *typeface.Registry) *Engine {
	if fonts == nil {
		fonts = typeface.Default()
	}
	return &Engine{fonts: fonts}
}

// Evaluate runs a parameter script and returns the assemblies it built.
//
// Return semantics:
//   - On success: returns result + nil errors + nil error
//   - On parse/eval failure: returns nil result + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalOutcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalOutcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := e.evaluate(source)
		ch <- evalOutcome{result: res, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Result, []EvalError, error) {
	// Empty source is a valid program that produces no assemblies.
	if strings.TrimSpace(source) == "" {
		return &Result{}, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or
	// syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	res := &Result{}
	registerBuiltins(env, res, e.fonts)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	if _, err = env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	return res, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers from the message when present.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, pat := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := pat.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
