package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/forma/pkg/builder"
	"github.com/chazu/forma/pkg/csg"
	"github.com/chazu/forma/pkg/typeface"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Forma script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: radial-frame -> radial_frame
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Copy double-quoted string literals untouched.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters (not a
		// minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a keyword argument list.
type kwArgs struct {
	kw map[string]zygo.Sexp
}

// parseArgs collects keyword/value pairs from a builtin's argument list.
// Keywords are identified by the __kw_ prefix added during preprocessing;
// keyword names keep their kebab form (e.g. "arm-length").
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok && i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
			continue
		}
		i++
	}
	return result
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// floatArg overwrites *dst when the keyword is present.
func floatArg(pa kwArgs, name string, dst *float64) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

// ---------------------------------------------------------------------------
// Assembly references
// ---------------------------------------------------------------------------

// sexpAssembly wraps a built assembly so scripts can hold a reference to it.
type sexpAssembly struct {
	asm *csg.Assembly
}

func (a *sexpAssembly) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(assembly %q :leaves %d)", a.asm.Name, len(csg.Leaves(a.asm.Root)))
}
func (a *sexpAssembly) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the Forma generator forms into a zygomys
// environment. Each successful form appends its assembly to res.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, res *Result, fonts *typeface.Registry) {

	// -----------------------------------------------------------------------
	// (radial-frame :arm-length 100 :arm-width 10 :body-size 60
	//               :mount-diameter 10 :arms 4
	//               [:body-height H :arm-height H :mount-height H])
	// -----------------------------------------------------------------------
	env.AddFunction("radial_frame", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := builder.DefaultRadialFrameParams()

		for _, f := range []struct {
			kw  string
			dst *float64
		}{
			{"arm-length", &p.ArmLength},
			{"arm-width", &p.ArmWidth},
			{"body-size", &p.BodySize},
			{"mount-diameter", &p.MountDiameter},
			{"body-height", &p.BodyHeight},
			{"arm-height", &p.ArmHeight},
			{"mount-height", &p.MountHeight},
		} {
			if err := floatArg(pa, f.kw, f.dst); err != nil {
				return zygo.SexpNull, fmt.Errorf("radial-frame: %w", err)
			}
		}
		if v, ok := pa.kw["arms"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("radial-frame: arms: %w", err)
			}
			p.SymmetryCount = n
		}

		asm, err := builder.BuildRadialFrame(p)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("radial-frame: %w", err)
		}
		res.Assemblies = append(res.Assemblies, asm)
		return &sexpAssembly{asm: asm}, nil
	})

	// -----------------------------------------------------------------------
	// (text-plaque :text "Hi" :font "Go Regular" :size 10 :height 5
	//              :thickness 2 [:width-factor 0.6])
	// -----------------------------------------------------------------------
	env.AddFunction("text_plaque", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := builder.DefaultTextPlaqueParams()

		if v, ok := pa.kw["text"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("text-plaque: text: %w", err)
			}
			p.Text = s
		}
		if v, ok := pa.kw["font"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("text-plaque: font: %w", err)
			}
			p.Font = s
		}
		for _, f := range []struct {
			kw  string
			dst *float64
		}{
			{"size", &p.Size},
			{"height", &p.ExtrudeHeight},
			{"thickness", &p.BaseThickness},
			{"width-factor", &p.BaseWidthFactor},
		} {
			if err := floatArg(pa, f.kw, f.dst); err != nil {
				return zygo.SexpNull, fmt.Errorf("text-plaque: %w", err)
			}
		}

		asm, err := builder.NewTextPlaqueBuilder(fonts).Build(p)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("text-plaque: %w", err)
		}
		res.Assemblies = append(res.Assemblies, asm)
		return &sexpAssembly{asm: asm}, nil
	})
}
