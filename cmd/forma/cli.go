package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/chazu/forma/pkg/builder"
	"github.com/chazu/forma/pkg/config"
	"github.com/chazu/forma/pkg/csg"
	"github.com/chazu/forma/pkg/engine"
	"github.com/chazu/forma/pkg/evaluate"
	"github.com/chazu/forma/pkg/export"
	"github.com/chazu/forma/pkg/kernel/sdfx"
	"github.com/chazu/forma/pkg/typeface"
)

// defaultConfigPath is looked up relative to the working directory when
// --config is not given. A missing file just means defaults.
const defaultConfigPath = "forma.yaml"

// newCLIApp creates the CLI application with all commands.
func newCLIApp(logger *zap.Logger) *cli.App {
	app := &cli.App{
		Name:    "forma",
		Usage:   "Parametric 3D part generator",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: defaultConfigPath, Usage: "Generation defaults file"},
		},
		Commands: []*cli.Command{
			frameCmd(logger),
			plaqueCmd(logger),
			evalCmd(logger),
			fontsCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// frameCmd creates the frame command.
func frameCmd(logger *zap.Logger) *cli.Command {
	def := builder.DefaultRadialFrameParams()
	return &cli.Command{
		Name:  "frame",
		Usage: "Generate a radial frame (body, N arms, N motor mounts)",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "arm-length", Value: def.ArmLength, Usage: "Arm span from body face to tip (mm)"},
			&cli.Float64Flag{Name: "arm-width", Value: def.ArmWidth, Usage: "Arm width (mm)"},
			&cli.Float64Flag{Name: "body-size", Value: def.BodySize, Usage: "Square body edge length (mm)"},
			&cli.Float64Flag{Name: "mount-diameter", Value: def.MountDiameter, Usage: "Motor mount diameter (mm)"},
			&cli.IntFlag{Name: "arms", Value: def.SymmetryCount, Usage: "Symmetry count N"},
			&cli.Float64Flag{Name: "body-height", Value: def.BodyHeight, Usage: "Body height (mm)"},
			&cli.Float64Flag{Name: "arm-height", Value: def.ArmHeight, Usage: "Arm height (mm)"},
			&cli.Float64Flag{Name: "mount-height", Value: def.MountHeight, Usage: "Mount height (mm)"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "frame.stl", Usage: "Output path (.scad, .stl, .obj)"},
			&cli.BoolFlag{Name: "ascii", Usage: "Write text STL instead of binary"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			asm, err := builder.BuildRadialFrame(builder.RadialFrameParams{
				ArmLength:     c.Float64("arm-length"),
				ArmWidth:      c.Float64("arm-width"),
				BodySize:      c.Float64("body-size"),
				MountDiameter: c.Float64("mount-diameter"),
				SymmetryCount: c.Int("arms"),
				BodyHeight:    c.Float64("body-height"),
				ArmHeight:     c.Float64("arm-height"),
				MountHeight:   c.Float64("mount-height"),
			})
			if err != nil {
				return err
			}

			return writeAssembly(logger, cfg, typeface.Default(), asm, c.String("out"), c.Bool("ascii"))
		},
	}
}

// plaqueCmd creates the plaque command.
func plaqueCmd(logger *zap.Logger) *cli.Command {
	def := builder.DefaultTextPlaqueParams()
	return &cli.Command{
		Name:  "plaque",
		Usage: "Generate an extruded text plaque on a rectangular base",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Value: def.Text, Usage: "Text to extrude"},
			&cli.StringFlag{Name: "font", Usage: "Font name (default from config)"},
			&cli.StringFlag{Name: "font-file", Usage: "TTF file registered under the --font name"},
			&cli.Float64Flag{Name: "size", Value: def.Size, Usage: "Glyph size (mm)"},
			&cli.Float64Flag{Name: "height", Value: def.ExtrudeHeight, Usage: "Extrusion depth (mm)"},
			&cli.Float64Flag{Name: "thickness", Value: def.BaseThickness, Usage: "Base thickness (mm)"},
			&cli.Float64Flag{Name: "width-factor", Value: def.BaseWidthFactor, Usage: "Base width heuristic factor"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "plaque.scad", Usage: "Output path (.scad, .stl, .obj)"},
			&cli.BoolFlag{Name: "ascii", Usage: "Write text STL instead of binary"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			fonts, err := loadFonts(cfg)
			if err != nil {
				return err
			}

			font := c.String("font")
			if font == "" {
				font = cfg.DefaultFont
			}
			if path := c.String("font-file"); path != "" {
				if err := fonts.LoadFile(font, path); err != nil {
					return err
				}
			}

			asm, err := builder.NewTextPlaqueBuilder(fonts).Build(builder.TextPlaqueParams{
				Text:            c.String("text"),
				Font:            font,
				Size:            c.Float64("size"),
				ExtrudeHeight:   c.Float64("height"),
				BaseThickness:   c.Float64("thickness"),
				BaseWidthFactor: c.Float64("width-factor"),
			})
			if err != nil {
				return err
			}

			return writeAssembly(logger, cfg, fonts, asm, c.String("out"), c.Bool("ascii"))
		},
	}
}

// evalCmd creates the eval command, which runs a parameter script and
// writes one artifact per assembly it builds.
func evalCmd(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "Evaluate a parameter script (.forma) and export its assemblies",
		ArgsUsage: "<script>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out-dir", Aliases: []string{"d"}, Value: ".", Usage: "Artifact output directory"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "stl", Usage: "Artifact format: scad|stl|obj"},
			&cli.BoolFlag{Name: "ascii", Usage: "Write text STL instead of binary"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("eval requires a script path")
			}
			format := strings.ToLower(c.String("format"))
			switch format {
			case "scad", "stl", "obj":
			default:
				return fmt.Errorf("unknown format %q, expected scad, stl, or obj", format)
			}

			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			fonts, err := loadFonts(cfg)
			if err != nil {
				return err
			}

			source, err := os.ReadFile(c.Args().First())
			if err != nil {
				return err
			}

			res, evalErrs, err := engine.NewEngine(fonts).Evaluate(string(source))
			if err != nil {
				return err
			}
			if len(evalErrs) > 0 {
				for _, e := range evalErrs {
					logger.Error("script error", zap.Int("line", e.Line), zap.String("message", e.Message))
				}
				return fmt.Errorf("script failed with %d error(s)", len(evalErrs))
			}
			if len(res.Assemblies) == 0 {
				return fmt.Errorf("script produced no assemblies")
			}

			for i, asm := range res.Assemblies {
				out := filepath.Join(c.String("out-dir"), fmt.Sprintf("%s-%d.%s", asm.Name, i, format))
				if err := writeAssembly(logger, cfg, fonts, asm, out, c.Bool("ascii")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// fontsCmd lists the resolvable font names.
func fontsCmd() *cli.Command {
	return &cli.Command{
		Name:  "fonts",
		Usage: "List registered font names",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			fonts, err := loadFonts(cfg)
			if err != nil {
				return err
			}
			for _, name := range fonts.Names() {
				fmt.Fprintln(c.App.Writer, name)
			}
			return nil
		},
	}
}

// loadFonts builds the font registry: embedded faces plus any configured
// font directories.
func loadFonts(cfg *config.Config) (*typeface.Registry, error) {
	fonts := typeface.Default()
	for _, dir := range cfg.FontDirs {
		if err := fonts.LoadDir(dir); err != nil {
			return nil, err
		}
	}
	return fonts, nil
}

// writeAssembly exports an assembly to path, choosing the artifact kind
// from the extension: .scad emits CSG source without any kernel work,
// mesh formats evaluate the tree with the sdfx kernel first.
func writeAssembly(logger *zap.Logger, cfg *config.Config, fonts *typeface.Registry, asm *csg.Assembly, path string, ascii bool) error {
	var data []byte

	if strings.EqualFold(filepath.Ext(path), ".scad") {
		var err error
		if data, err = scadBytes(asm, cfg.Facets); err != nil {
			return err
		}
	} else {
		format, err := export.FormatForPath(path)
		if err != nil {
			return err
		}
		if format == export.FormatSTL && ascii {
			format = export.FormatSTLASCII
		}

		k := sdfx.NewWithFonts(fonts)
		k.SetMeshCells(cfg.MeshCells)

		mesh, err := evaluate.Mesh(asm, k)
		if err != nil {
			return err
		}
		logger.Info("assembly meshed",
			zap.String("assembly", asm.Name),
			zap.Int("vertices", mesh.VertexCount()),
			zap.Int("triangles", mesh.TriangleCount()))

		if data, err = export.Mesh(mesh, format); err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logger.Info("artifact written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

func scadBytes(asm *csg.Assembly, facets int) ([]byte, error) {
	var sb strings.Builder
	if err := export.WriteSCAD(&sb, asm, facets); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}
