package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/distil/internal/diag"
	"github.com/standardbeagle/distil/internal/format"
	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/langs"
	"github.com/standardbeagle/distil/internal/options"
	"github.com/standardbeagle/distil/internal/pipeline"
	"github.com/standardbeagle/distil/internal/version"
)

func main() {
	app := &cli.App{
		Name:                   "distil",
		Usage:                  "Extract the public structural skeleton of a codebase for LLM consumption",
		Version:                version.Version,
		UseShortOptionHandling: true,
		ArgsUsage:              "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "include-public", Value: true, Usage: "Include public members"},
			&cli.BoolFlag{Name: "include-protected", Usage: "Include protected members"},
			&cli.BoolFlag{Name: "include-internal", Usage: "Include internal members"},
			&cli.BoolFlag{Name: "include-private", Usage: "Include private members"},

			&cli.BoolFlag{Name: "include-comments", Usage: "Include comments"},
			&cli.BoolFlag{Name: "include-docstrings", Value: true, Usage: "Include doc comments"},
			&cli.BoolFlag{Name: "include-implementation", Usage: "Include function bodies"},
			&cli.BoolFlag{Name: "include-imports", Value: true, Usage: "Include import declarations"},
			&cli.BoolFlag{Name: "include-annotations", Value: true, Usage: "Include decorators/annotations"},
			&cli.BoolFlag{Name: "include-fields", Value: true, Usage: "Include fields"},
			&cli.BoolFlag{Name: "include-methods", Value: true, Usage: "Include methods"},

			&cli.BoolFlag{Name: "raw", Usage: "Skip stripping entirely and emit the full extracted tree"},
			&cli.IntFlag{Name: "workers", Usage: "Worker count (0 = 80% of available cores)"},
			&cli.BoolFlag{Name: "recursive", Value: true, Usage: "Recurse into subdirectories"},

			&cli.BoolFlag{Name: "absolute-paths", Usage: "Render File.path as absolute instead of relative"},
			&cli.StringFlag{Name: "relative-prefix", Usage: "Prefix prepended to relative output paths"},
			&cli.StringFlag{Name: "base-path", Usage: "Base path relative output paths are computed against"},

			&cli.StringSliceFlag{Name: "include", Usage: "Glob pattern(s) a file must match to be processed"},
			&cli.StringSliceFlag{Name: "exclude", Usage: "Glob pattern(s) that exclude a file from processing"},
			&cli.BoolFlag{Name: "continue-on-error", Usage: "Skip files that fail to process instead of aborting"},

			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text", Usage: "Output format: text, md, json, jsonl, xml"},
			&cli.BoolFlag{Name: "stdout", Usage: "Write output to stdout instead of a file"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Emit diagnostics to stderr"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "distil: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		diag.UseStderr()
	}

	if c.NArg() < 1 {
		return fmt.Errorf("usage: distil [flags] <path>")
	}
	path := c.Args().First()

	opts := optionsFromFlags(c)

	formatName := c.String("format")
	formatter, err := format.ByName(formatName)
	if err != nil {
		return err
	}

	registry := langs.NewDefaultRegistry()
	proc := pipeline.New(registry)

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	var files []*ir.File
	if info.IsDir() {
		dir, err := proc.ProcessDirectory(context.Background(), path, opts)
		if err != nil {
			return err
		}
		files = ir.ExtractFiles(dir)
	} else {
		file, err := proc.ProcessFile(path, opts)
		if err != nil {
			return err
		}
		files = []*ir.File{file}
	}
	diag.Printf("cli", "processed %d file(s)", len(files))

	output, err := formatter.FormatFiles(files)
	if err != nil {
		return err
	}

	return writeOutput(c, path, formatName, output)
}

func optionsFromFlags(c *cli.Context) options.ProcessOptions {
	o := options.Default()

	o.IncludePublic = c.Bool("include-public")
	o.IncludeProtected = c.Bool("include-protected")
	o.IncludeInternal = c.Bool("include-internal")
	o.IncludePrivate = c.Bool("include-private")

	o.IncludeComments = c.Bool("include-comments")
	o.IncludeDocstrings = c.Bool("include-docstrings")
	o.IncludeImplementation = c.Bool("include-implementation")
	o.IncludeImports = c.Bool("include-imports")
	o.IncludeAnnotations = c.Bool("include-annotations")
	o.IncludeFields = c.Bool("include-fields")
	o.IncludeMethods = c.Bool("include-methods")

	o.RawMode = c.Bool("raw")
	o.Workers = c.Int("workers")
	o.Recursive = c.Bool("recursive")

	if c.Bool("absolute-paths") {
		o.FilePathType = options.PathAbsolute
	} else {
		o.FilePathType = options.PathRelative
	}
	o.RelativePathPrefix = c.String("relative-prefix")
	o.BasePath = c.String("base-path")

	o.IncludePatterns = c.StringSlice("include")
	o.ExcludePatterns = c.StringSlice("exclude")
	o.ContinueOnError = c.Bool("continue-on-error")

	return o
}

// writeOutput routes formatted content to stdout, an explicit -o path, or
// an auto-generated ./.aid/<basename>.<unix-seconds>.<ext> path.
func writeOutput(c *cli.Context, inputPath, formatName, content string) error {
	if c.Bool("stdout") {
		_, err := fmt.Print(content)
		return err
	}

	outPath := c.String("output")
	if outPath == "" {
		if err := os.MkdirAll(".aid", 0o755); err != nil {
			return err
		}
		outPath = autoOutputPath(inputPath, formatName, time.Now().Unix())
	}

	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return err
	}
	diag.Printf("cli", "wrote %s", outPath)
	fmt.Println(outPath)
	return nil
}

// autoOutputPath builds the ./.aid/<basename>.<unix-seconds>.<ext> path
// an output goes to when neither --stdout nor -o is given.
func autoOutputPath(inputPath, formatName string, unixSeconds int64) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "output"
	}
	return filepath.Join(".aid", fmt.Sprintf("%s.%d.%s", base, unixSeconds, format.ExtensionFor(formatName)))
}
