// Command outline strokes SVG path data, hit-tests it and outlines text.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tdewolff/argp"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/outline"
	"github.com/gogpu/outline/glyph"
	"github.com/gogpu/outline/svgpath"
)

// Stroke strokes a path and prints the outline as SVG path data.
type Stroke struct {
	Width      float64 `short:"w" default:"1" desc:"Line width"`
	Cap        string  `short:"c" default:"butt" desc:"Line cap: butt, round or square"`
	Join       string  `short:"j" default:"miter" desc:"Line join: miter, round or bevel"`
	MiterLimit float64 `short:"m" default:"4" desc:"Miter limit"`
	Style      string  `short:"s" desc:"TOML stroke style file, overrides the style flags"`
	Workers    int     `default:"1" desc:"Subpaths stroked in parallel, 0 for all CPUs"`
	Verbose    bool    `short:"v" desc:"Log to stderr"`
	Input      string  `index:"0" desc:"SVG path data"`
}

// Hit reports whether a point lies inside a path.
type Hit struct {
	X       float64 `short:"x" desc:"Point X"`
	Y       float64 `short:"y" desc:"Point Y"`
	Rule    string  `short:"r" default:"nonzero" desc:"Fill rule: nonzero or evenodd"`
	Stroke  float64 `short:"w" default:"0" desc:"Hit-test the stroke of this width instead of the fill"`
	Verbose bool    `short:"v" desc:"Log to stderr"`
	Input   string  `index:"0" desc:"SVG path data"`
}

// Text prints the outline of a line of text as SVG path data.
type Text struct {
	Font    string  `short:"f" desc:"TrueType or OpenType font file, Go Regular if empty"`
	Size    float64 `short:"s" default:"16" desc:"Font size in pixels"`
	Stroke  float64 `short:"w" default:"0" desc:"Stroke the glyphs with this width"`
	Verbose bool    `short:"v" desc:"Log to stderr"`
	Input   string  `index:"0" desc:"Text"`
}

func main() {
	root := argp.NewCmd(&Stroke{}, "Vector path stroking toolkit")
	root.AddCmd(&Stroke{}, "stroke", "Stroke a path")
	root.AddCmd(&Hit{}, "hit", "Test whether a point lies inside a path")
	root.AddCmd(&Text{}, "text", "Outline text")
	root.Parse()
	root.PrintHelp()
}

func setVerbose(verbose bool) {
	if verbose {
		outline.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
}

func (cmd *Stroke) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	setVerbose(cmd.Verbose)

	style, err := cmd.style()
	if err != nil {
		return err
	}
	c, err := svgpath.Parse(cmd.Input)
	if err != nil {
		return err
	}
	stroked, err := outline.StrokeCurve(c, style, outline.WithWorkers(cmd.Workers))
	if err != nil {
		return err
	}
	fmt.Println(svgpath.Format(stroked))
	return nil
}

func (cmd *Stroke) style() (outline.Stroke, error) {
	if cmd.Style != "" {
		f, err := os.Open(cmd.Style)
		if err != nil {
			return outline.Stroke{}, err
		}
		defer f.Close()
		return decodeStyle(f)
	}
	return flagStyle(cmd.Width, cmd.Cap, cmd.Join, cmd.MiterLimit)
}

func (cmd *Hit) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	setVerbose(cmd.Verbose)

	var rule outline.FillRule
	if err := rule.UnmarshalText([]byte(cmd.Rule)); err != nil {
		return err
	}
	c, err := svgpath.Parse(cmd.Input)
	if err != nil {
		return err
	}
	if cmd.Stroke > 0 {
		if c, err = c.Stroke(outline.StrokeWidth(float32(cmd.Stroke))); err != nil {
			return err
		}
		rule = outline.NonZero
	}
	pt := outline.Pt(float32(cmd.X), float32(cmd.Y))
	fmt.Println(c.Contains(pt, rule), c.Winding(pt))
	return nil
}

func (cmd *Text) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	setVerbose(cmd.Verbose)

	data := goregular.TTF
	if cmd.Font != "" {
		var err error
		if data, err = os.ReadFile(cmd.Font); err != nil {
			return err
		}
	}
	o, err := glyph.NewOutliner(data)
	if err != nil {
		return err
	}
	c, err := o.Outline(cmd.Input, float32(cmd.Size))
	if err != nil {
		return err
	}
	if cmd.Stroke > 0 {
		if c, err = c.Stroke(outline.StrokeWidth(float32(cmd.Stroke))); err != nil {
			return err
		}
	}
	fmt.Println(svgpath.Format(c))
	return nil
}
