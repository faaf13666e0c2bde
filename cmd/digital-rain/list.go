package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/digital-rain/charset"
	"github.com/lixenwraith/digital-rain/effect"
	"github.com/lixenwraith/digital-rain/palette"
	"github.com/lixenwraith/digital-rain/render"
)

var listTopics = []string{"effects", "colors", "charsets", "css"}

var effectBlurbs = map[string]string{
	effect.NameClassic:  "falling glyph columns with fading trails",
	effect.NameBinary:   "dense streams of 0 and 1 with gold columns",
	effect.NameCascade:  "columns start as a wavefront sweeps across",
	effect.NamePulse:    "rain under a rolling brightness wave",
	effect.NameGlitch:   "rain with tearing, channel swaps and noise blocks",
	effect.NameFire:     "heat diffusion rising from the bottom row",
	effect.NameOcean:    "layered sine waves with breaking foam",
	effect.NameParallax: "a dim slow layer behind a bright fast one",
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list [effects|colors|charsets|css]",
		Short:     "List effects, palettes, character sets or CSS colors",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: listTopics,
		RunE: func(cmd *cobra.Command, args []string) error {
			topics := listTopics[:3]
			if len(args) == 1 {
				topics = args
			}
			l := newLister(cmd.OutOrStdout())
			for i, topic := range topics {
				if i > 0 && l.styled {
					fmt.Fprintln(l.out)
				}
				l.print(topic)
			}
			return nil
		},
	}
}

// lister prints catalogs, styled with color swatches only when writing to a terminal
type lister struct {
	out    io.Writer
	styled bool
	r      *lipgloss.Renderer

	title lipgloss.Style
	name  lipgloss.Style
	note  lipgloss.Style
}

func newLister(out io.Writer) *lister {
	l := &lister{out: out, r: lipgloss.NewRenderer(out)}
	if f, ok := out.(*os.File); ok {
		l.styled = isTerminal(f)
	}
	l.title = l.r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00c850"))
	l.name = l.r.NewStyle().Width(16)
	l.note = l.r.NewStyle().Foreground(lipgloss.Color("#808080"))
	return l
}

func (l *lister) print(topic string) {
	switch topic {
	case "effects":
		l.header("Effects")
		for _, name := range effect.NewDefaultRegistry().Names() {
			l.row(name, l.note.Render(effectBlurbs[name]))
		}
	case "colors":
		l.header("Palettes")
		for _, name := range palette.Names() {
			p, _ := palette.ByName(name)
			l.row(name, l.gradient(p))
		}
		if l.styled {
			fmt.Fprintln(l.out, l.note.Render("any CSS color name also works, see 'list css'"))
		}
	case "charsets":
		l.header("Character sets")
		for _, name := range charset.Names() {
			set, _ := charset.ByName(name)
			l.row(name, l.note.Render(set.Sample(24)))
		}
	case "css":
		l.header("CSS colors")
		for _, name := range palette.CSSNames() {
			c, _ := palette.CSSColor(name)
			l.row(name, l.swatch(c, 4))
		}
	}
}

func (l *lister) header(s string) {
	if l.styled {
		fmt.Fprintln(l.out, l.title.Render(s))
	}
}

// row prints name alone when plain so the output can be piped
func (l *lister) row(name, detail string) {
	if !l.styled {
		fmt.Fprintln(l.out, name)
		return
	}
	fmt.Fprintln(l.out, "  "+l.name.Render(name)+detail)
}

func (l *lister) gradient(p *palette.Palette) string {
	const steps = 16
	var b strings.Builder
	for i := range steps {
		b.WriteString(l.swatch(p.Lookup(float64(i)/(steps-1)), 1))
	}
	return b.String()
}

func (l *lister) swatch(c render.RGB, width int) string {
	hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	return l.r.NewStyle().Background(lipgloss.Color(hex)).Render(strings.Repeat(" ", width))
}
