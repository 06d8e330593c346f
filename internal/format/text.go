package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"stickynote/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type textStyles struct {
	id   lipgloss.Style
	done lipgloss.Style
	box  lipgloss.Style
	kind lipgloss.Style
}

// newTextStyles honors NO_COLOR and CLICOLOR(_FORCE) via termenv; pipes and
// files get plain text.
func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
	muted := lipgloss.AdaptiveColor{Light: "240", Dark: "243"}
	return textStyles{
		id:   r.NewStyle().Foreground(muted),
		done: r.NewStyle().Foreground(muted).Strikethrough(true),
		box:  r.NewStyle().Bold(true),
		kind: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "27", Dark: "62"}),
	}
}

// WriteText renders items and events as one line each. Other values fall back
// to indented JSON.
func WriteText(w io.Writer, v any) error {
	st := newTextStyles(w)
	var b strings.Builder
	switch x := v.(type) {
	case []model.Item:
		if len(x) == 0 {
			b.WriteString("(no items)\n")
		}
		for _, it := range x {
			b.WriteString(st.itemLine(it))
			b.WriteByte('\n')
		}
	case model.Item:
		b.WriteString(st.itemLine(x))
		b.WriteByte('\n')
	case []model.Event:
		if len(x) == 0 {
			b.WriteString("(no history)\n")
		}
		for _, ev := range x {
			b.WriteString(st.eventLine(ev))
			b.WriteByte('\n')
		}
	default:
		return WriteJSON(w, v, true)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (st textStyles) itemLine(it model.Item) string {
	box, text := "[ ]", it.Text
	if it.Completed {
		box = "[x]"
		text = st.done.Render(text)
	}
	return fmt.Sprintf("%-8s %s %s", st.id.Render(ShortID(it.ID)), st.box.Render(box), text)
}

func (st textStyles) eventLine(ev model.Event) string {
	line := fmt.Sprintf("%s  %-12s %s",
		ev.TS.Local().Format(time.DateTime),
		st.kind.Render(ev.Type),
		st.id.Render(ShortID(ev.ItemID)),
	)
	if p := strings.TrimSpace(string(ev.Payload)); p != "" && p != "{}" {
		line += "  " + p
	}
	return line
}
