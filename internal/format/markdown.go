package format

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"stickynote/internal/model"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`#`, `\#`,
	`<`, `\<`,
)

// Markdown returns v as a markdown document: items become a task list.
func Markdown(v any) (string, error) {
	var b strings.Builder
	switch x := v.(type) {
	case []model.Item:
		if len(x) == 0 {
			b.WriteString("_No items._\n")
		}
		for _, it := range x {
			writeTask(&b, it)
		}
	case model.Item:
		writeTask(&b, x)
	case []model.Event:
		if len(x) == 0 {
			b.WriteString("_No history._\n")
		}
		for _, ev := range x {
			fmt.Fprintf(&b, "- `%s` **%s** `%s`\n", ev.TS.Local().Format(time.DateTime), ev.Type, ShortID(ev.ItemID))
		}
	default:
		j, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		b.WriteString("```json\n")
		b.Write(j)
		b.WriteString("\n```\n")
	}
	return b.String(), nil
}

func writeTask(b *strings.Builder, it model.Item) {
	box := " "
	if it.Completed {
		box = "x"
	}
	fmt.Fprintf(b, "- [%s] %s\n", box, mdEscaper.Replace(it.Text))
}

// WriteMarkdown renders Markdown(v) for the terminal. Non-terminal writers get
// the notty style so the output stays free of escape sequences.
func WriteMarkdown(w io.Writer, v any) error {
	md, err := Markdown(v)
	if err != nil {
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(markdownStyle(w)),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func markdownStyle(w io.Writer) string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("STICKYNOTE_MD_STYLE"))) {
	case "light":
		return styles.LightStyle
	case "dark":
		return styles.DarkStyle
	case "notty":
		return styles.NoTTYStyle
	}
	if termenv.NewOutput(w).EnvColorProfile() == termenv.Ascii {
		return styles.NoTTYStyle
	}
	return styles.DarkStyle
}
