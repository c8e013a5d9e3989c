package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ksaxena149/personal-relationship-manager/internal/notifier"
)

var (
	toastBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")). // Soft blue border
			Padding(0, 1)

	toastTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	toastMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dim gray
)

// ToastRenderer writes lipgloss-styled toast boxes to a writer, one per
// notification. The display duration is shown rather than enforced; a
// terminal has no way to retract printed output.
type ToastRenderer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewToastRenderer(out io.Writer) *ToastRenderer {
	return &ToastRenderer{
		out: out,
	}
}

func (r *ToastRenderer) Show(toast notifier.Toast) {
	body := toastTextStyle.Render("🔔 " + toast.Message)
	meta := toastMetaStyle.Render(fmt.Sprintf("dismisses in %s", toast.Duration))

	box := toastBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, meta))

	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.out, box)
}
