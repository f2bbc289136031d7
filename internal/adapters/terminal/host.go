package terminal

import (
	"fmt"
	"io"
)

// Host prints navigation requests instead of performing them.
type Host struct {
	out   io.Writer
	inApp bool
}

func NewHost(out io.Writer, inApp bool) *Host {
	return &Host{out: out, inApp: inApp}
}

func (h *Host) OpenCitation(ref string) { fmt.Fprintf(h.out, "-> open citation %s\n", ref) }

func (h *Host) OpenTopic(slug string) { fmt.Fprintf(h.out, "-> open topic %s\n", slug) }

func (h *Host) OpenURL(url string) bool {
	if !h.inApp {
		return false
	}
	fmt.Fprintf(h.out, "-> open %s\n", url)
	return true
}

func (h *Host) OpenSearch(query string) { fmt.Fprintf(h.out, "-> search %q\n", query) }

func (h *Host) Redirect(url string) { fmt.Fprintf(h.out, "-> redirect %s\n", url) }

func (h *Host) InAppShell() bool { return h.inApp }

func (h *Host) ClearInput() {}

func (h *Host) AfterNavigate() {}

// Keyboard tracks the virtual keyboard initiator and panel.
type Keyboard struct {
	visible bool
	open    bool
}

func (k *Keyboard) Show() { k.visible = true }

func (k *Keyboard) Hide() { k.visible = false }

func (k *Keyboard) IsOpen() bool { return k.open }

func (k *Keyboard) Visible() bool { return k.visible }

// TogglePanel opens or closes the keyboard panel itself.
func (k *Keyboard) TogglePanel() { k.open = !k.open }
