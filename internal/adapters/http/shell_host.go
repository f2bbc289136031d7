package httpadapter

// shellHost stands in for the browser shell during a navigate request. The
// response tells the caller what to do, so every action here is a no-op and
// OpenURL only reports whether the caller can route in-app.
type shellHost struct {
	inApp bool
}

func newShellHost(inApp bool) shellHost {
	return shellHost{inApp: inApp}
}

func (h shellHost) OpenCitation(string) {}

func (h shellHost) OpenTopic(string) {}

func (h shellHost) OpenURL(string) bool { return h.inApp }

func (h shellHost) OpenSearch(string) {}

func (h shellHost) Redirect(string) {}

func (h shellHost) InAppShell() bool { return h.inApp }

func (h shellHost) ClearInput() {}

func (h shellHost) AfterNavigate() {}
