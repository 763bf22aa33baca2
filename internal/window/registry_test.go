package window_test

import (
	"errors"
	"testing"

	"chatdock/internal/window"
	"chatdock/internal/window/windowtest"
)

func TestGetOrCreateIsLazyAndCached(t *testing.T) {
	host := windowtest.NewHost()
	reg := window.NewRegistry(host, nil, nil)

	if _, ok := reg.Get(window.Poe); ok {
		t.Fatal("poe should not exist before first demand")
	}

	h1, ok := reg.GetOrCreate(window.Poe)
	if !ok {
		t.Fatal("GetOrCreate(poe) failed")
	}
	h2, _ := reg.GetOrCreate(window.Poe)
	if h1 != h2 {
		t.Error("second GetOrCreate returned a different handle")
	}
	if got := host.Created(); len(got) != 1 || got[0] != window.Poe {
		t.Errorf("created = %v, want [poe]", got)
	}
	if reg.State(window.Poe) != window.StateHidden {
		t.Errorf("new window state = %s, want Hidden", reg.State(window.Poe))
	}
}

func TestGetOrCreatePassesConfig(t *testing.T) {
	host := windowtest.NewHost()
	reg := window.NewRegistry(host, nil, nil)

	reg.GetOrCreate(window.Poe)
	reg.GetOrCreate(window.Settings)

	poe := host.Window(window.Poe).Config()
	if poe.UserAgent != window.DesktopUserAgent || len(poe.BrowserArgs) == 0 {
		t.Errorf("poe config missing user agent or browser args: %+v", poe)
	}
	settings := host.Window(window.Settings).Config()
	if !settings.Local || len(settings.BrowserArgs) != 0 {
		t.Errorf("settings should be local without browser args: %+v", settings)
	}
}

func TestCreateFailureIsSoft(t *testing.T) {
	host := windowtest.NewHost()
	host.FailCreate(window.Poe, errors.New("no webview runtime"))
	reg := window.NewRegistry(host, nil, nil)

	if _, ok := reg.GetOrCreate(window.Poe); ok {
		t.Fatal("GetOrCreate should report absence on failure")
	}
	// 后续操作静默跳过
	reg.Show(window.Poe)
	reg.Focus(window.Poe)
	reg.Hide(window.Poe)
	if reg.IsVisible(window.Poe) {
		t.Error("missing window reported visible")
	}
	if reg.ShowAndFocus(window.Poe) {
		t.Error("ShowAndFocus should fail when creation fails")
	}
}

func TestOperationsOnMissingWindowAreSkipped(t *testing.T) {
	reg := window.NewRegistry(windowtest.NewHost(), nil, nil)

	reg.Show(window.Settings)
	reg.Hide(window.Settings)
	reg.Focus(window.Settings)

	if reg.IsVisible(window.Settings) {
		t.Error("IsVisible on missing window = true")
	}
	if _, ok := reg.Get(window.Settings); ok {
		t.Error("Show must not create windows")
	}
}

func TestShowHideRecordsLifecycle(t *testing.T) {
	host := windowtest.NewHost()
	reg := window.NewRegistry(host, nil, nil)

	reg.ShowAndFocus(window.Gemini)
	if !reg.IsVisible(window.Gemini) || reg.State(window.Gemini) != window.StateVisible {
		t.Fatalf("after show: visible=%v state=%s", reg.IsVisible(window.Gemini), reg.State(window.Gemini))
	}
	if !host.Window(window.Gemini).Focused() {
		t.Error("gemini should be focused")
	}

	reg.Hide(window.Gemini)
	if reg.IsVisible(window.Gemini) || reg.State(window.Gemini) != window.StateHidden {
		t.Errorf("after hide: visible=%v state=%s", reg.IsVisible(window.Gemini), reg.State(window.Gemini))
	}
}

func TestVisibilityQueryFailure(t *testing.T) {
	host := windowtest.NewHost()
	reg := window.NewRegistry(host, nil, nil)
	reg.ShowAndFocus(window.Gemini)
	host.Window(window.Gemini).SetVisibleError(errors.New("query failed"))

	if reg.IsVisible(window.Gemini) {
		t.Error("failed visibility query should report false")
	}
}

func TestCloseHidesAndPrevents(t *testing.T) {
	host := windowtest.NewHost()
	reg := window.NewRegistry(host, nil, nil)
	reg.ShowAndFocus(window.Poe)
	w := host.Window(window.Poe)

	if !w.Close() {
		t.Fatal("close was not prevented")
	}
	if w.Visible() {
		t.Error("window still visible after close")
	}
	if reg.State(window.Poe) != window.StateHidden {
		t.Errorf("state = %s, want Hidden", reg.State(window.Poe))
	}

	// 已隐藏窗口再次关闭是无操作
	if !w.Close() {
		t.Error("second close was not prevented")
	}
	if reg.State(window.Poe) != window.StateHidden {
		t.Errorf("state after second close = %s, want Hidden", reg.State(window.Poe))
	}

	// 会话保留，可以再次显示
	reg.Show(window.Poe)
	if !reg.IsVisible(window.Poe) {
		t.Error("window could not be re-shown after close")
	}
}

func TestEval(t *testing.T) {
	host := windowtest.NewHost()
	reg := window.NewRegistry(host, nil, nil)

	if err := reg.Eval(window.Poe, "1"); !errors.Is(err, window.ErrWindowUnavailable) {
		t.Errorf("Eval on missing window err = %v, want ErrWindowUnavailable", err)
	}

	reg.GetOrCreate(window.Poe)
	if err := reg.Eval(window.Poe, "1+1"); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got := host.Window(window.Poe).Scripts(); len(got) != 1 || got[0] != "1+1" {
		t.Errorf("scripts = %q", got)
	}

	host.Window(window.Poe).Destroy()
	if err := reg.Eval(window.Poe, "2"); !errors.Is(err, windowtest.ErrDestroyed) {
		t.Errorf("Eval on destroyed window err = %v, want ErrDestroyed", err)
	}
}

func TestFocusHookAttachedAtCreation(t *testing.T) {
	type ev struct {
		name    window.Name
		focused bool
	}
	var events []ev
	host := windowtest.NewHost()
	reg := window.NewRegistry(host, nil, func(n window.Name, f bool) {
		events = append(events, ev{n, f})
	})

	reg.ShowAndFocus(window.Gemini)
	reg.ShowAndFocus(window.Poe)

	want := []ev{{window.Gemini, true}, {window.Gemini, false}, {window.Poe, true}}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, events[i], want[i])
		}
	}
}
