package autologin

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"chatdock/internal/credentials"
	"chatdock/internal/scripts"
	"chatdock/internal/service"
	"chatdock/internal/window"
	"chatdock/internal/window/windowtest"
)

type fixture struct {
	host  *windowtest.Host
	reg   *window.Registry
	store *credentials.FileStore
	o     *Orchestrator

	mu       sync.Mutex
	outcomes []Outcome
}

func newFixture(t *testing.T, emulationPath string) *fixture {
	t.Helper()
	f := &fixture{host: windowtest.NewHost()}
	f.store = credentials.NewFileStore(filepath.Join(t.TempDir(), "credentials"))
	f.reg = window.NewRegistry(f.host, nil, func(n window.Name, focused bool) {
		f.o.OnFocusChanged(n, focused)
	})
	f.o = New(f.reg, f.store, scripts.NewEmulationLoader(emulationPath), 0)
	f.o.OnResult(func(_ window.Name, out Outcome) {
		f.mu.Lock()
		f.outcomes = append(f.outcomes, out)
		f.mu.Unlock()
	})
	return f
}

func (f *fixture) results() []Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Outcome(nil), f.outcomes...)
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{OutcomeLoginInjected, "LoginInjected"},
		{OutcomeNoCredentials, "NoCredentials"},
		{OutcomeInjectFailed, "InjectFailed"},
		{OutcomeScriptFailed, "ScriptFailed"},
		{OutcomeStoreFailed, "StoreFailed"},
		{Outcome(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.o, got, tt.want)
		}
	}
}

func TestFocusGainWithoutCredentials(t *testing.T) {
	f := newFixture(t, "")
	f.reg.ShowAndFocus(window.Gemini)
	f.o.Wait()

	got := f.results()
	if len(got) != 1 || got[0] != OutcomeNoCredentials {
		t.Fatalf("outcomes = %v, want [NoCredentials]", got)
	}
	// 只注入了模拟脚本，没有登录脚本
	scriptsRun := f.host.Window(window.Gemini).Scripts()
	if len(scriptsRun) != 1 || !strings.Contains(scriptsRun[0], "webdriver") {
		t.Errorf("scripts = %d, want only the emulation script", len(scriptsRun))
	}
}

func TestFocusGainWithCredentials(t *testing.T) {
	f := newFixture(t, "")
	f.store.Save(service.Poe, "me@example.com", "secret")

	f.reg.ShowAndFocus(window.Poe)
	f.o.Wait()

	if got := f.results(); len(got) != 1 || got[0] != OutcomeLoginInjected {
		t.Fatalf("outcomes = %v, want [LoginInjected]", got)
	}
	run := f.host.Window(window.Poe).Scripts()
	if len(run) != 2 {
		t.Fatalf("scripts = %d, want emulation + login", len(run))
	}
	want, _ := scripts.LoginScript(service.Poe, "me@example.com", "secret")
	if run[1] != want {
		t.Errorf("second script is not the poe login script:\n%s", run[1])
	}
}

func TestFocusLossAndSettingsIgnored(t *testing.T) {
	f := newFixture(t, "")
	f.reg.GetOrCreate(window.Gemini)

	f.o.OnFocusChanged(window.Gemini, false)
	f.o.OnFocusChanged(window.Settings, true)
	f.o.Wait()

	if got := f.results(); len(got) != 0 {
		t.Errorf("outcomes = %v, want none", got)
	}
}

func TestEmulationFailureIsSwallowed(t *testing.T) {
	f := newFixture(t, filepath.Join(t.TempDir(), "missing.js"))
	f.store.Save(service.Gemini, "u", "p")

	f.reg.ShowAndFocus(window.Gemini)
	f.o.Wait()

	if got := f.results(); len(got) != 1 || got[0] != OutcomeLoginInjected {
		t.Fatalf("outcomes = %v, want login to proceed after emulation failure", got)
	}
	if n := len(f.host.Window(window.Gemini).Scripts()); n != 1 {
		t.Errorf("scripts = %d, want only the login script", n)
	}
}

func TestDestroyedWindowIsSwallowed(t *testing.T) {
	f := newFixture(t, "")
	f.store.Save(service.Gemini, "u", "p")
	f.reg.ShowAndFocus(window.Gemini)
	f.o.Wait()

	f.host.Window(window.Gemini).Destroy()
	f.o.Schedule(window.Gemini, service.Gemini)
	f.o.Wait()

	got := f.results()
	if len(got) != 2 || got[1] != OutcomeInjectFailed {
		t.Errorf("outcomes = %v, want second InjectFailed", got)
	}
}

func TestOverlappingTasksBothRun(t *testing.T) {
	f := newFixture(t, "")
	f.store.Save(service.Poe, "u", "p")
	f.o.SetDelay(20 * time.Millisecond)
	f.reg.ShowAndFocus(window.Poe)

	w := f.host.Window(window.Poe)
	w.SimulateFocus(false)
	w.SimulateFocus(true)
	f.o.Wait()

	got := f.results()
	if len(got) != 2 {
		t.Fatalf("outcomes = %v, want two independent tasks", got)
	}
	for i, out := range got {
		if out != OutcomeLoginInjected {
			t.Errorf("task %d outcome = %s", i, out)
		}
	}
}

func TestOverlappingTaskOnHiddenThenDestroyedWindow(t *testing.T) {
	f := newFixture(t, "")
	f.store.Save(service.Poe, "u", "p")
	f.o.SetDelay(30 * time.Millisecond)
	f.reg.ShowAndFocus(window.Poe)
	w := f.host.Window(window.Poe)
	w.SimulateFocus(true)
	w.Destroy()
	f.o.Wait()

	got := f.results()
	if len(got) != 2 {
		t.Fatalf("outcomes = %v, want 2", got)
	}
	for _, out := range got {
		if out != OutcomeInjectFailed {
			t.Errorf("outcome = %s, want InjectFailed on a destroyed window", out)
		}
	}
}

func TestAutoLoginCommand(t *testing.T) {
	f := newFixture(t, "")
	f.reg.GetOrCreate(window.Gemini)

	attempted, err := f.o.AutoLogin(window.Gemini, service.Gemini)
	if err != nil || attempted {
		t.Errorf("no credentials: attempted=%v err=%v", attempted, err)
	}
	if n := len(f.host.Window(window.Gemini).Scripts()); n != 0 {
		t.Errorf("scripts injected without credentials: %d", n)
	}

	f.store.Save(service.Gemini, "u", "p")
	attempted, err = f.o.AutoLogin(window.Gemini, service.Gemini)
	if err != nil || !attempted {
		t.Errorf("with credentials: attempted=%v err=%v", attempted, err)
	}

	f.host.Window(window.Gemini).SetEvalError(errors.New("engine refused"))
	if _, err := f.o.AutoLogin(window.Gemini, service.Gemini); err == nil {
		t.Error("injection failure must surface from the command")
	}

	if _, err := f.o.AutoLogin(window.Gemini, service.Unknown); !errors.Is(err, service.ErrUnknownService) {
		t.Errorf("unknown service err = %v", err)
	}
}

func TestAutoLoginMissingWindow(t *testing.T) {
	f := newFixture(t, "")
	f.store.Save(service.Poe, "u", "p")

	_, err := f.o.AutoLogin(window.Poe, service.Poe)
	if !errors.Is(err, window.ErrWindowUnavailable) {
		t.Errorf("err = %v, want ErrWindowUnavailable", err)
	}
}

func TestInjectEmulationCommand(t *testing.T) {
	f := newFixture(t, "")
	f.reg.GetOrCreate(window.Poe)
	ok, err := f.o.InjectEmulation(window.Poe)
	if !ok || err != nil {
		t.Errorf("InjectEmulation = %v, %v", ok, err)
	}

	missing := newFixture(t, filepath.Join(t.TempDir(), "gone.js"))
	missing.reg.GetOrCreate(window.Poe)
	if ok, err := missing.o.InjectEmulation(window.Poe); ok || err == nil {
		t.Errorf("missing script: ok=%v err=%v, want error", ok, err)
	}
}

func TestDelayIsApplied(t *testing.T) {
	f := newFixture(t, "")
	f.o.SetDelay(50 * time.Millisecond)
	f.reg.GetOrCreate(window.Gemini)

	start := time.Now()
	f.o.Schedule(window.Gemini, service.Gemini)
	f.o.Wait()
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("task finished after %v, want >= 50ms", elapsed)
	}

	f.o.SetDelay(-time.Second)
	if f.o.Delay() != 0 {
		t.Errorf("negative delay stored as %v", f.o.Delay())
	}
}
