package commands

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/forma-editor/forma/internal/modehandler"
)

// fakeAPI records command registrations and status messages.
type fakeAPI struct {
	commands    map[string]modehandler.CommandFunc
	entries     []string
	cleared     bool
	lastMessage string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{commands: make(map[string]modehandler.CommandFunc)}
}

func (f *fakeAPI) RegisterCommand(name string, fn modehandler.CommandFunc) {
	f.commands[name] = fn
}

func (f *fakeAPI) SaveDocument() error       { return nil }
func (f *fakeAPI) SwapImage(src string) bool { return false }
func (f *fakeAPI) HistoryEntries() []string  { return f.entries }
func (f *fakeAPI) ClearHistory()             { f.cleared = true }
func (f *fakeAPI) Quit(force bool)           {}

func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.lastMessage = fmt.Sprintf(format, args...)
}

func (f *fakeAPI) run(t *testing.T, name string, args ...string) error {
	t.Helper()
	fn, ok := f.commands[name]
	if !ok {
		t.Fatalf("command %q not registered", name)
	}
	return fn(args)
}

func TestHistoryCommand_ListsEntriesWithIDs(t *testing.T) {
	api := newFakeAPI()
	RegisterAppCommands(api)

	api.entries = []string{
		"01J0000000000000000000001 style left on <div>",
		"01J0000000000000000000002 set src on <img>",
	}
	if err := api.run(t, "history"); err != nil {
		t.Fatalf("history command error = %v", err)
	}
	if !strings.Contains(api.lastMessage, "2 undo entr(ies)") {
		t.Fatalf("message missing count: %q", api.lastMessage)
	}
	if !strings.Contains(api.lastMessage, "01J0000000000000000000001") ||
		!strings.Contains(api.lastMessage, "01J0000000000000000000002") {
		t.Fatalf("message missing entry ids: %q", api.lastMessage)
	}
}

func TestHistoryCommand_CapsListingAtNewestThree(t *testing.T) {
	api := newFakeAPI()
	RegisterAppCommands(api)

	for i := 1; i <= 5; i++ {
		api.entries = append(api.entries, fmt.Sprintf("id%d change", i))
	}
	if err := api.run(t, "history"); err != nil {
		t.Fatalf("history command error = %v", err)
	}
	if strings.Contains(api.lastMessage, "id1 ") || strings.Contains(api.lastMessage, "id2 ") {
		t.Fatalf("oldest entries should be elided: %q", api.lastMessage)
	}
	for _, id := range []string{"id3", "id4", "id5"} {
		if !strings.Contains(api.lastMessage, id) {
			t.Fatalf("message missing %s: %q", id, api.lastMessage)
		}
	}
}

func TestHistoryCommand_EmptyAndClear(t *testing.T) {
	api := newFakeAPI()
	RegisterAppCommands(api)

	if err := api.run(t, "history"); err != nil {
		t.Fatalf("history command error = %v", err)
	}
	assert.Equal(t, "History empty", api.lastMessage)

	if err := api.run(t, "history", "clear"); err != nil {
		t.Fatalf("history clear error = %v", err)
	}
	assert.Equal(t, true, api.cleared)
	assert.Equal(t, "History cleared", api.lastMessage)
}

func TestImgCommand_RequiresSelectedImage(t *testing.T) {
	api := newFakeAPI()
	RegisterAppCommands(api)

	if err := api.run(t, "img"); err == nil {
		t.Fatalf("img without arguments should error")
	}
	if err := api.run(t, "img", "https://example.com/a.png"); err == nil {
		t.Fatalf("img with no selected image should error")
	}
}
