package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls  []string
	errs   map[string]error
	report []error
}

func (f *fakeExec) call(name string) error {
	f.calls = append(f.calls, name)
	return f.errs[name]
}

func (f *fakeExec) CreateAlbum(context.Context) error          { return f.call("create-album") }
func (f *fakeExec) OpenAlbum(context.Context) error            { return f.call("open-album") }
func (f *fakeExec) CloseAlbum(context.Context) error           { return f.call("close-album") }
func (f *fakeExec) DeleteAlbum(context.Context) error          { return f.call("delete-album") }
func (f *fakeExec) ListAlbums(context.Context) error           { return f.call("list-albums") }
func (f *fakeExec) ListAlbumsOfUser(context.Context) error     { return f.call("list-albums-of-user") }
func (f *fakeExec) AddPicture(context.Context) error           { return f.call("add-picture") }
func (f *fakeExec) RemovePicture(context.Context) error        { return f.call("remove-picture") }
func (f *fakeExec) ListPictures(context.Context) error         { return f.call("list-pictures") }
func (f *fakeExec) TagUser(context.Context) error              { return f.call("tag-user") }
func (f *fakeExec) UntagUser(context.Context) error            { return f.call("untag-user") }
func (f *fakeExec) ListTags(context.Context) error             { return f.call("list-tags") }
func (f *fakeExec) AddUser(context.Context) error              { return f.call("add-user") }
func (f *fakeExec) RemoveUser(context.Context) error           { return f.call("remove-user") }
func (f *fakeExec) ListUsers(context.Context) error            { return f.call("list-users") }
func (f *fakeExec) UserStatistics(context.Context) error       { return f.call("user-statistics") }
func (f *fakeExec) TopTaggedUser(context.Context) error        { return f.call("top-tagged-user") }
func (f *fakeExec) TopTaggedPicture(context.Context) error     { return f.call("top-tagged-picture") }
func (f *fakeExec) PicturesTaggedByUser(context.Context) error { return f.call("pictures-tagged-user") }
func (f *fakeExec) printError(err error)                       { f.report = append(f.report, err) }

// capturePrintln replaces printlnFn for the duration of the test and returns
// everything printed through it.
func capturePrintln(t *testing.T) *strings.Builder {
	t.Helper()
	var out strings.Builder
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&out, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func run(f *fakeExec, lines ...string) {
	sc := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), f, func() string { return "[x]" }, sc)
}

func TestRunREPL_DispatchByNameAndNumber(t *testing.T) {
	capturePrintln(t)

	f := &fakeExec{}
	run(f, "create-album", "2", "  ", "list-pictures extra args", "20", "exit", "add-user")

	assert.Equal(t, []string{"create-album", "open-album", "list-pictures", "pictures-tagged-user"}, f.calls)
}

func TestRunREPL_EveryMenuEntryIsReachable(t *testing.T) {
	capturePrintln(t)

	for _, g := range commandGroups {
		for _, c := range g.commands {
			f := &fakeExec{}
			run(f, fmt.Sprint(c.num), c.name)
			assert.Equal(t, []string{c.name, c.name}, f.calls, "command %d", c.num)
		}
	}
}

func TestRunREPL_ShowPictureIsNotOffered(t *testing.T) {
	out := capturePrintln(t)

	f := &fakeExec{}
	run(f, "9", "quit")

	assert.Empty(t, f.calls)
	assert.Contains(t, out.String(), "Unknown command: 9")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_ErrorsAreReported(t *testing.T) {
	capturePrintln(t)

	boom := errors.New("boom")
	f := &fakeExec{errs: map[string]error{"add-user": boom}}
	run(f, "add-user", "list-users")

	assert.Equal(t, []error{boom}, f.report)
	assert.Equal(t, []string{"add-user", "list-users"}, f.calls)
}

func TestRunREPL_StopsWhenInputEndsInsideCommand(t *testing.T) {
	capturePrintln(t)

	f := &fakeExec{errs: map[string]error{"add-user": io.EOF}}
	run(f, "add-user", "list-users")

	assert.Equal(t, []string{"add-user"}, f.calls)
	assert.Empty(t, f.report)
}

func TestRunREPL_HelpAndPrompt(t *testing.T) {
	out := capturePrintln(t)

	run(&fakeExec{}, "help", "0", "99")

	text := out.String()
	assert.Contains(t, text, "gallery[x]> ")
	assert.Equal(t, 2, strings.Count(text, "Supported Gallery commands:"))
	assert.Contains(t, text, " 17. user-statistics")
	assert.Contains(t, text, " 99. exit")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeExec{}
	sc := bufio.NewScanner(strings.NewReader("list-users\n"))
	runREPL(ctx, f, func() string { return "" }, sc)

	assert.Empty(t, f.calls)
}
