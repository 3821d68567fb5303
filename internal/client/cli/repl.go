package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	CreateAlbum(ctx context.Context) error
	OpenAlbum(ctx context.Context) error
	CloseAlbum(ctx context.Context) error
	DeleteAlbum(ctx context.Context) error
	ListAlbums(ctx context.Context) error
	ListAlbumsOfUser(ctx context.Context) error

	AddPicture(ctx context.Context) error
	RemovePicture(ctx context.Context) error
	ListPictures(ctx context.Context) error
	TagUser(ctx context.Context) error
	UntagUser(ctx context.Context) error
	ListTags(ctx context.Context) error

	AddUser(ctx context.Context) error
	RemoveUser(ctx context.Context) error
	ListUsers(ctx context.Context) error
	UserStatistics(ctx context.Context) error

	TopTaggedUser(ctx context.Context) error
	TopTaggedPicture(ctx context.Context) error
	PicturesTaggedByUser(ctx context.Context) error

	printError(err error)
}

type command struct {
	num  int
	name string
	help string
	run  func(execIface, context.Context) error
}

type commandGroup struct {
	title    string
	commands []command
}

const (
	helpCommand = 0
	exitCommand = 99
)

// commandGroups keeps the numbering of the classic gallery menu; 9 (show
// picture) is not offered.
var commandGroups = []commandGroup{
	{"Albums:", []command{
		{1, "create-album", "Create album.", execIface.CreateAlbum},
		{2, "open-album", "Open album.", execIface.OpenAlbum},
		{3, "close-album", "Close album.", execIface.CloseAlbum},
		{4, "delete-album", "Delete album.", execIface.DeleteAlbum},
		{5, "list-albums", "List albums.", execIface.ListAlbums},
		{6, "list-albums-of-user", "List albums of user.", execIface.ListAlbumsOfUser},
	}},
	{"Open album:", []command{
		{7, "add-picture", "Add picture.", execIface.AddPicture},
		{8, "remove-picture", "Remove picture.", execIface.RemovePicture},
		{10, "list-pictures", "List pictures.", execIface.ListPictures},
		{11, "tag-user", "Tag user.", execIface.TagUser},
		{12, "untag-user", "Untag user.", execIface.UntagUser},
		{13, "list-tags", "List tags.", execIface.ListTags},
	}},
	{"Users:", []command{
		{14, "add-user", "Add user.", execIface.AddUser},
		{15, "remove-user", "Remove user.", execIface.RemoveUser},
		{16, "list-users", "List of users.", execIface.ListUsers},
		{17, "user-statistics", "User statistics.", execIface.UserStatistics},
	}},
	{"Queries:", []command{
		{18, "top-tagged-user", "Top tagged user.", execIface.TopTaggedUser},
		{19, "top-tagged-picture", "Top tagged picture.", execIface.TopTaggedPicture},
		{20, "pictures-tagged-user", "Pictures tagged user.", execIface.PicturesTaggedByUser},
	}},
}

// findCommand resolves a command by name or menu number.
func findCommand(token string) (command, bool) {
	num, err := strconv.Atoi(token)
	isNum := err == nil
	for _, g := range commandGroups {
		for _, c := range g.commands {
			if (isNum && c.num == num) || c.name == token {
				return c, true
			}
		}
	}
	return command{}, false
}

func printHelp() {
	printlnFn("Supported Gallery commands:")
	for _, g := range commandGroups {
		printlnFn()
		printlnFn(g.title)
		for _, c := range g.commands {
			printlnFn(fmt.Sprintf("%3d. %-22s %s", c.num, c.name, c.help))
		}
	}
	printlnFn()
	printlnFn(fmt.Sprintf("%3d. %-22s %s", helpCommand, "help", "Help."))
	printlnFn(fmt.Sprintf("%3d. %-22s %s", exitCommand, "exit", "Exit."))
}

// runREPL reads one command per line from scanner and dispatches it to a.
//
// The first token of a line selects the command, by name or menu number;
// handlers prompt for their own arguments. Errors returned by handlers are
// reported through a.printError and the loop continues. The loop exits on
// scanner EOF, when a handler hits end of input, when ctx is cancelled, or
// when the user types "exit", "quit" or 99.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("gallery%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help", strconv.Itoa(helpCommand):
			printHelp()
			continue
		case "exit", "quit", strconv.Itoa(exitCommand):
			printlnFn("Bye!")
			return
		}

		c, ok := findCommand(cmd)
		if !ok {
			printlnFn("Unknown command:", cmd, "(type 'help' for commands)")
			continue
		}

		if err := c.run(a, ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			a.printError(err)
		}
	}
}
