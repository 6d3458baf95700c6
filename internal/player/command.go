package player

import "strings"

// URLPlaceholder is replaced by the stream URL in configured arguments.
const URLPlaceholder = "{url}"

// DefaultBinary is the player used when none is configured.
const DefaultBinary = "ffplay"

// ffplayArgs disable the video window and the banner, exit when the stream
// ends, and keep the log quiet enough for the stderr capture.
var ffplayArgs = []string{"-nodisp", "-hide_banner", "-autoexit", "-loglevel", "info", "-i", URLPlaceholder}

// Command is an external player invocation.
type Command struct {
	Path string
	Args []string
}

// FFplay returns the default ffplay invocation for url.
func FFplay(url string) Command {
	return NewCommand(DefaultBinary, ffplayArgs, url)
}

// NewCommand builds a command from a binary and an argument template.
// Every URLPlaceholder is replaced by url. When the template has no
// placeholder, url is appended as the last argument.
func NewCommand(path string, template []string, url string) Command {
	if path == "" {
		path = DefaultBinary
	}
	if len(template) == 0 && path == DefaultBinary {
		template = ffplayArgs
	}

	args := make([]string, 0, len(template)+1)
	found := false
	for _, a := range template {
		if strings.Contains(a, URLPlaceholder) {
			found = true
			a = strings.ReplaceAll(a, URLPlaceholder, url)
		}
		args = append(args, a)
	}
	if !found {
		args = append(args, url)
	}
	return Command{Path: path, Args: args}
}

// String renders the command line for logs.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Path
	}
	return c.Path + " " + strings.Join(c.Args, " ")
}
