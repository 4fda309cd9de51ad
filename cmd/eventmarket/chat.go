package main

import (
	"bufio"
	"context"
	"event-market/domain"
	"event-market/runtime"
	"event-market/services"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

const chatHelp = "Commands: /open <email|#>, /list, /back, /quit. Anything else is sent to the open conversation."

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [email]",
		Short: "Open the live conversation view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := a.newChatService()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err = chat.Refresh(ctx); err != nil {
				a.log.Warn("Initial refresh failed", "err", err)
			}

			view := newChatView(a.out, chat.Identity())
			fmt.Fprintln(a.out, chatHelp)
			if len(args) == 1 {
				view.open(chat.Open(args[0]))
			} else {
				view.list(chat.Conversations())
			}

			session := runtime.OpenChatSession(ctx, a.log, chat, a.config.RefreshInterval)
			defer session.Close()

			lines := readLines(a.in)
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-session.Done():
					return nil
				case <-chat.Changes():
					view.update(chat)
				case line, ok := <-lines:
					if !ok {
						return nil
					}
					if quit := view.handle(ctx, chat, line); quit {
						return nil
					}
				}
			}
		},
	}
}

func newSendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send <email> <message...>",
		Short: "Send a single message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := a.newChatService()
			if err != nil {
				return err
			}
			message, err := chat.Send(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, formatMessage(chat.Identity(), message))
			return nil
		},
	}
}

func newConversationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "conversations",
		Short: "List conversations once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chat, err := a.newChatService()
			if err != nil {
				return err
			}
			if err = chat.Refresh(cmd.Context()); err != nil {
				return err
			}
			renderConversations(a.out, chat.Conversations())
			return nil
		},
	}
}

func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// chatView prints each message once, even when a refresh reorders the
// conversation.
type chatView struct {
	out         io.Writer
	identity    string
	counterpart string
	seen        map[string]struct{}
	listed      []domain.Conversation
}

func newChatView(out io.Writer, identity string) *chatView {
	return &chatView{out: out, identity: identity, seen: make(map[string]struct{})}
}

func (v *chatView) open(c domain.Conversation) {
	v.counterpart = c.Counterpart
	v.seen = make(map[string]struct{})
	fmt.Fprintln(v.out, color.OpBold.Render("== "+c.Counterpart+" =="))
	v.printNew(c)
}

func (v *chatView) list(conversations []domain.Conversation) {
	v.counterpart = ""
	v.listed = conversations
	if len(conversations) == 0 {
		fmt.Fprintln(v.out, "No conversation yet, /open <email> to start one.")
		return
	}
	renderConversations(v.out, conversations)
}

func (v *chatView) update(chat services.IChatService) {
	selected, ok := chat.Selected()
	if !ok {
		return
	}
	if selected.Counterpart != v.counterpart {
		v.open(selected)
		return
	}
	v.printNew(selected)
}

func (v *chatView) printNew(c domain.Conversation) {
	for _, m := range c.Messages {
		key := m.Key()
		if _, ok := v.seen[key]; ok {
			continue
		}
		v.seen[key] = struct{}{}
		fmt.Fprintln(v.out, formatMessage(v.identity, m))
	}
}

func (v *chatView) fail(err error) {
	fmt.Fprintln(v.out, color.FgRed.Render("! "+err.Error()))
}

// handle runs one input line and reports whether the user asked to quit.
func (v *chatView) handle(ctx context.Context, chat services.IChatService, line string) bool {
	command, argument, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch command {
	case "":
	case "/quit", "/exit":
		return true
	case "/list":
		v.list(chat.Conversations())
	case "/back":
		chat.Back()
		v.list(chat.Conversations())
	case "/open":
		counterpart := v.resolve(strings.TrimSpace(argument))
		if counterpart == "" {
			v.fail(fmt.Errorf("usage: /open <email|#>"))
			return false
		}
		v.open(chat.Open(counterpart))
	default:
		if _, err := chat.SendToSelected(ctx, line); err != nil {
			v.fail(err)
		}
	}
	return false
}

// resolve accepts an e-mail or the row number of the last listing.
func (v *chatView) resolve(argument string) string {
	n, err := strconv.Atoi(argument)
	if err != nil {
		return argument
	}
	if n < 1 || n > len(v.listed) {
		return ""
	}
	return v.listed[n-1].Counterpart
}
