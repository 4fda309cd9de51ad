package main

import (
	"event-market/domain"
	"event-market/internal"
	"event-market/moderation"
	"event-market/repositories"
	"event-market/services"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// app holds what the commands share for one invocation.
type app struct {
	config    internal.Config
	log       *slog.Logger
	messages  repositories.IMessageRepository
	session   repositories.ISessionRepository
	auth      services.IAuthService
	directory services.IDirectoryService
	events    services.IEventService
	profile   services.IProfileService
	in        io.Reader
	out       io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "eventmarket",
		Short:         "Book events, hire providers and chat with the other parties",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.SetIn(a.in)

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newServicesCmd(a),
		newDirectoryCmd(a, "organizers", "List organizers", domain.Organizer),
		newDirectoryCmd(a, "providers", "List providers", domain.Provider),
		newSearchCmd(a),
		newContractCmd(a),
		newEventsCmd(a),
		newChatCmd(a),
		newSendCmd(a),
		newConversationsCmd(a),
	)
	return root
}

// newChatService binds a chat service to the logged in profile.
func (a *app) newChatService() (*services.ChatService, error) {
	profile, err := a.auth.CurrentProfile()
	if err != nil {
		return nil, err
	}

	var opts []services.ChatOption
	words := moderation.ParseWords(a.config.CensoredWords)
	if len(words) > 0 {
		char, err := internal.CharacterRune(a.config.CharReplacement)
		if err != nil {
			return nil, err
		}
		moderator, err := moderation.NewModerator(words, char, a.log)
		if err != nil {
			return nil, err
		}
		opts = append(opts, services.WithModerator(moderator))
	}
	if a.config.MergeOptimistic {
		opts = append(opts, services.WithOptimisticMerge())
	}
	return services.NewChatService(a.messages, a.log, profile.Email, opts...), nil
}
