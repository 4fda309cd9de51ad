package e2e

import (
	"context"
	"event-market/auth"
	"event-market/domain"
	"event-market/repositories"
	"event-market/services"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type testChatSuite struct {
	BaseRestSuite
}

func TestChatSuite(t *testing.T) {
	suite.Run(t, &testChatSuite{})
}

// Two fresh accounts exchange a message and both see it in one conversation.
func (s *testChatSuite) TestRegisterAndChat() {
	run := uuid.NewString()[:8]
	organizer := "e2e-org-" + run + "@mail.com"
	client := "e2e-cli-" + run + "@mail.com"
	body := "hola " + run

	rest := s.Client(s.T(), "Register, send and refresh")
	accounts := repositories.NewAccountRepository(rest)
	messages := repositories.NewMessageRepository(rest, slog.Default())

	s.Run("Step 1: register both parties", func() {
		s.Step(func(ctx context.Context) {
			for _, r := range []auth.RegisterRequest{
				{Name: "E2E Org", Email: organizer, Password: "secreto", Location: "Lima", Kind: domain.Organizer},
				{Name: "E2E Cli", Email: client, Password: "secreto", Location: "Lima", Kind: domain.Client},
			} {
				_, err := services.NewAuthService(accounts, s.Session(), slog.Default()).Register(ctx, r)
				s.Require().NoError(err)
			}
		})
	})

	s.Run("Step 2: the client writes to the organizer", func() {
		s.Step(func(ctx context.Context) {
			chat := services.NewChatService(messages, slog.Default(), client)
			chat.Open(organizer)
			_, err := chat.SendToSelected(ctx, body)
			s.Require().NoError(err)
		})
	})

	s.Run("Step 3: the organizer sees the conversation", func() {
		chat := services.NewChatService(messages, slog.Default(), organizer)
		s.Eventually(func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), s.Config.Timeout)
			defer cancel()
			if err := chat.Refresh(ctx); err != nil {
				return false
			}
			conversation := domain.LocateOrCreate(chat.Conversations(), client)
			last, ok := conversation.Last()
			return ok && last.Body == body
		}, 20*time.Second, time.Second, "message never showed up")
	})
}
