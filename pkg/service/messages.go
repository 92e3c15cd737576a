package service

import (
	"context"
	"fmt"

	"github.com/campuslink/cli/pkg/api"
	"github.com/campuslink/cli/pkg/cache"
	"github.com/campuslink/cli/pkg/errors"
	"github.com/campuslink/cli/pkg/logger"
	"github.com/campuslink/cli/pkg/optimistic"
	"github.com/campuslink/cli/pkg/output"
)

// MessageService provides direct-message conversations.
type MessageService struct {
	store     *cache.Store
	mutations *optimistic.Coordinator
}

// NewMessageService creates a new message service.
func NewMessageService(store *cache.Store, mutations *optimistic.Coordinator) *MessageService {
	return &MessageService{store: store, mutations: mutations}
}

// ListChats displays the viewer's conversations with unread counts.
func (ms *MessageService) ListChats() error {
	if err := EnsureSession(); err != nil {
		return err
	}
	logger.Debug("Listing chats")

	key := cache.ChatsKey()
	var chats []api.Chat
	if value, ok := ms.store.Read(key); ok {
		chats, _ = value.([]api.Chat)
	}
	if chats == nil {
		fetched, err := api.GetChats()
		if err != nil {
			return fmt.Errorf("failed to fetch chats: %w", err)
		}
		ms.store.Write(key, fetched)
		chats = fetched
	}

	if len(chats) == 0 {
		fmt.Println("No conversations yet.")
		return nil
	}

	if output.GetOutputFormat() != output.FormatText {
		return output.Print("Chats", chats)
	}

	fmt.Printf("\n💬 Conversations\n\n")
	displayChats(chats)
	return nil
}

// ViewMessages displays one conversation's messages.
func (ms *MessageService) ViewMessages(chatID string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	messages, err := ms.loadMessages(chatID)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	if len(messages) == 0 {
		fmt.Println("No messages in this conversation yet.")
		return nil
	}

	if output.GetOutputFormat() != output.FormatText {
		return output.Print("Messages", messages)
	}

	viewer := api.ViewerID()
	fmt.Printf("\n")
	for _, m := range messages {
		if m.SenderID == viewer {
			boldText.Printf("you")
		} else {
			boldText.Printf("them")
		}
		dimText.Printf(" %s\n", m.Timestamp)
		fmt.Printf("  %s\n", m.Content)
	}
	fmt.Printf("\n")
	return nil
}

// Send posts a message to a conversation. The message shows up in the
// cached thread immediately and is replaced by the server's copy when
// the send confirms.
func (ms *MessageService) Send(chatID, content string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	if content == "" {
		return errors.ValidationError("content", "message cannot be empty")
	}

	// Warm the thread so the optimistic append has a list to patch.
	if _, err := ms.loadMessages(chatID); err != nil {
		logger.Warn("Could not preload messages", "chat_id", chatID, "error", err)
	}

	err := ms.mutations.Run(context.Background(),
		optimistic.SendMessage(chatID, api.ViewerID(), content))
	if err != nil {
		output.PrintError("Failed to send message: %v", err)
		return err
	}

	output.PrintSuccess("✓ Sent")
	return nil
}

// StartChat opens a conversation with another user and optionally sends
// a first message.
func (ms *MessageService) StartChat(userID, content string) error {
	if err := EnsureSession(); err != nil {
		return err
	}

	chat, err := api.CreateConversation([]string{userID}, "")
	if err != nil {
		output.PrintError("Failed to start conversation: %v", err)
		return err
	}

	ms.store.Invalidate(cache.ChatsKey())
	output.PrintSuccess("✓ Conversation ready (chat %s)", chat.ID)

	if content != "" {
		return ms.Send(chat.ID, content)
	}
	return nil
}

func (ms *MessageService) loadMessages(chatID string) ([]api.Message, error) {
	key := cache.MessagesKey(chatID)
	if value, ok := ms.store.Read(key); ok {
		if messages, ok := value.([]api.Message); ok {
			return messages, nil
		}
	}

	messages, err := api.GetMessages(chatID)
	if err != nil {
		return nil, err
	}
	ms.store.Write(key, messages)
	return messages, nil
}
