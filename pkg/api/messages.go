package api

import (
	"fmt"

	"github.com/campuslink/cli/pkg/client"
	"github.com/campuslink/cli/pkg/logger"
)

// SendMessageRequest is the request to send a message
type SendMessageRequest struct {
	Content string `json:"content"`
}

// CreateConversationRequest is the request to open a conversation
type CreateConversationRequest struct {
	ParticipantIDs []string `json:"participant_ids"`
	Name           string   `json:"name,omitempty"`
}

// GetChats retrieves the viewer's conversations as chat summaries
func GetChats() ([]Chat, error) {
	logger.Debug("Fetching conversations")

	var raw []rawConversation

	resp, err := client.GetClient().
		R().
		SetResult(&raw).
		Get("/conversations/")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	chats := make([]Chat, 0, len(raw))
	for _, c := range raw {
		chats = append(chats, normalizeChat(c, ViewerID()))
	}
	return chats, nil
}

// GetMessages retrieves the ordered messages of a conversation
func GetMessages(conversationID string) ([]Message, error) {
	logger.Debug("Fetching messages", "conversation_id", conversationID)

	var raw []rawMessage

	resp, err := client.GetClient().
		R().
		SetResult(&raw).
		Get(fmt.Sprintf("/conversations/%s/messages/", conversationID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(raw))
	for _, m := range raw {
		messages = append(messages, normalizeMessage(m))
	}
	return messages, nil
}

// SendMessage sends a message into a conversation
func SendMessage(conversationID, content string) (*Message, error) {
	logger.Debug("Sending message", "conversation_id", conversationID)

	var raw rawMessage

	resp, err := client.GetClient().
		R().
		SetBody(SendMessageRequest{Content: content}).
		SetResult(&raw).
		Post(fmt.Sprintf("/conversations/%s/messages/", conversationID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	message := normalizeMessage(raw)
	return &message, nil
}

// CreateConversation opens a conversation with the given participants
func CreateConversation(participantIDs []string, name string) (*Chat, error) {
	logger.Debug("Creating conversation", "participants", len(participantIDs))

	var raw rawConversation

	resp, err := client.GetClient().
		R().
		SetBody(CreateConversationRequest{ParticipantIDs: participantIDs, Name: name}).
		SetResult(&raw).
		Post("/conversations/")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	chat := normalizeChat(raw, ViewerID())
	return &chat, nil
}
