package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/teams-mcp/internal/teams"
)

// MentionParam names a user to @mention in an outgoing message.
type MentionParam struct {
	UserID      string `json:"user_id" jsonschema:"AAD object ID of the mentioned user"`
	DisplayName string `json:"display_name" jsonschema:"Display name rendered for the mention"`
}

// ImageParam is an inline image attachment.
type ImageParam struct {
	ContentType  string `json:"content_type" jsonschema:"Image MIME type, e.g. image/png"`
	ContentBytes string `json:"content_bytes" jsonschema:"Base64-encoded image data"`
}

// ListChannelMessagesInput identifies a channel and an optional page size.
type ListChannelMessagesInput struct {
	TeamID    string `json:"team_id" jsonschema:"The ID of the team"`
	ChannelID string `json:"channel_id" jsonschema:"The ID of the channel"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of messages to return (default and maximum 50)"`
}

// GetChannelMessageInput identifies a single message.
type GetChannelMessageInput struct {
	TeamID    string `json:"team_id" jsonschema:"The ID of the team"`
	ChannelID string `json:"channel_id" jsonschema:"The ID of the channel"`
	MessageID string `json:"message_id" jsonschema:"The ID of the message"`
}

// ListMessageRepliesInput identifies a message thread.
type ListMessageRepliesInput struct {
	TeamID    string `json:"team_id" jsonschema:"The ID of the team"`
	ChannelID string `json:"channel_id" jsonschema:"The ID of the channel"`
	MessageID string `json:"message_id" jsonschema:"The ID of the parent message"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of replies to return (default and maximum 50)"`
}

// SendChannelMessageInput describes a new top-level channel message.
type SendChannelMessageInput struct {
	TeamID      string         `json:"team_id" jsonschema:"The ID of the team"`
	ChannelID   string         `json:"channel_id" jsonschema:"The ID of the channel"`
	Content     string         `json:"content" jsonschema:"Message content"`
	ContentType string         `json:"content_type,omitempty" jsonschema:"Either text or html (default text)"`
	Mentions    []MentionParam `json:"mentions,omitempty" jsonschema:"Users to @mention; '@Display Name' occurrences in the content are linked to them"`
	Images      []ImageParam   `json:"images,omitempty" jsonschema:"Inline image attachments"`
}

// ReplyToChannelMessageInput describes a reply to an existing message.
type ReplyToChannelMessageInput struct {
	TeamID      string         `json:"team_id" jsonschema:"The ID of the team"`
	ChannelID   string         `json:"channel_id" jsonschema:"The ID of the channel"`
	MessageID   string         `json:"message_id" jsonschema:"The ID of the message to reply to"`
	Content     string         `json:"content" jsonschema:"Reply content"`
	ContentType string         `json:"content_type,omitempty" jsonschema:"Either text or html (default text)"`
	Mentions    []MentionParam `json:"mentions,omitempty" jsonschema:"Users to @mention"`
	Images      []ImageParam   `json:"images,omitempty" jsonschema:"Inline image attachments"`
}

// UpdateChannelMessageInput edits an existing message body.
type UpdateChannelMessageInput struct {
	TeamID      string `json:"team_id" jsonschema:"The ID of the team"`
	ChannelID   string `json:"channel_id" jsonschema:"The ID of the channel"`
	MessageID   string `json:"message_id" jsonschema:"The ID of the message to update"`
	Content     string `json:"content" jsonschema:"New message content"`
	ContentType string `json:"content_type,omitempty" jsonschema:"Either text or html (default text)"`
}

// DeleteChannelMessageInput identifies a message to soft-delete.
type DeleteChannelMessageInput struct {
	TeamID    string `json:"team_id" jsonschema:"The ID of the team"`
	ChannelID string `json:"channel_id" jsonschema:"The ID of the channel"`
	MessageID string `json:"message_id" jsonschema:"The ID of the message to delete"`
}

func (s *Server) registerListChannelMessages() error {
	return addTool(s, "list_channel_messages",
		"List the most recent messages of a channel.",
		func(ctx context.Context, in ListChannelMessagesInput) (*mcp.CallToolResult, error) {
			result, err := s.svc.ListMessages(ctx, in.TeamID, in.ChannelID, in.Limit)
			if err != nil {
				return nil, err
			}
			return jsonResult(result)
		})
}

func (s *Server) registerGetChannelMessage() error {
	return addTool(s, "get_channel_message",
		"Get a single channel message by ID.",
		func(ctx context.Context, in GetChannelMessageInput) (*mcp.CallToolResult, error) {
			result, err := s.svc.GetMessage(ctx, in.TeamID, in.ChannelID, in.MessageID)
			if err != nil {
				return nil, err
			}
			return jsonResult(result)
		})
}

func (s *Server) registerListMessageReplies() error {
	return addTool(s, "list_message_replies",
		"List the replies to a channel message.",
		func(ctx context.Context, in ListMessageRepliesInput) (*mcp.CallToolResult, error) {
			result, err := s.svc.ListReplies(ctx, in.TeamID, in.ChannelID, in.MessageID, in.Limit)
			if err != nil {
				return nil, err
			}
			return jsonResult(result)
		})
}

func (s *Server) registerSendChannelMessage() error {
	return addTool(s, "send_channel_message",
		"Send a message to a channel. Supports @mentions and inline image attachments.",
		func(ctx context.Context, in SendChannelMessageInput) (*mcp.CallToolResult, error) {
			result, err := s.svc.SendMessage(ctx, sendInput(in.TeamID, in.ChannelID, in.Content, in.ContentType, in.Mentions, in.Images))
			if err != nil {
				return nil, err
			}
			return jsonResult(result)
		})
}

func (s *Server) registerReplyToChannelMessage() error {
	return addTool(s, "reply_to_channel_message",
		"Reply to an existing channel message. Supports @mentions and inline image attachments.",
		func(ctx context.Context, in ReplyToChannelMessageInput) (*mcp.CallToolResult, error) {
			result, err := s.svc.ReplyToMessage(ctx, in.MessageID,
				sendInput(in.TeamID, in.ChannelID, in.Content, in.ContentType, in.Mentions, in.Images))
			if err != nil {
				return nil, err
			}
			return jsonResult(result)
		})
}

func (s *Server) registerUpdateChannelMessage() error {
	return addTool(s, "update_channel_message",
		"Update the body of an existing channel message.",
		func(ctx context.Context, in UpdateChannelMessageInput) (*mcp.CallToolResult, error) {
			if err := s.svc.UpdateMessage(ctx, in.TeamID, in.ChannelID, in.MessageID, in.Content, in.ContentType); err != nil {
				return nil, err
			}
			return textResult("Message updated."), nil
		})
}

func (s *Server) registerDeleteChannelMessage() error {
	return addTool(s, "delete_channel_message",
		"Soft-delete a channel message.",
		func(ctx context.Context, in DeleteChannelMessageInput) (*mcp.CallToolResult, error) {
			if err := s.svc.DeleteMessage(ctx, in.TeamID, in.ChannelID, in.MessageID); err != nil {
				return nil, err
			}
			return textResult("Message deleted."), nil
		})
}

// sendInput maps tool parameters onto the service input type.
func sendInput(teamID, channelID, content, contentType string, mentions []MentionParam, images []ImageParam) teams.SendMessageInput {
	in := teams.SendMessageInput{
		TeamID:      teamID,
		ChannelID:   channelID,
		Content:     content,
		ContentType: contentType,
	}
	for _, m := range mentions {
		in.Mentions = append(in.Mentions, teams.MentionInput{UserID: m.UserID, DisplayName: m.DisplayName})
	}
	for _, img := range images {
		in.Images = append(in.Images, teams.ImageInput{ContentType: img.ContentType, ContentBytes: img.ContentBytes})
	}
	return in
}
