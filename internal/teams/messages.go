package teams

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MentionInput names a user to @mention in an outgoing message.
type MentionInput struct {
	// UserID is the AAD object ID of the mentioned user.
	UserID string
	// DisplayName is the text rendered for the mention.
	DisplayName string
}

// ImageInput is an image to attach inline to an outgoing message.
type ImageInput struct {
	// ContentType is the image MIME type (e.g. "image/png").
	ContentType string
	// ContentBytes is the base64-encoded image data, as produced by the
	// caller. No codec handling happens here.
	ContentBytes string
}

// SendMessageInput describes an outgoing channel message.
type SendMessageInput struct {
	TeamID    string
	ChannelID string
	// Content is the message body. Plain text unless ContentType is "html";
	// mentions and images force HTML.
	Content     string
	ContentType string
	Mentions    []MentionInput
	Images      []ImageInput
}

// chatMessageRequest is the Graph chatMessage write shape.
type chatMessageRequest struct {
	Body           ItemBody        `json:"body"`
	Mentions       []Mention       `json:"mentions,omitempty"`
	HostedContents []HostedContent `json:"hostedContents,omitempty"`
}

// ListMessages lists the most recent top-level messages of a channel.
func (s *Service) ListMessages(ctx context.Context, teamID, channelID string, limit int) ([]Message, error) {
	if teamID == "" || channelID == "" {
		return nil, fmt.Errorf("team ID and channel ID are required")
	}

	client, err := s.clients.GetClient(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("$top", clampLimit(limit))
	var resp listResponse[Message]
	path := fmt.Sprintf("/teams/%s/channels/%s/messages",
		url.PathEscape(teamID), url.PathEscape(channelID))
	if err := client.Get(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return resp.Value, nil
}

// GetMessage retrieves a single channel message.
func (s *Service) GetMessage(ctx context.Context, teamID, channelID, messageID string) (*Message, error) {
	if teamID == "" || channelID == "" || messageID == "" {
		return nil, fmt.Errorf("team ID, channel ID and message ID are required")
	}

	client, err := s.clients.GetClient(ctx)
	if err != nil {
		return nil, err
	}

	var msg Message
	path := fmt.Sprintf("/teams/%s/channels/%s/messages/%s",
		url.PathEscape(teamID), url.PathEscape(channelID), url.PathEscape(messageID))
	if err := client.Get(ctx, path, nil, &msg); err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &msg, nil
}

// ListReplies lists the replies to a channel message.
func (s *Service) ListReplies(ctx context.Context, teamID, channelID, messageID string, limit int) ([]Message, error) {
	if teamID == "" || channelID == "" || messageID == "" {
		return nil, fmt.Errorf("team ID, channel ID and message ID are required")
	}

	client, err := s.clients.GetClient(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("$top", clampLimit(limit))
	var resp listResponse[Message]
	path := fmt.Sprintf("/teams/%s/channels/%s/messages/%s/replies",
		url.PathEscape(teamID), url.PathEscape(channelID), url.PathEscape(messageID))
	if err := client.Get(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	return resp.Value, nil
}

// SendMessage posts a new top-level message to a channel.
func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*Message, error) {
	if in.TeamID == "" || in.ChannelID == "" {
		return nil, fmt.Errorf("team ID and channel ID are required")
	}
	if in.Content == "" {
		return nil, fmt.Errorf("message content is required")
	}

	client, err := s.clients.GetClient(ctx)
	if err != nil {
		return nil, err
	}

	var msg Message
	path := fmt.Sprintf("/teams/%s/channels/%s/messages",
		url.PathEscape(in.TeamID), url.PathEscape(in.ChannelID))
	if err := client.Post(ctx, path, buildChatMessage(in), &msg); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return &msg, nil
}

// ReplyToMessage posts a reply to an existing channel message.
func (s *Service) ReplyToMessage(ctx context.Context, messageID string, in SendMessageInput) (*Message, error) {
	if in.TeamID == "" || in.ChannelID == "" || messageID == "" {
		return nil, fmt.Errorf("team ID, channel ID and message ID are required")
	}
	if in.Content == "" {
		return nil, fmt.Errorf("message content is required")
	}

	client, err := s.clients.GetClient(ctx)
	if err != nil {
		return nil, err
	}

	var msg Message
	path := fmt.Sprintf("/teams/%s/channels/%s/messages/%s/replies",
		url.PathEscape(in.TeamID), url.PathEscape(in.ChannelID), url.PathEscape(messageID))
	if err := client.Post(ctx, path, buildChatMessage(in), &msg); err != nil {
		return nil, fmt.Errorf("reply to message: %w", err)
	}
	return &msg, nil
}

// UpdateMessage edits the body of an existing channel message.
func (s *Service) UpdateMessage(ctx context.Context, teamID, channelID, messageID, content, contentType string) error {
	if teamID == "" || channelID == "" || messageID == "" {
		return fmt.Errorf("team ID, channel ID and message ID are required")
	}
	if content == "" {
		return fmt.Errorf("message content is required")
	}

	client, err := s.clients.GetClient(ctx)
	if err != nil {
		return err
	}

	body := chatMessageRequest{Body: ItemBody{ContentType: normaliseContentType(contentType), Content: content}}
	path := fmt.Sprintf("/teams/%s/channels/%s/messages/%s",
		url.PathEscape(teamID), url.PathEscape(channelID), url.PathEscape(messageID))
	if err := client.Patch(ctx, path, body, nil); err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	return nil
}

// DeleteMessage soft-deletes a channel message. Graph has no hard delete for
// chat messages; soft-deleted messages can be restored from the Teams client.
func (s *Service) DeleteMessage(ctx context.Context, teamID, channelID, messageID string) error {
	if teamID == "" || channelID == "" || messageID == "" {
		return fmt.Errorf("team ID, channel ID and message ID are required")
	}

	client, err := s.clients.GetClient(ctx)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/teams/%s/channels/%s/messages/%s/softDelete",
		url.PathEscape(teamID), url.PathEscape(channelID), url.PathEscape(messageID))
	if err := client.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// buildChatMessage assembles the Graph write shape, rewriting the body for
// mentions and inline images. Both force HTML content.
func buildChatMessage(in SendMessageInput) chatMessageRequest {
	contentType := normaliseContentType(in.ContentType)
	content := in.Content

	var mentions []Mention
	if len(in.Mentions) > 0 {
		contentType = "html"
		content, mentions = applyMentions(content, in.Mentions)
	}

	var hosted []HostedContent
	if len(in.Images) > 0 {
		contentType = "html"
		for i, img := range in.Images {
			temporaryID := strconv.Itoa(i + 1)
			hosted = append(hosted, HostedContent{
				TemporaryID:  temporaryID,
				ContentBytes: img.ContentBytes,
				ContentType:  img.ContentType,
			})
			content += fmt.Sprintf(`<br><img src="../hostedContents/%s/$value">`, temporaryID)
		}
	}

	return chatMessageRequest{
		Body:           ItemBody{ContentType: contentType, Content: content},
		Mentions:       mentions,
		HostedContents: hosted,
	}
}

// applyMentions rewrites "@Display Name" occurrences into <at> tags and
// builds the matching mentions array. A mention whose text does not appear in
// the content is prepended so Graph still accepts the entry: every mentions
// element must be referenced by an <at id> tag in the body.
func applyMentions(content string, inputs []MentionInput) (string, []Mention) {
	mentions := make([]Mention, 0, len(inputs))
	for i, m := range inputs {
		tag := fmt.Sprintf(`<at id="%d">%s</at>`, i, m.DisplayName)
		plain := "@" + m.DisplayName
		if strings.Contains(content, plain) {
			content = strings.Replace(content, plain, tag, 1)
		} else {
			content = tag + " " + content
		}
		mentions = append(mentions, Mention{
			ID:          i,
			MentionText: m.DisplayName,
			Mentioned:   IdentitySet{User: &Identity{ID: m.UserID, DisplayName: m.DisplayName}},
		})
	}
	return content, mentions
}

// normaliseContentType maps caller input to a valid Graph body content type.
func normaliseContentType(contentType string) string {
	if strings.EqualFold(contentType, "html") {
		return "html"
	}
	return "text"
}
