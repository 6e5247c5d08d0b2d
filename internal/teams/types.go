package teams

// Team represents a Microsoft Teams team.
type Team struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	IsArchived  bool   `json:"isArchived"`
}

// Channel represents a channel within a team.
type Channel struct {
	ID             string `json:"id"`
	DisplayName    string `json:"displayName"`
	Description    string `json:"description"`
	MembershipType string `json:"membershipType"`
	WebURL         string `json:"webUrl"`
}

// Member represents a conversation member of a team.
type Member struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	UserID      string   `json:"userId"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
}

// User represents a directory user.
type User struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
	JobTitle          string `json:"jobTitle"`
}

// Identity identifies a user inside a message or mention.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// IdentitySet groups the identities associated with a message.
type IdentitySet struct {
	User *Identity `json:"user,omitempty"`
}

// ItemBody is a message body with its content type ("text" or "html").
type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Mention is an @mention entry carried alongside a message body. The ID ties
// the entry to an <at id="..."> tag in the HTML content.
type Mention struct {
	ID          int         `json:"id"`
	MentionText string      `json:"mentionText"`
	Mentioned   IdentitySet `json:"mentioned"`
}

// HostedContent is inline binary content (an image) attached to a message.
// TemporaryID links the entry to an <img> src reference in the HTML body.
type HostedContent struct {
	TemporaryID  string `json:"@microsoft.graph.temporaryId"`
	ContentBytes string `json:"contentBytes"`
	ContentType  string `json:"contentType"`
}

// Message represents a Teams channel message.
type Message struct {
	ID                   string       `json:"id"`
	ReplyToID            string       `json:"replyToId"`
	MessageType          string       `json:"messageType"`
	CreatedDateTime      string       `json:"createdDateTime"`
	LastModifiedDateTime string       `json:"lastModifiedDateTime"`
	DeletedDateTime      string       `json:"deletedDateTime"`
	Subject              string       `json:"subject"`
	Body                 ItemBody     `json:"body"`
	From                 *IdentitySet `json:"from"`
	Mentions             []Mention    `json:"mentions"`
	WebURL               string       `json:"webUrl"`
}

// listResponse is the Graph collection envelope.
type listResponse[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink"`
}
