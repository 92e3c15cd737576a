package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/campuslink/cli/pkg/config"
	"github.com/campuslink/cli/pkg/output"
)

// View-models. These are the client-held shapes: normalized once at the
// gateway boundary and mutated afterwards only through cache operations.

// User is a normalized user record, viewer-relative where noted.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	AvatarURL   string `json:"avatar_url"`
	University  string `json:"university"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	Bio         string `json:"bio,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	IsFollowing bool   `json:"is_following"`
}

// Post is a normalized post. IsLiked and Likes always move together.
type Post struct {
	ID        string    `json:"id"`
	Author    User      `json:"author"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	IsLiked   bool      `json:"is_liked"`
	GroupID   string    `json:"group_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Timestamp string    `json:"timestamp"`
}

// Comment is append-only from the client's perspective.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    User      `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Timestamp string    `json:"timestamp"`
}

// Group privacy modes
const (
	GroupPublic  = "public"
	GroupPrivate = "private"
	GroupSecret  = "secret"
)

type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberCount int    `json:"member_count"`
	ImageURL    string `json:"image_url"`
	Privacy     string `json:"privacy"`
	IsJoined    bool   `json:"is_joined"`
	Pending     bool   `json:"pending"`
}

// Story is an ephemeral post; expiry is server-side and not modeled here.
type Story struct {
	ID        string    `json:"id"`
	Author    User      `json:"author"`
	Content   string    `json:"content,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Likes     int       `json:"likes"`
	Views     int       `json:"views"`
	IsLiked   bool      `json:"is_liked"`
	CreatedAt time.Time `json:"created_at"`
	Timestamp string    `json:"timestamp"`
}

type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Timestamp string    `json:"timestamp"`
	IsRead    bool      `json:"is_read"`
}

type Chat struct {
	ID          string `json:"id"`
	Partner     User   `json:"partner"`
	LastMessage string `json:"last_message"`
	UnreadCount int    `json:"unread_count"`
	Timestamp   string `json:"timestamp"`
}

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // like, comment, follow
	Actor     User      `json:"actor"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Timestamp string    `json:"timestamp"`
	Read      bool      `json:"read"`
}

// Raw server records, snake_case as the backend emits them.

type rawProfile struct {
	FullName       string `json:"full_name"`
	Bio            string `json:"bio"`
	University     string `json:"university"`
	ProfilePicture string `json:"profile_picture"`
	CoverPhoto     string `json:"cover_photo"`
}

type rawUser struct {
	ID             int64       `json:"id"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	Profile        *rawProfile `json:"profile"`
	FollowersCount int         `json:"followers_count"`
	FollowingCount int         `json:"following_count"`
	IsFollowing    bool        `json:"is_following"`
}

type rawLike struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
}

type rawPost struct {
	ID        int64     `json:"id"`
	Caption   string    `json:"caption"`
	Image     string    `json:"image"`
	User      rawUser   `json:"user"`
	Likes     []rawLike `json:"likes"`
	LikesCount int      `json:"likes_count"`
	Comments  []rawComment `json:"comments"`
	GroupID   *int64    `json:"group_id"`
	CreatedAt time.Time `json:"created_at"`
}

type rawComment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	Content   string    `json:"content"`
	User      rawUser   `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type rawGroup struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CoverImage  string `json:"cover_image"`
	Privacy     string `json:"privacy"`
	MemberCount int    `json:"member_count"`
	IsJoined    bool   `json:"is_joined"`
	Pending     bool   `json:"membership_pending"`
}

type rawStoryLike struct {
	UserID int64 `json:"user_id"`
}

type rawStoryView struct {
	UserID int64 `json:"user_id"`
}

type rawStory struct {
	ID        int64          `json:"id"`
	Content   string         `json:"content"`
	ImageURL  string         `json:"image_url"`
	User      rawUser        `json:"user"`
	Likes     []rawStoryLike `json:"likes"`
	Views     []rawStoryView `json:"views"`
	CreatedAt time.Time      `json:"created_at"`
}

type rawMessage struct {
	ID        int64     `json:"id"`
	SenderID  int64     `json:"sender_id"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type rawConversation struct {
	ID           int64        `json:"id"`
	Participants []rawUser    `json:"participants"`
	Messages     []rawMessage `json:"messages"`
}

type rawNotification struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Sender    rawUser   `json:"sender"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Normalization

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// fullMediaURL resolves a server-relative media path against the API base.
func fullMediaURL(url string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http") {
		return url
	}
	base := strings.TrimSuffix(config.GetString("api.base_url"), "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return base + url
}

func normalizeUser(u rawUser) User {
	user := User{
		ID:          formatID(u.ID),
		Username:    u.Username,
		FullName:    u.Username,
		University:  "University Student",
		Followers:   u.FollowersCount,
		Following:   u.FollowingCount,
		IsFollowing: u.IsFollowing,
	}
	if u.Profile != nil {
		if u.Profile.FullName != "" {
			user.FullName = u.Profile.FullName
		}
		if u.Profile.University != "" {
			user.University = u.Profile.University
		}
		user.Bio = u.Profile.Bio
		user.AvatarURL = fullMediaURL(u.Profile.ProfilePicture)
		user.CoverURL = fullMediaURL(u.Profile.CoverPhoto)
	}
	if user.AvatarURL == "" {
		user.AvatarURL = fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", u.Username)
	}
	return user
}

// normalizePost resolves viewer-relative fields against viewerID. The
// like count and the IsLiked flag come from the same raw record so they
// can never disagree at the boundary.
func normalizePost(p rawPost, viewerID string) Post {
	likes := p.LikesCount
	if likes == 0 && len(p.Likes) > 0 {
		likes = len(p.Likes)
	}
	isLiked := false
	for _, l := range p.Likes {
		if formatID(l.UserID) == viewerID {
			isLiked = true
			break
		}
	}
	post := Post{
		ID:        formatID(p.ID),
		Author:    normalizeUser(p.User),
		Content:   p.Caption,
		ImageURL:  fullMediaURL(p.Image),
		Likes:     likes,
		Comments:  len(p.Comments),
		IsLiked:   isLiked,
		CreatedAt: p.CreatedAt,
		Timestamp: output.TimeAgo(p.CreatedAt),
	}
	if p.GroupID != nil {
		post.GroupID = formatID(*p.GroupID)
	}
	return post
}

func normalizeComment(c rawComment) Comment {
	return Comment{
		ID:        formatID(c.ID),
		PostID:    formatID(c.PostID),
		Author:    normalizeUser(c.User),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Timestamp: output.TimeAgo(c.CreatedAt),
	}
}

func normalizeGroup(g rawGroup) Group {
	privacy := g.Privacy
	if privacy == "" {
		privacy = GroupPublic
	}
	group := Group{
		ID:          formatID(g.ID),
		Name:        g.Name,
		Description: g.Description,
		MemberCount: g.MemberCount,
		ImageURL:    fullMediaURL(g.CoverImage),
		Privacy:     privacy,
		IsJoined:    g.IsJoined,
		Pending:     g.Pending,
	}
	if group.ImageURL == "" {
		group.ImageURL = fmt.Sprintf("https://api.dicebear.com/7.x/identicon/svg?seed=%s", g.Name)
	}
	return group
}

func normalizeStory(s rawStory, viewerID string) Story {
	isLiked := false
	for _, l := range s.Likes {
		if formatID(l.UserID) == viewerID {
			isLiked = true
			break
		}
	}
	return Story{
		ID:        formatID(s.ID),
		Author:    normalizeUser(s.User),
		Content:   s.Content,
		ImageURL:  fullMediaURL(s.ImageURL),
		Likes:     len(s.Likes),
		Views:     len(s.Views),
		IsLiked:   isLiked,
		CreatedAt: s.CreatedAt,
		Timestamp: output.TimeAgo(s.CreatedAt),
	}
}

func normalizeMessage(m rawMessage) Message {
	return Message{
		ID:        formatID(m.ID),
		SenderID:  formatID(m.SenderID),
		Content:   m.Content,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
		Timestamp: m.CreatedAt.Format("15:04"),
	}
}

func normalizeChat(c rawConversation, viewerID string) Chat {
	partner := rawUser{}
	for _, p := range c.Participants {
		if formatID(p.ID) != viewerID {
			partner = p
			break
		}
	}
	if partner.ID == 0 && len(c.Participants) > 0 {
		partner = c.Participants[0]
	}

	chat := Chat{
		ID:          formatID(c.ID),
		Partner:     normalizeUser(partner),
		LastMessage: "No messages yet",
	}
	unread := 0
	for _, m := range c.Messages {
		if !m.IsRead && formatID(m.SenderID) != viewerID {
			unread++
		}
	}
	chat.UnreadCount = unread
	if len(c.Messages) > 0 {
		last := c.Messages[len(c.Messages)-1]
		chat.LastMessage = last.Content
		chat.Timestamp = last.CreatedAt.Format("15:04")
	}
	return chat
}

func notificationMessage(n rawNotification) string {
	switch n.Type {
	case "like":
		return fmt.Sprintf("%s liked your post", n.Sender.Username)
	case "comment":
		return fmt.Sprintf("%s commented on your post", n.Sender.Username)
	case "follow":
		return fmt.Sprintf("%s started following you", n.Sender.Username)
	default:
		return fmt.Sprintf("%s %sed your post", n.Sender.Username, n.Type)
	}
}

func normalizeNotification(n rawNotification) Notification {
	return Notification{
		ID:        formatID(n.ID),
		Type:      n.Type,
		Actor:     normalizeUser(n.Sender),
		Message:   notificationMessage(n),
		CreatedAt: n.CreatedAt,
		Timestamp: output.TimeAgo(n.CreatedAt),
		Read:      n.IsRead,
	}
}
