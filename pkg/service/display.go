package service

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/campuslink/cli/pkg/api"
)

// Shared terminal rendering for the text output format. JSON and table
// formats go through the output package instead.

var (
	boldText = color.New(color.Bold)
	dimText  = color.New(color.Faint)
)

func displayPosts(posts []api.Post) {
	for i, post := range posts {
		boldText.Printf("%d. %s", i+1, post.Author.FullName)
		dimText.Printf(" @%s · %s\n", post.Author.Username, post.Timestamp)
		if post.Content != "" {
			fmt.Printf("   %s\n", post.Content)
		}
		if post.ImageURL != "" {
			dimText.Printf("   [image] %s\n", post.ImageURL)
		}
		likeMark := "♡"
		if post.IsLiked {
			likeMark = "♥"
		}
		fmt.Printf("   %s %d   💬 %d   (post %s)\n\n", likeMark, post.Likes, post.Comments, post.ID)
	}
}

func displayComments(comments []api.Comment) {
	for _, c := range comments {
		boldText.Printf("@%s", c.Author.Username)
		dimText.Printf(" · %s\n", c.Timestamp)
		fmt.Printf("  %s\n\n", c.Content)
	}
}

func displayUsers(users []api.User) {
	for i, user := range users {
		boldText.Printf("%d. %s", i+1, user.FullName)
		dimText.Printf(" @%s\n", user.Username)
		fmt.Printf("   %s\n", user.University)
		if user.Bio != "" {
			fmt.Printf("   %s\n", user.Bio)
		}
		follows := ""
		if user.IsFollowing {
			follows = " · following"
		}
		dimText.Printf("   %d followers · %d following%s\n\n", user.Followers, user.Following, follows)
	}
}

func displayGroups(groups []api.Group) {
	for i, group := range groups {
		boldText.Printf("%d. %s", i+1, group.Name)
		dimText.Printf(" · %s · %d members\n", group.Privacy, group.MemberCount)
		if group.Description != "" {
			fmt.Printf("   %s\n", group.Description)
		}
		switch {
		case group.IsJoined:
			fmt.Printf("   ✓ Joined")
		case group.Pending:
			fmt.Printf("   ⏳ Request pending")
		default:
			fmt.Printf("   Join with 'campuslink group join %s'", group.ID)
		}
		fmt.Printf("\n\n")
	}
}

func displayChats(chats []api.Chat) {
	for i, chat := range chats {
		boldText.Printf("%d. %s", i+1, chat.Partner.FullName)
		dimText.Printf(" @%s", chat.Partner.Username)
		if chat.UnreadCount > 0 {
			color.New(color.FgCyan).Printf("  (%d unread)", chat.UnreadCount)
		}
		fmt.Printf("\n   %s", chat.LastMessage)
		if chat.Timestamp != "" {
			dimText.Printf("  %s", chat.Timestamp)
		}
		fmt.Printf("\n   (chat %s)\n\n", chat.ID)
	}
}

func displayNotifications(notifications []api.Notification) {
	for _, n := range notifications {
		marker := "•"
		if !n.Read {
			marker = color.New(color.FgCyan).Sprint("●")
		}
		fmt.Printf("%s %s ", marker, n.Message)
		dimText.Printf("%s\n", n.Timestamp)
	}
	fmt.Printf("\n")
}

func postRows(posts []api.Post) [][]string {
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			p.ID,
			"@" + p.Author.Username,
			truncate(p.Content, 48),
			fmt.Sprintf("%d", p.Likes),
			fmt.Sprintf("%d", p.Comments),
			p.Timestamp,
		})
	}
	return rows
}

var postColumns = []string{"ID", "AUTHOR", "CONTENT", "LIKES", "COMMENTS", "WHEN"}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
