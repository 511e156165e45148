package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/dmitrijs2005/archedata/internal/client/query"
)

// Chats lists the rooms whose name contains filter, or every room when
// filter is empty. Rooms saved by the session user are starred.
func (a *App) Chats(ctx context.Context, filter string) error {
	rooms, err := a.chatService.Chats(ctx)
	if err != nil {
		return err
	}
	rooms = query.FilterRooms(rooms, filter)
	var saved func(string) bool
	if a.user != nil {
		saved = a.user.HasSavedChat
	}
	printRooms(a.out, rooms, saved)
	return nil
}

// NewChat creates a room owned by the session user.
func (a *App) NewChat(ctx context.Context) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter chat name", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}
	country, err := getSimpleText(a.reader, "Enter country", a.out)
	if err != nil {
		return err
	}
	language, err := getSimpleText(a.reader, "Enter language", a.out)
	if err != nil {
		return err
	}
	spec, err := getSimpleText(a.reader, "Enter specialization", a.out)
	if err != nil {
		return err
	}

	room, err := a.chatService.CreateChat(ctx, u, models.ChatRoom{
		Name:        name,
		Description: description,
		Tags:        models.RoomTags{Country: country, Language: language, Specialization: spec},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created chat %s\n", room.ID)
	return nil
}

// SaveChat toggles a room in the session user's saved set.
func (a *App) SaveChat(ctx context.Context, id string) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	id, err = a.argOrPrompt(id, "Enter chat id")
	if err != nil {
		return err
	}
	if _, err := a.chatService.FindChat(ctx, id); err != nil {
		return err
	}
	if err := a.userService.ToggleSavedChat(ctx, u.ID, id); err != nil {
		return err
	}
	if err := a.refreshUser(ctx); err != nil {
		return err
	}
	if a.user.HasSavedChat(id) {
		fmt.Fprintln(a.out, "Chat saved")
	} else {
		fmt.Fprintln(a.out, "Chat removed from saved")
	}
	return nil
}

// Saved lists the session user's saved rooms.
func (a *App) Saved(ctx context.Context) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	rooms, err := a.chatService.SavedChats(ctx, u)
	if err != nil {
		return err
	}
	printRooms(a.out, rooms, nil)
	return nil
}

// Messages prints a room's history.
func (a *App) Messages(ctx context.Context, id string) error {
	id, err := a.argOrPrompt(id, "Enter chat id")
	if err != nil {
		return err
	}
	list, err := a.chatService.Messages(ctx, id)
	if err != nil {
		return err
	}
	for _, m := range list {
		printMessage(a.out, m)
	}
	return nil
}

// Say posts a message to a room.
func (a *App) Say(ctx context.Context, id string) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	id, err = a.argOrPrompt(id, "Enter chat id")
	if err != nil {
		return err
	}
	text, err := getSimpleText(a.reader, "Message", a.out)
	if err != nil {
		return err
	}
	m, err := a.chatService.PostMessage(ctx, u, id, text)
	if err != nil {
		return err
	}
	printMessage(a.out, *m)
	return nil
}

func (a *App) refreshUser(ctx context.Context) error {
	u, err := a.userService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.user = u
	return nil
}
