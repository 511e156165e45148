package services

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/dmitrijs2005/archedata/internal/client/repositories/collections"
	"github.com/dmitrijs2005/archedata/internal/cryptox"
	"github.com/dmitrijs2005/archedata/internal/dbx"
)

const (
	AdminID       = "admin-001"
	AdminNickname = "merasiik"
	AdminName     = "Miras Ermek"
)

// AdminSeed carries the configurable part of the built-in Admin account.
type AdminSeed struct {
	Email    string
	Password string
}

func (s AdminSeed) user() models.User {
	u := models.User{
		ID:           AdminID,
		Name:         AdminName,
		Nickname:     AdminNickname,
		Email:        s.Email,
		Role:         models.RoleAdmin,
		SavedChatIDs: []string{},
	}
	if s.Password != "" {
		u.PasswordHash = cryptox.HashPassword([]byte(s.Password))
	}
	return u
}

func sampleChats() []models.ChatRoom {
	return []models.ChatRoom{
		{
			ID:          "1",
			Name:        "Археологи Казахстана",
			Description: "Обсуждение раскопок и находок на территории РК.",
			Members:     1240,
			Tags:        models.RoomTags{Country: "Казахстан", Language: "Русский/Казахский", Specialization: "Общая"},
		},
		{
			ID:          "2",
			Name:        "Реставрация и Консервация",
			Description: "Методики сохранения артефактов.",
			Members:     850,
			Tags:        models.RoomTags{Country: "Мир", Language: "Русский", Specialization: "Реставрация"},
		},
	}
}

// loadUsersSeeded loads the directory inside tx and adds the Admin when no
// user carries its nickname. The returned version is current after seeding.
func loadUsersSeeded(ctx context.Context, tx dbx.DBTX, users *collections.Collection[models.User], admin AdminSeed) ([]models.User, int64, error) {
	list, version, err := users.LoadWith(ctx, tx)
	if err != nil {
		return nil, 0, err
	}
	if slices.ContainsFunc(list, func(u models.User) bool { return u.Nickname == AdminNickname }) {
		return list, version, nil
	}

	list = append(list, admin.user())
	version, err = users.SaveWith(ctx, tx, list, version)
	if err != nil {
		return nil, 0, err
	}
	return list, version, nil
}

// loadChatsSeeded loads the rooms inside tx, writing the sample rooms when
// the collection was never persisted.
func loadChatsSeeded(ctx context.Context, tx dbx.DBTX, chats *collections.Collection[models.ChatRoom]) ([]models.ChatRoom, int64, error) {
	list, version, err := chats.LoadWith(ctx, tx)
	if err != nil {
		return nil, 0, err
	}
	if version != 0 {
		return list, version, nil
	}

	list = sampleChats()
	version, err = chats.SaveWith(ctx, tx, list, 0)
	if err != nil {
		return nil, 0, err
	}
	return list, version, nil
}
