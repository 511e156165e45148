package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/archedata/internal/client/models"
	"github.com/dmitrijs2005/archedata/internal/client/repositories/collections"
	"github.com/dmitrijs2005/archedata/internal/client/repositories/messages"
	"github.com/dmitrijs2005/archedata/internal/common"
	"github.com/dmitrijs2005/archedata/internal/dbx"
	"github.com/dmitrijs2005/archedata/internal/logging"
	"github.com/google/uuid"
)

const ChatCreatedText = "Chat created."

// ChatService is the chat room directory plus persisted room history.
type ChatService interface {
	Chats(ctx context.Context) ([]models.ChatRoom, error)
	FindChat(ctx context.Context, id string) (*models.ChatRoom, error)
	CreateChat(ctx context.Context, actor *models.User, room models.ChatRoom) (*models.ChatRoom, error)
	SavedChats(ctx context.Context, actor *models.User) ([]models.ChatRoom, error)

	PostMessage(ctx context.Context, actor *models.User, roomID, text string) (*models.ChatMessage, error)
	Messages(ctx context.Context, roomID string) ([]models.ChatMessage, error)
}

type chatService struct {
	db     *sql.DB
	chats  *collections.Collection[models.ChatRoom]
	logger logging.Logger
	nowFn  func() time.Time
}

func NewChatService(db *sql.DB, logger logging.Logger) ChatService {
	return &chatService{
		db:     db,
		chats:  collections.New[models.ChatRoom](db, collections.ChatsKey, logger),
		logger: logger.With("service", "chats"),
		nowFn:  time.Now,
	}
}

// Chats returns every room, writing the sample rooms on first access.
func (s *chatService) Chats(ctx context.Context) ([]models.ChatRoom, error) {
	var list []models.ChatRoom
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		list, _, err = loadChatsSeeded(ctx, tx, s.chats)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("chats: %w", err)
	}
	return list, nil
}

func (s *chatService) FindChat(ctx context.Context, id string) (*models.ChatRoom, error) {
	list, err := s.Chats(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(list, func(r models.ChatRoom) bool { return r.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("chat %s: %w", id, common.ErrNotFound)
	}
	return &list[i], nil
}

// CreateChat appends a room with the creator as its only member and opens
// its history with a system message. Room names need not be unique.
func (s *chatService) CreateChat(ctx context.Context, actor *models.User, room models.ChatRoom) (*models.ChatRoom, error) {
	if actor == nil {
		return nil, common.ErrNotAuthenticated
	}
	room.Name = strings.TrimSpace(room.Name)
	if room.Name == "" {
		return nil, fmt.Errorf("chat name is required: %w", common.ErrValidation)
	}
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	room.Members = 1

	now := s.nowFn()
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		list, version, err := loadChatsSeeded(ctx, tx, s.chats)
		if err != nil {
			return err
		}
		if slices.ContainsFunc(list, func(r models.ChatRoom) bool { return r.ID == room.ID }) {
			return fmt.Errorf("chat %s: %w", room.ID, common.ErrAlreadyExists)
		}
		if _, err := s.chats.SaveWith(ctx, tx, append(list, room), version); err != nil {
			return err
		}

		return messages.NewSQLiteRepository(tx).Append(ctx, &models.ChatMessage{
			ID:        uuid.NewString(),
			RoomID:    room.ID,
			UserID:    models.SystemUserID,
			UserName:  models.SystemUserName,
			Text:      ChatCreatedText,
			Timestamp: models.DisplayTime(now),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}

	s.logger.Info(ctx, "chat created", "chat_id", room.ID, "user_id", actor.ID)
	return &room, nil
}

// SavedChats lists the rooms in actor's saved set, in directory order.
func (s *chatService) SavedChats(ctx context.Context, actor *models.User) ([]models.ChatRoom, error) {
	if actor == nil {
		return nil, common.ErrNotAuthenticated
	}
	list, err := s.Chats(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(list, func(r models.ChatRoom) bool { return !actor.HasSavedChat(r.ID) }), nil
}

func (s *chatService) PostMessage(ctx context.Context, actor *models.User, roomID, text string) (*models.ChatMessage, error) {
	if actor == nil {
		return nil, common.ErrNotAuthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text is required: %w", common.ErrValidation)
	}

	name := actor.Name
	if name == "" {
		name = actor.Nickname
	}
	now := s.nowFn()
	msg := &models.ChatMessage{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		UserID:    actor.ID,
		UserName:  name,
		Text:      text,
		Timestamp: models.DisplayTime(now),
		CreatedAt: now,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.requireRoom(ctx, tx, roomID); err != nil {
			return err
		}
		return messages.NewSQLiteRepository(tx).Append(ctx, msg)
	})
	if err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}
	return msg, nil
}

// Messages returns a room's history in posting order.
func (s *chatService) Messages(ctx context.Context, roomID string) ([]models.ChatMessage, error) {
	var list []models.ChatMessage
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.requireRoom(ctx, tx, roomID); err != nil {
			return err
		}
		var err error
		list, err = messages.NewSQLiteRepository(tx).ListByRoom(ctx, roomID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("messages: %w", err)
	}
	return list, nil
}

func (s *chatService) requireRoom(ctx context.Context, tx dbx.DBTX, roomID string) error {
	list, _, err := loadChatsSeeded(ctx, tx, s.chats)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(list, func(r models.ChatRoom) bool { return r.ID == roomID }) {
		return fmt.Errorf("chat %s: %w", roomID, common.ErrNotFound)
	}
	return nil
}
