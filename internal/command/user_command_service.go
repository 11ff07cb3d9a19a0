package command

import (
	"context"
	"log/slog"

	"github.com/eaglebank/user-registry/shared/cqrs"
	"github.com/eaglebank/user-registry/shared/events"
	"github.com/eaglebank/user-registry/shared/models"
)

// UserWriter is the write side of the user store.
type UserWriter interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// EventPublisher appends lifecycle events to a stream.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// UserCommandService writes user state and announces every change on the
// user events stream. Publishing is best effort.
type UserCommandService struct {
	writeRepo UserWriter
	publisher EventPublisher
	logger    *slog.Logger
}

// NewUserCommandService builds the service. A nil publisher disables events.
func NewUserCommandService(writeRepo UserWriter, publisher EventPublisher, logger *slog.Logger) *UserCommandService {
	return &UserCommandService{
		writeRepo: writeRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *UserCommandService) CreateUser(ctx context.Context, cmd cqrs.CreateUserCommand) (*models.User, error) {
	user := &models.User{
		FirstName:   cmd.FirstName,
		MiddleName:  cmd.MiddleName,
		LastName:    cmd.LastName,
		Suffix:      cmd.Suffix,
		ContactInfo: cmd.ContactInfo,
		Address:     cmd.Address,
	}
	if err := s.writeRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.publish(ctx, events.UserCreated, events.UserCreatedEvent{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.ContactInfo.Email,
	})
	return user, nil
}

func (s *UserCommandService) UpdateUser(ctx context.Context, cmd cqrs.UpdateUserCommand) (*models.User, error) {
	user := &models.User{
		ID:          cmd.UserID,
		FirstName:   cmd.FirstName,
		MiddleName:  cmd.MiddleName,
		LastName:    cmd.LastName,
		Suffix:      cmd.Suffix,
		ContactInfo: cmd.ContactInfo,
		Address:     cmd.Address,
	}
	if err := s.writeRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.publish(ctx, events.UserUpdated, events.UserUpdatedEvent{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.ContactInfo.Email,
	})
	return user, nil
}

func (s *UserCommandService) DeleteUser(ctx context.Context, cmd cqrs.DeleteUserCommand) error {
	if err := s.writeRepo.Delete(ctx, cmd.UserID); err != nil {
		return err
	}
	s.publish(ctx, events.UserDeleted, events.UserDeletedEvent{UserID: cmd.UserID})
	return nil
}

func (s *UserCommandService) publish(ctx context.Context, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.UserEventsStream, eventType, data); err != nil {
		s.logger.Warn("failed to publish user event",
			slog.String("type", eventType),
			slog.Any("error", err))
	}
}
