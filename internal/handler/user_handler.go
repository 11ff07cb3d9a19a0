package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/eaglebank/user-registry/internal/filter"
	"github.com/eaglebank/user-registry/internal/paging"
	"github.com/eaglebank/user-registry/shared/apperror"
	"github.com/eaglebank/user-registry/shared/cqrs"
	"github.com/eaglebank/user-registry/shared/middleware"
	"github.com/eaglebank/user-registry/shared/models"
	"github.com/gin-gonic/gin"
)

// UserCommander defines the write-side operations used by UserHandler.
type UserCommander interface {
	CreateUser(context.Context, cqrs.CreateUserCommand) (*models.User, error)
	UpdateUser(context.Context, cqrs.UpdateUserCommand) (*models.User, error)
	DeleteUser(context.Context, cqrs.DeleteUserCommand) error
}

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	GetUser(context.Context, cqrs.GetUserQuery) (*models.User, error)
	ListUsers(context.Context, cqrs.ListUsersQuery) ([]models.User, error)
	ListUsersPage(context.Context, cqrs.ListUsersPageQuery) (paging.Page[models.User], error)
	SearchUsers(context.Context, cqrs.SearchUsersQuery) ([]models.User, error)
}

// UserHandler routes requests to the command or query service as appropriate.
type UserHandler struct {
	commands UserCommander
	queries  UserQuerier
}

// UserRequest is the body accepted by create and update.
type UserRequest struct {
	FirstName   string             `json:"firstName"`
	MiddleName  string             `json:"middleName"`
	LastName    string             `json:"lastName"`
	Suffix      string             `json:"suffix"`
	ContactInfo models.ContactInfo `json:"contactInfo"`
	Address     models.Address     `json:"address"`
}

func NewUserHandler(commands UserCommander, queries UserQuerier) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.queries.ListUsers(c.Request.Context(), cqrs.ListUsersQuery{})
	if err != nil {
		middleware.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) ListUsersPage(c *gin.Context) {
	req, err := paging.ParseRequest(c.Query("page"), c.Query("size"))
	if err != nil {
		middleware.RespondWithError(c, err)
		return
	}
	page, err := h.queries.ListUsersPage(c.Request.Context(), cqrs.ListUsersPageQuery{Page: req})
	if err != nil {
		middleware.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	user, err := h.queries.GetUser(c.Request.Context(), cqrs.GetUserQuery{UserID: id})
	if err != nil {
		middleware.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	req, ok := bindUserRequest(c)
	if !ok {
		return
	}
	user, err := h.commands.CreateUser(c.Request.Context(), cqrs.CreateUserCommand{
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		Suffix:      req.Suffix,
		ContactInfo: req.ContactInfo,
		Address:     req.Address,
	})
	if err != nil {
		middleware.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	req, ok := bindUserRequest(c)
	if !ok {
		return
	}
	user, err := h.commands.UpdateUser(c.Request.Context(), cqrs.UpdateUserCommand{
		UserID:      id,
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		Suffix:      req.Suffix,
		ContactInfo: req.ContactInfo,
		Address:     req.Address,
	})
	if err != nil {
		middleware.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser answers 400 for any failed deletion, including unknown ids.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := h.commands.DeleteUser(c.Request.Context(), cqrs.DeleteUserCommand{UserID: id}); err != nil {
		_ = c.Error(err)
		middleware.RespondWithError(c, apperror.New(apperror.ErrBadRequest, "something went wrong"))
		return
	}
	middleware.RespondWithStatus(c, http.StatusOK, fmt.Sprintf("data at id %d successfully deleted", id))
}

func (h *UserHandler) SearchByName(c *gin.Context) {
	h.search(c, filter.ByName(c.Query("firstName"), c.Query("middleName"), c.Query("lastName"), c.Query("suffix")))
}

func (h *UserHandler) SearchByContact(c *gin.Context) {
	h.search(c, filter.ByContact(c.Query("email"), c.Query("mobile"), c.Query("telephone")))
}

func (h *UserHandler) SearchByAddress(c *gin.Context) {
	f, err := filter.ByAddress(c.Query("street"), c.Query("city"), c.Query("state"), c.Query("zipCode"))
	if err != nil {
		middleware.RespondWithError(c, err)
		return
	}
	h.search(c, f)
}

func (h *UserHandler) search(c *gin.Context, f filter.UserFilter) {
	users, err := h.queries.SearchUsers(c.Request.Context(), cqrs.SearchUsersQuery{Filter: f})
	if err != nil {
		middleware.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func userID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		middleware.RespondWithError(c, apperror.New(apperror.ErrInvalidArgument, "id must be an integer, got \""+raw+"\""))
		return 0, false
	}
	return id, true
}

func bindUserRequest(c *gin.Context) (UserRequest, bool) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, apperror.New(apperror.ErrInvalidRequestBody, "malformed JSON body"))
		return req, false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return req, false
	}
	return req, true
}
