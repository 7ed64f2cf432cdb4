package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"gatekeeper-http-service/internal/error/code"
	"gatekeeper-http-service/internal/error/response"
	"gatekeeper-http-service/services"
	"gatekeeper-http-service/services/container"
)

// BaseController is the interface all controllers share
type BaseController interface {
	GetContainer() *container.ServiceContainer
	GetContext() *gin.Context
}

// BaseControllerImpl is the common controller implementation
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer implements BaseController
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext implements BaseController
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// ControllerFactory builds controllers bound to the service container
type ControllerFactory struct {
	Container *container.ServiceContainer
}

// NewControllerFactory creates a new controller factory
func NewControllerFactory(container *container.ServiceContainer) *ControllerFactory {
	return &ControllerFactory{
		Container: container,
	}
}

// failFromError maps service sentinel errors onto response codes.
// Anything unrecognized is reported as a database-level failure.
func failFromError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrVisitorLogNotFound):
		response.Fail(ctx, code.ErrVisitorLogNotFound, nil)
	case errors.Is(err, services.ErrVisitorNotFound):
		response.Fail(ctx, code.ErrVisitorNotFound, nil)
	case errors.Is(err, services.ErrFlatNotFound):
		response.Fail(ctx, code.ErrFlatNotFound, nil)
	case errors.Is(err, services.ErrResidentNotFound):
		response.Fail(ctx, code.ErrResidentNotFound, nil)
	case errors.Is(err, services.ErrSocietyNotFound):
		response.Fail(ctx, code.ErrSocietyNotFound, nil)
	case errors.Is(err, services.ErrUserNotFound):
		response.Fail(ctx, code.ErrUserNotFound, nil)
	case errors.Is(err, services.ErrStaffNotFound):
		response.Fail(ctx, code.ErrStaffNotFound, nil)
	case errors.Is(err, services.ErrAlreadyCheckedOut):
		response.Fail(ctx, code.ErrAlreadyCheckedOut, nil)
	case errors.Is(err, services.ErrAlreadyDecided):
		response.Fail(ctx, code.ErrAlreadyDecided, nil)
	case errors.Is(err, services.ErrStaffInactive):
		response.Fail(ctx, code.ErrStaffInactive, nil)
	case errors.Is(err, services.ErrPassCodeNotFound):
		response.Fail(ctx, code.ErrPassCodeNotFound, nil)
	case errors.Is(err, services.ErrPassCodeWindow):
		response.Fail(ctx, code.ErrPassCodeWindow, nil)
	case errors.Is(err, services.ErrPassCodeTaken):
		response.Fail(ctx, code.ErrPassCodeTaken, nil)
	case errors.Is(err, services.ErrFrequentVisitorExists):
		response.Fail(ctx, code.ErrFrequentVisitorExists, nil)
	case errors.Is(err, services.ErrCodeExhausted):
		response.Fail(ctx, code.ErrCodeExhausted, nil)
	case errors.Is(err, services.ErrTokenMalformed):
		response.Fail(ctx, code.ErrTokenMalformed, nil)
	case errors.Is(err, services.ErrUnknownSubjectType):
		response.Fail(ctx, code.ErrUnknownSubjectType, nil)
	default:
		response.FailWithMessage(ctx, code.ErrDatabase, err.Error(), nil)
	}
}
