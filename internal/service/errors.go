package service

import "lessoncraft-be/internal/pkg/serverutils"

var (
	ErrLessonPlanNotFound = serverutils.NewNotFoundError("lesson plan not found")
	ErrFileNotFound       = serverutils.NewNotFoundError("file not found")
	ErrUserNotFound       = serverutils.NewNotFoundError("user not found")
	ErrFileTypeNotAllowed = serverutils.NewBadRequestError("file type not allowed")
	ErrUnsupportedOAuth   = serverutils.NewBadRequestError("unsupported provider")
	ErrDuplicateSection   = serverutils.NewBadRequestError("details contain a section more than once")
)
