package service

import (
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/assignment"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/auth"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/bid"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/user"
)

type Collection struct {
	AuthService       *auth.AuthService
	UserService       *user.UserService
	AssignmentService *assignment.Service
	BidService        *bid.Service
}
