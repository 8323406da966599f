// Package services holds the business rules of Warbler: credentials, the social graph,
// the home feed and messages. Callers pass the acting user explicitly; nothing here reads
// request state.
package services

import (
	"github.com/anonto42/warbler/internal/repositories"
	"go.uber.org/zap"
)

type Repositories struct {
	Users    repositories.UserRepository
	Messages repositories.MessageRepository
	Follows  repositories.FollowRepository
	Likes    repositories.LikeRepository
}

type Service struct {
	Credentials *CredentialService
	Social      *SocialGraph
	Feed        *FeedAssembler
	Messages    *MessageService
}

func New(logger *zap.Logger, repos Repositories) *Service {
	return &Service{
		Credentials: NewCredentialService(logger, repos.Users),
		Social:      NewSocialGraph(logger, repos),
		Feed:        NewFeedAssembler(logger, repos.Follows, repos.Messages),
		Messages:    NewMessageService(logger, repos.Messages),
	}
}
