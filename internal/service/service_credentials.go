package service

import (
	"context"

	"github.com/entitykit/go-entity-kit/internal/crypto"
	"github.com/entitykit/go-entity-kit/internal/logger"
	"github.com/entitykit/go-entity-kit/internal/store"
	"github.com/entitykit/go-entity-kit/models"
)

type credentialService struct {
	credentialRepository store.CredentialRepository
	cipher               crypto.CredentialCipher

	logger *logger.Logger
}

// NewCredentialService constructs a [CredentialService] over the given
// repository and cipher.
func NewCredentialService(credentialRepository store.CredentialRepository, cipher crypto.CredentialCipher, logger *logger.Logger) CredentialService {
	return &credentialService{
		credentialRepository: credentialRepository,
		cipher:               cipher,
		logger:               logger,
	}
}

func (s *credentialService) Store(ctx context.Context, name string, payload models.Credentials, key []byte) (models.CredentialRecord, error) {
	if name == "" {
		return models.CredentialRecord{}, ErrEmptyCredentialName
	}

	blob, err := s.cipher.Encrypt(payload, key)
	if err != nil {
		return models.CredentialRecord{}, err
	}

	return s.credentialRepository.Save(ctx, models.CredentialRecord{Name: name, Blob: blob})
}

func (s *credentialService) Reveal(ctx context.Context, name string, key []byte) (models.Credentials, error) {
	if name == "" {
		return nil, ErrEmptyCredentialName
	}

	record, err := s.credentialRepository.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return s.cipher.Decrypt(record.Blob, key)
}

func (s *credentialService) List(ctx context.Context) ([]models.CredentialRecord, error) {
	return s.credentialRepository.List(ctx)
}

func (s *credentialService) Delete(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyCredentialName
	}

	return s.credentialRepository.Delete(ctx, name)
}
