// service содержит бизнес-логику customers-service:
// - операции над клиентами (список/чтение/регистрация/частичный апдейт/удаление);
// - работа с изображением профиля (загрузка и выдача байтов).
package service

//go:generate mockgen -destination=../../mocks/mock_password_hasher.go -package=mocks github.com/pribylovaa/customers-service/internal/service PasswordHasher
//go:generate mockgen -destination=../../mocks/mock_id_generator.go -package=mocks github.com/pribylovaa/customers-service/internal/service IDGenerator

import (
	"github.com/pribylovaa/customers-service/internal/config"
	"github.com/pribylovaa/customers-service/internal/storage"
)

// PasswordHasher — хеширование пароля на границе сервиса.
// Проверка пароля сюда не входит.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// IDGenerator выдаёт глобально уникальные идентификаторы изображений.
type IDGenerator interface {
	NewID() string
}

// Service — описывает бизнес-логику customers-service.
type Service struct {
	cfg       *config.Config
	customers storage.CustomersStorage
	images    storage.ImagesStorage
	hasher    PasswordHasher
	ids       IDGenerator
}

// New создает новый экземпляр Service.
func New(
	customers storage.CustomersStorage,
	images storage.ImagesStorage,
	hasher PasswordHasher,
	ids IDGenerator,
	cfg *config.Config,
) *Service {
	return &Service{
		cfg:       cfg,
		customers: customers,
		images:    images,
		hasher:    hasher,
		ids:       ids,
	}
}
