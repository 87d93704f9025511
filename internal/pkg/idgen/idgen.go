// idgen выдаёт идентификаторы для изображений профиля.
package idgen

import "github.com/google/uuid"

// UUID генерирует случайные UUIDv4 в строковом виде.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}
