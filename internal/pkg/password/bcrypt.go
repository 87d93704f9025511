// password реализует хеширование паролей клиентов.
package password

import "golang.org/x/crypto/bcrypt"

// Bcrypt хеширует пароли через bcrypt с заданной стоимостью.
type Bcrypt struct {
	cost int
}

// NewBcrypt создаёт Bcrypt; cost == 0 означает bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash возвращает bcrypt-хеш пароля.
func (h *Bcrypt) Hash(password string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Compare проверяет пароль по сохранённому хешу.
func (h *Bcrypt) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
